//nolint:testpackage // Testing internal classifier requires same package access
package classifier

import (
	"strings"
	"sync"
	"testing"

	"github.com/campuswatch/extractor/internal/domain"
	"github.com/campuswatch/extractor/internal/logging"
	"github.com/campuswatch/extractor/internal/taxonomy"
)

const testTaxonomy = `{
	"SMOKING": {
		"label": "Smoking Inside Campus",
		"category": "A",
		"severity": 2,
		"regex": "caught\\s+smoking",
		"keywords": ["smoking", "paninigarilyo"]
	},
	"VANDALISM": {
		"label": "Vandalism",
		"category": "B",
		"severity": 4,
		"keywords": ["vandalism", "vandalized", "graffiti"]
	},
	"BRAWLING": {
		"label": "Brawling",
		"category": "C",
		"severity": 6,
		"keywords": ["brawl", "fistfight"]
	},
	"BULLYING": {
		"label": "Bullying",
		"category": "C",
		"severity": 6,
		"keywords": ["bullying", "pang-aapi"]
	},
	"FIREARM": {
		"label": "Possession of Firearm",
		"category": "D",
		"severity": 10,
		"regex": "possession\\s+of\\s+(?:a\\s+)?(?:firearm|gun)",
		"keywords": ["firearm", "baril"]
	}
}`

func newTestClassifier(t *testing.T) *OffenseClassifier {
	t.Helper()
	tax, err := taxonomy.Parse(strings.NewReader(testTaxonomy), logging.NewNop())
	if err != nil {
		t.Fatalf("parse test taxonomy: %v", err)
	}
	return New(tax, logging.NewNop())
}

func TestOffenseClassifier_Detect_SingleMatch(t *testing.T) {
	c := newTestClassifier(t)

	got := c.Detect("The student vandalized the restroom wall.")
	if got.Code != "VANDALISM" {
		t.Fatalf("expected VANDALISM, got %s", got.Code)
	}
	if got.Category != "B" || got.Severity != 4 {
		t.Errorf("unexpected category/severity: %s/%d", got.Category, got.Severity)
	}
	if got.MatchMethod != domain.MatchMethodKeyword {
		t.Errorf("expected keyword match, got %s", got.MatchMethod)
	}
	if got.MatchedText != "vandalized" {
		t.Errorf("expected matched text %q, got %q", "vandalized", got.MatchedText)
	}
}

func TestOffenseClassifier_Detect_HighestSeverityWins(t *testing.T) {
	c := newTestClassifier(t)

	got := c.Detect("He was caught smoking and had possession of a gun in his bag.")
	if got.Code != "FIREARM" {
		t.Errorf("expected FIREARM to outrank SMOKING, got %s", got.Code)
	}
}

func TestOffenseClassifier_Detect_EqualSeverityKeepsDeclarationOrder(t *testing.T) {
	c := newTestClassifier(t)

	// BRAWLING and BULLYING share severity 6; BRAWLING is declared first.
	got := c.Detect("The bullying escalated into a brawl near the gate.")
	if got.Code != "BRAWLING" {
		t.Errorf("expected declaration order to break the tie, got %s", got.Code)
	}
}

func TestOffenseClassifier_Detect_RegexBeforeKeywords(t *testing.T) {
	c := newTestClassifier(t)

	got := c.Detect("The guard caught smoking two students behind the gym.")
	if got.Code != "SMOKING" {
		t.Fatalf("expected SMOKING, got %s", got.Code)
	}
	if got.MatchMethod != domain.MatchMethodRegex {
		t.Errorf("expected regex match method, got %s", got.MatchMethod)
	}
	if got.MatchedText != "caught smoking" {
		t.Errorf("expected matched span %q, got %q", "caught smoking", got.MatchedText)
	}
}

func TestOffenseClassifier_Detect_NoMatchReturnsUnknown(t *testing.T) {
	c := newTestClassifier(t)

	got := c.Detect("The student returned a library book two days late.")
	if got.Code != domain.UnknownOffenseCode {
		t.Errorf("expected UNKNOWN sentinel, got %s", got.Code)
	}
	if got.MatchMethod != domain.MatchMethodNone {
		t.Errorf("expected none match method, got %s", got.MatchMethod)
	}
}

func TestOffenseClassifier_DetectAll_OrderAndCompleteness(t *testing.T) {
	c := newTestClassifier(t)

	matches := c.DetectAll("Smoking, vandalism and a fistfight were all reported.")
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}
	wantOrder := []string{"BRAWLING", "VANDALISM", "SMOKING"}
	for i, want := range wantOrder {
		if matches[i].Code != want {
			t.Errorf("match %d = %s, want %s", i, matches[i].Code, want)
		}
	}
}

func TestOffenseClassifier_DetectAll_EmptyInput(t *testing.T) {
	c := newTestClassifier(t)

	if got := c.DetectAll("   "); got != nil {
		t.Errorf("expected no matches for blank input, got %d", len(got))
	}
}

func TestOffenseClassifier_DetectAll_ConcurrentCallsStayConsistent(t *testing.T) {
	c := newTestClassifier(t)

	texts := []string{
		"Smoking, vandalism and a fistfight were all reported.",
		"He was caught smoking and had possession of a gun in his bag.",
		"The bullying escalated into a brawl near the gate.",
	}
	want := make([][]domain.ExtractedOffense, len(texts))
	for i, text := range texts {
		want[i] = c.DetectAll(text)
	}

	// One classifier is shared by every batch worker; concurrent scans must
	// return the same matches as sequential ones.
	const goroutines = 8
	const iterations = 200

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				for j, text := range texts {
					got := c.DetectAll(text)
					if len(got) != len(want[j]) {
						t.Errorf("concurrent DetectAll(%q) returned %d matches, want %d",
							text, len(got), len(want[j]))
						return
					}
					for k := range got {
						if got[k].Code != want[j][k].Code {
							t.Errorf("concurrent DetectAll(%q) match %d = %s, want %s",
								text, k, got[k].Code, want[j][k].Code)
							return
						}
					}
				}
			}
		}()
	}
	wg.Wait()
}

func TestOffenseClassifier_Detect_CaseInsensitive(t *testing.T) {
	c := newTestClassifier(t)

	got := c.Detect("PANINIGARILYO SA LOOB NG CAMPUS")
	if got.Code != "SMOKING" {
		t.Errorf("expected SMOKING from uppercase Filipino keyword, got %s", got.Code)
	}
}

func TestScanKnownOffense(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantName     string
		wantCategory string
	}{
		{"exact phrase", "the report describes smoking inside campus by a student", "Smoking Inside Campus", "A"},
		{"category d phrase", "found responsible for hazing during initiation", "Hazing", "D"},
		{"no known phrase", "a very quiet afternoon", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotName, gotCategory, ok := ScanKnownOffense(tt.text)
			if tt.wantName == "" {
				if ok {
					t.Fatalf("expected no hit, got %q", gotName)
				}
				return
			}
			if !ok || gotName != tt.wantName || gotCategory != tt.wantCategory {
				t.Errorf("got (%q, %q, %v), want (%q, %q, true)",
					gotName, gotCategory, ok, tt.wantName, tt.wantCategory)
			}
		})
	}
}

func TestLookupCategory(t *testing.T) {
	if cat, ok := LookupCategory("sexual harassment"); !ok || cat != "D" {
		t.Errorf("expected (D, true), got (%q, %v)", cat, ok)
	}
	if _, ok := LookupCategory("jaywalking"); ok {
		t.Error("expected unknown offense name to miss")
	}
}
