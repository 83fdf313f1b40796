//nolint:testpackage // Testing internal extractor requires same package access
package extractor

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/campuswatch/extractor/internal/classifier"
	"github.com/campuswatch/extractor/internal/domain"
	"github.com/campuswatch/extractor/internal/logging"
	"github.com/campuswatch/extractor/internal/taxonomy"
)

const engineTestTaxonomy = `{
	"SMOKING": {
		"label": "Smoking Inside Campus",
		"category": "A",
		"severity": 2,
		"regex": "smoking\\s+(?:inside|within|in)\\s+(?:the\\s+)?campus|caught\\s+smoking",
		"keywords": ["smoking", "paninigarilyo"]
	},
	"VANDALISM": {
		"label": "Vandalism",
		"category": "B",
		"severity": 4,
		"keywords": ["vandalism", "vandalized", "graffiti"]
	},
	"THEFT": {
		"label": "Theft",
		"category": "C",
		"severity": 6,
		"regex": "(?:stole|stealing|theft\\s+of)\\s+",
		"keywords": ["theft", "pagnanakaw"]
	}
}`

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	tax, err := taxonomy.Parse(strings.NewReader(engineTestTaxonomy), logging.NewNop())
	if err != nil {
		t.Fatalf("parse test taxonomy: %v", err)
	}
	return NewEngine(classifier.New(tax, logging.NewNop()), logging.NewNop(), opts...)
}

func TestEngine_Extract_TemplateForm(t *testing.T) {
	e := newTestEngine(t)

	text := "Last Name: DE LA CRUZ\n" +
		"First Name: JUAN MIGUEL\n" +
		"Program: BSIT\n" +
		"Section: 3A\n" +
		"Date: October 7, 2025\n" +
		"Description: The student was caught smoking inside the campus restroom."

	got := e.Extract(context.Background(), text, domain.EntityStudent)

	if got.Regime != domain.RegimeTemplate {
		t.Fatalf("regime = %q, want template", got.Regime)
	}
	if got.Identity.FirstName != "Juan Miguel" || got.Identity.LastName != "De La Cruz" {
		t.Errorf("identity = (%q, %q)", got.Identity.FirstName, got.Identity.LastName)
	}
	if got.Affiliation.ProgramOrDept != "BSIT" {
		t.Errorf("program = %q, want BSIT", got.Affiliation.ProgramOrDept)
	}
	if got.Affiliation.SectionOrPosition != "3A" {
		t.Errorf("section = %q, want 3A", got.Affiliation.SectionOrPosition)
	}
	if got.Date != "2025-10-07" {
		t.Errorf("date = %q, want 2025-10-07", got.Date)
	}
	if got.Offense.Code != "SMOKING" {
		t.Errorf("offense = %s, want SMOKING", got.Offense.Code)
	}
	if got.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", got.Confidence)
	}
	if len(got.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", got.Warnings)
	}
}

func TestEngine_Extract_NarrativeProse(t *testing.T) {
	e := newTestEngine(t)

	text := "The student Juan Miguel De La Cruz from BSIT 3A was caught smoking inside the campus on October 7, 2025."

	got := e.Extract(context.Background(), text, domain.EntityStudent)

	if got.Regime != domain.RegimeNarrative {
		t.Fatalf("regime = %q, want narrative", got.Regime)
	}
	if got.Identity.FirstName != "Juan Miguel" || got.Identity.LastName != "De La Cruz" {
		t.Errorf("identity = (%q, %q)", got.Identity.FirstName, got.Identity.LastName)
	}
	if got.Affiliation.ProgramOrDept != "BSIT" || got.Affiliation.SectionOrPosition != "3A" {
		t.Errorf("affiliation = %+v", got.Affiliation)
	}
	if got.Date != "2025-10-07" {
		t.Errorf("date = %q, want 2025-10-07", got.Date)
	}
	if got.Offense.Code != "SMOKING" || got.Offense.MatchMethod != domain.MatchMethodRegex {
		t.Errorf("offense = %s/%s", got.Offense.Code, got.Offense.MatchMethod)
	}
	if got.Description == "" {
		t.Error("expected residual description")
	}
	if got.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", got.Confidence)
	}
}

func TestEngine_Extract_Faculty(t *testing.T) {
	e := newTestEngine(t)

	text := "Professor Maria Santos from the ICT Department shouted at students during class on January 15, 2026."

	got := e.Extract(context.Background(), text, domain.EntityFaculty)

	if got.Identity.FirstName != "Maria" || got.Identity.LastName != "Santos" {
		t.Errorf("identity = (%q, %q)", got.Identity.FirstName, got.Identity.LastName)
	}
	if got.Affiliation.ProgramOrDept != "Information Communications Technology (ICT)" {
		t.Errorf("department = %q", got.Affiliation.ProgramOrDept)
	}
	if got.Date != "2026-01-15" {
		t.Errorf("date = %q", got.Date)
	}
	// Name, department, and date populated but no offense: 4 of 6 fields.
	if got.Confidence != 0.67 {
		t.Errorf("confidence = %v, want 0.67", got.Confidence)
	}
	if len(got.Warnings) != 0 {
		t.Errorf("confidence above threshold should carry no warnings, got %v", got.Warnings)
	}
}

func TestEngine_Extract_StaffPosition(t *testing.T) {
	e := newTestEngine(t)

	text := "The janitor Pedro Reyes was caught stealing equipment from the storage room on 10/07/2025."

	got := e.Extract(context.Background(), text, domain.EntityStaff)

	if got.Identity.FirstName != "Pedro" || got.Identity.LastName != "Reyes" {
		t.Errorf("identity = (%q, %q)", got.Identity.FirstName, got.Identity.LastName)
	}
	if got.Affiliation.SectionOrPosition != "janitor" {
		t.Errorf("position = %q, want janitor", got.Affiliation.SectionOrPosition)
	}
	if got.Affiliation.ProgramOrDept != "" {
		t.Errorf("staff should not carry program_or_dept, got %q", got.Affiliation.ProgramOrDept)
	}
	if got.Offense.Code != "THEFT" {
		t.Errorf("offense = %s, want THEFT", got.Offense.Code)
	}
	if got.Date != "2025-10-07" {
		t.Errorf("date = %q", got.Date)
	}
	if got.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", got.Confidence)
	}
}

func TestEngine_Extract_EmptyInput(t *testing.T) {
	e := newTestEngine(t)

	got := e.Extract(context.Background(), "", domain.EntityStudent)

	if !got.Identity.Empty() {
		t.Errorf("expected empty identity, got %+v", got.Identity)
	}
	if got.Regime != domain.RegimeNone {
		t.Errorf("regime = %q, want none", got.Regime)
	}
	if got.Offense.Code != domain.UnknownOffenseCode {
		t.Errorf("offense = %s, want UNKNOWN", got.Offense.Code)
	}
	if got.Confidence != 0.0 {
		t.Errorf("confidence = %v, want 0.0", got.Confidence)
	}
	if len(got.Warnings) == 0 {
		t.Error("expected warnings for empty extraction")
	}
}

func TestEngine_Extract_LowConfidenceWarnings(t *testing.T) {
	e := newTestEngine(t)

	got := e.Extract(context.Background(), "Something happened near the gate.", domain.EntityStudent)

	if got.Confidence >= DefaultReviewThreshold {
		t.Fatalf("confidence = %v, expected below threshold", got.Confidence)
	}
	want := []string{
		"Name not found. Please enter manually.",
		"Program not found. Please enter manually.",
		"Section not found. Please enter manually.",
		"Date not found. Please enter manually.",
		"Offense not found. Please select manually.",
	}
	if len(got.Warnings) != len(want) {
		t.Fatalf("warnings = %v, want %v", got.Warnings, want)
	}
	for i := range want {
		if got.Warnings[i] != want[i] {
			t.Errorf("warning %d = %q, want %q", i, got.Warnings[i], want[i])
		}
	}
}

func TestEngine_Extract_ExplicitCategoryFallback(t *testing.T) {
	e := newTestEngine(t)

	got := e.Extract(context.Background(), "The committee reviewed the case. Offense Category: B", domain.EntityStudent)

	if got.Offense.Code != domain.UnknownOffenseCode {
		t.Fatalf("offense = %s, want UNKNOWN", got.Offense.Code)
	}
	if got.Offense.Category != "B" {
		t.Errorf("category = %q, want B", got.Offense.Category)
	}
}

func TestEngine_Extract_HandbookNameFallback(t *testing.T) {
	e := newTestEngine(t)

	// "grave insult" is not in the test taxonomy, so only the handbook scan
	// can classify it.
	got := e.Extract(context.Background(), "He was reported for grave insult against a teacher.", domain.EntityStudent)

	if got.Offense.Code != domain.UnknownOffenseCode {
		t.Fatalf("offense code = %s, want UNKNOWN", got.Offense.Code)
	}
	if got.Offense.Label != "Grave Insult" {
		t.Errorf("label = %q, want Grave Insult", got.Offense.Label)
	}
	if got.Offense.Category != "B" {
		t.Errorf("category = %q, want B", got.Offense.Category)
	}
}

func TestEngine_Extract_Deterministic(t *testing.T) {
	e := newTestEngine(t)

	text := "The student Juan Dela Cruz from BSIT 3A was caught smoking inside campus on October 7, 2025."
	first := e.Extract(context.Background(), text, domain.EntityStudent)
	second := e.Extract(context.Background(), text, domain.EntityStudent)

	first.ExtractedAt = second.ExtractedAt
	if first.Identity != second.Identity ||
		first.Affiliation != second.Affiliation ||
		first.Date != second.Date ||
		first.Offense != second.Offense ||
		first.Confidence != second.Confidence {
		t.Errorf("extraction not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestEngine_Extract_PathologicalInputBounded(t *testing.T) {
	e := newTestEngine(t)

	text := strings.Repeat("AAAA aaaa 1234 ", 20_000)
	start := time.Now()
	got := e.Extract(context.Background(), text, domain.EntityStudent)
	elapsed := time.Since(start)

	// The patterns must stay linear on repetitive input; a generous bound
	// still catches catastrophic backtracking.
	if elapsed > 2*time.Second {
		t.Errorf("extraction took %v on repetitive input", elapsed)
	}
	if got.Confidence < 0 || got.Confidence > 1 {
		t.Errorf("confidence out of bounds: %v", got.Confidence)
	}
	if len(got.Description) > 500 {
		t.Errorf("description exceeds cap: %d", len(got.Description))
	}
}

func TestEngine_DetectOffenses(t *testing.T) {
	e := newTestEngine(t)

	matches := e.DetectOffenses(context.Background(), "Vandalism and theft of laboratory equipment were reported.")
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Code != "THEFT" || matches[1].Code != "VANDALISM" {
		t.Errorf("unexpected order: %s, %s", matches[0].Code, matches[1].Code)
	}
}

func TestEngine_DetectOffenses_NoMatchReturnsSentinel(t *testing.T) {
	e := newTestEngine(t)

	matches := e.DetectOffenses(context.Background(), "A quiet and uneventful afternoon.")
	if len(matches) != 1 {
		t.Fatalf("expected sentinel only, got %d matches", len(matches))
	}
	if matches[0].Code != domain.UnknownOffenseCode {
		t.Errorf("expected UNKNOWN sentinel, got %s", matches[0].Code)
	}
}

func TestEngine_Extract_ReviewThresholdOption(t *testing.T) {
	e := newTestEngine(t, WithReviewThreshold(0.9))

	// 4 of 6 faculty fields gives 0.67, below the raised threshold.
	text := "Professor Maria Santos from the ICT Department was reported on January 15, 2026."
	got := e.Extract(context.Background(), text, domain.EntityFaculty)

	if got.Confidence >= 0.9 {
		t.Fatalf("confidence = %v, expected below raised threshold", got.Confidence)
	}
	if len(got.Warnings) == 0 {
		t.Error("expected warnings below raised threshold")
	}
}
