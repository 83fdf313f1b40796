// Package classifier ranks complaint text against the offense taxonomy.
// Matching is deterministic: every taxonomy entry is tried in declaration
// order, matches are ranked by severity, and equal severity keeps taxonomy
// declaration order.
package classifier

import (
	"sort"
	"strings"

	"github.com/campuswatch/extractor/internal/domain"
	"github.com/campuswatch/extractor/internal/logging"
	"github.com/campuswatch/extractor/internal/taxonomy"
)

// OffenseClassifier matches complaint text against the loaded taxonomy.
// It is immutable after construction and safe for concurrent use.
type OffenseClassifier struct {
	tax    *taxonomy.Taxonomy
	index  *keywordIndex
	logger logging.Logger
}

// New builds a classifier over tax. The keyword automaton is built once
// here; per-call work is a single automaton pass plus the candidate entries'
// own checks.
func New(tax *taxonomy.Taxonomy, logger logging.Logger) *OffenseClassifier {
	return &OffenseClassifier{
		tax:    tax,
		index:  newKeywordIndex(tax),
		logger: logger,
	}
}

// Detect returns the highest-severity offense matched in text. When several
// matches share the top severity the one declared first in the taxonomy
// wins. No match returns the UNKNOWN sentinel.
func (c *OffenseClassifier) Detect(text string) domain.ExtractedOffense {
	matches := c.DetectAll(text)
	if len(matches) == 0 {
		return domain.UnknownOffense()
	}
	return matches[0]
}

// DetectAll returns every offense matched in text, ordered by severity
// descending with taxonomy declaration order breaking ties. Empty input
// yields no matches.
func (c *OffenseClassifier) DetectAll(text string) []domain.ExtractedOffense {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	lower := strings.ToLower(text)
	candidates := c.index.candidates(text)

	var matches []domain.ExtractedOffense
	for i, entry := range c.tax.Entries() {
		if m, ok := matchEntry(entry, text, lower, candidates[i]); ok {
			matches = append(matches, m)
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Severity > matches[b].Severity
	})

	if len(matches) > 0 {
		c.logger.Debug("offense matches ranked",
			logging.Int("matches", len(matches)),
			logging.String("top_code", matches[0].Code),
			logging.Int("top_severity", matches[0].Severity),
		)
	}
	return matches
}

// matchEntry checks one taxonomy entry: regex first, then keywords in
// declared order. keywordCandidate is the automaton's verdict on whether any
// of the entry's keywords occur at all; false lets the scan skip the
// per-keyword pass without changing its outcome.
func matchEntry(entry taxonomy.Entry, text, lower string, keywordCandidate bool) (domain.ExtractedOffense, bool) {
	if entry.Pattern != nil {
		if loc := entry.Pattern.FindString(text); loc != "" {
			return offenseFrom(entry, domain.MatchMethodRegex, loc), true
		}
	}
	if keywordCandidate {
		for _, kw := range entry.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return offenseFrom(entry, domain.MatchMethodKeyword, kw), true
			}
		}
	}
	return domain.ExtractedOffense{}, false
}

func offenseFrom(entry taxonomy.Entry, method, matched string) domain.ExtractedOffense {
	return domain.ExtractedOffense{
		Code:        entry.Code,
		Label:       entry.Label,
		Category:    entry.Category,
		Severity:    entry.Severity,
		MatchMethod: method,
		MatchedText: matched,
	}
}
