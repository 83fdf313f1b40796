package extractor

import (
	"regexp"
	"strings"
	"time"
)

const monthNamesEN = `January|February|March|April|May|June|July|August|September|October|November|December`
const monthNamesFIL = `Enero|Pebrero|Marso|Abril|Mayo|Hunyo|Hulyo|Agosto|Setyembre|Oktubre|Nobyembre|Disyembre`

// filipinoMonths maps Filipino month names to their English equivalents so a
// single set of time layouts can parse both.
var filipinoMonths = map[string]string{
	"enero":     "January",
	"pebrero":   "February",
	"marso":     "March",
	"abril":     "April",
	"mayo":      "May",
	"hunyo":     "June",
	"hulyo":     "July",
	"agosto":    "August",
	"setyembre": "September",
	"oktubre":   "October",
	"nobyembre": "November",
	"disyembre": "December",
}

// datePatterns, in priority order: labeled date fields, month-name dates in
// English and Filipino, then numeric forms.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:Date|Petsa|Date\s+of\s+Incident|Incident\s+Date)[:\-]\s*([^\n\r]+)`),
	regexp.MustCompile(`(?i)\b((?:` + monthNamesEN + `)\s+\d{1,2},?\s+\d{4})\b`),
	regexp.MustCompile(`(?i)\b(\d{1,2}\s+(?:ng\s+)?(?:` + monthNamesEN + `|` + monthNamesFIL + `),?\s+\d{4})\b`),
	regexp.MustCompile(`(?i)\b((?:` + monthNamesFIL + `)\s+\d{1,2},?\s+\d{4})\b`),
	regexp.MustCompile(`\b(\d{4}-\d{1,2}-\d{1,2})\b`),
	regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{4})\b`),
}

// dateLayouts are tried in order against the cleaned capture. Month/day
// order is ambiguous for slash dates; month-first wins, matching how the
// intake office writes them.
var dateLayouts = []string{
	"January 2, 2006",
	"January 2 2006",
	"2 January 2006",
	"2 January, 2006",
	"2006-01-02",
	"2006-1-2",
	"1/2/2006",
	"2/1/2006",
}

// DateExtractor finds the incident date in complaint text.
type DateExtractor struct{}

// NewDateExtractor returns an extractor ready for use.
func NewDateExtractor() *DateExtractor {
	return &DateExtractor{}
}

// Extract returns the incident date in ISO form (2006-01-02) when the
// capture parses, or the raw capture when it does not, so a human reviewer
// still sees what the document said. Empty string means no date was found.
func (e *DateExtractor) Extract(lineText string) string {
	raw, ok := firstCapture(lineText, datePatterns, nil)
	if !ok {
		return ""
	}
	if iso, ok := parseDate(raw); ok {
		return iso
	}
	return raw
}

// parseDate normalizes a raw date capture to ISO form.
func parseDate(raw string) (string, bool) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimSuffix(cleaned, ".")

	// Translate Filipino month names and drop the "ng" connector
	// ("ika-7 ng Oktubre" style dates).
	words := strings.Fields(cleaned)
	out := words[:0]
	for _, w := range words {
		key := strings.ToLower(strings.Trim(w, ","))
		if key == "ng" {
			continue
		}
		if en, ok := filipinoMonths[key]; ok {
			if strings.HasSuffix(w, ",") {
				en += ","
			}
			w = en
		}
		out = append(out, w)
	}
	cleaned = strings.Join(out, " ")

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}
