package domain

// OffenseEntry is one entry of the offense taxonomy reference data.
// Entries are loaded once at process start and never mutated afterwards.
type OffenseEntry struct {
	Code     string   `json:"code"`
	Label    string   `json:"label"`
	Category string   `json:"category"` // severity band A-D
	Severity int      `json:"severity"` // higher = more serious
	Regex    string   `json:"regex,omitempty"`
	Keywords []string `json:"keywords"`
}

// Match method constants.
const (
	MatchMethodRegex   = "regex"
	MatchMethodKeyword = "keyword"
	MatchMethodNone    = "none"
)

// Sentinel values returned when no taxonomy entry matches.
const (
	UnknownOffenseCode  = "UNKNOWN"
	UnknownOffenseLabel = "Unclassified"
)

// UnknownOffense returns the sentinel offense used when nothing in the
// taxonomy matched the text.
func UnknownOffense() ExtractedOffense {
	return ExtractedOffense{
		Code:        UnknownOffenseCode,
		Label:       UnknownOffenseLabel,
		Category:    "N/A",
		Severity:    0,
		MatchMethod: MatchMethodNone,
	}
}
