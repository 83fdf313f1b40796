package extractor

import "regexp"

// properName matches a capitalized token sequence of 2-5 words. Particle
// words in narrative prose ("Juan Miguel De La Cruz") are themselves
// capitalized, so a single shape covers plain and compound surnames; the
// word-count check in acceptName enforces the tighter limits.
const properName = `([A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,4})`

// Template-regime label patterns, in priority order. Values run to end of
// line, so these are matched against line-preserving text.
var (
	lastNameLabelPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Last\s*Name[:\-]\s*([^\n\r]+)`),
		regexp.MustCompile(`(?i)(?:Apelyido|Surname)[:\-]\s*([^\n\r]+)`),
	}

	firstNameLabelPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)First\s*Name[:\-]\s*([^\n\r]+)`),
		regexp.MustCompile(`(?i)(?:Unang\s+Pangalan|Given\s+Name)[:\-]\s*([^\n\r]+)`),
	}
)

// Narrative-regime context patterns, in priority order. Each anchors on a
// role keyword, a Filipino name marker, or an action verb and captures the
// adjacent proper-name sequence. The first pattern that yields an acceptable
// candidate wins.
var narrativeNamePatterns = []*regexp.Regexp{
	// "Full Name: Juan Dela Cruz" / "name is Juan Dela Cruz"
	regexp.MustCompile(`\b(?i:full\s+name|name|pangalan|ngalan)\s*(?:[:=]|(?i:is|was|ay))\s*` + properName),

	// "The student Juan Miguel De La Cruz from BSIT 3A"
	regexp.MustCompile(`\b(?i:student|estudyante|mag-aaral|pupil|learner)\s+` + properName),

	// "Faculty Member Michael Ramos, instructor" / "staff member Carlo Mendoza from"
	regexp.MustCompile(`\b(?i:faculty\s+member|staff\s+member|employee|instructor|professor|offender)\s+(?i:named\s+)?` + properName),

	// Filipino markers: "si Juan Dela Cruz", "kay Maria Santos", "ni Pedro Reyes"
	regexp.MustCompile(`\b(?i:si|kay|ni)\s+` + properName),

	// "found/caught/saw/reported the student Juan Dela Cruz"
	regexp.MustCompile(`\b(?i:found|caught|saw|reported|witnessed)\s+(?i:the\s+student\s+)?` + properName),

	// Name before an action verb: "Juan Miguel De La Cruz was caught smoking"
	regexp.MustCompile(properName + `\s+(?i:was|were|admitted|confessed|committed|caught|violated|engaged|participated)\b`),

	// "regarding student Juan Dela Cruz", "complaint about Maria Santos"
	regexp.MustCompile(`\b(?i:regarding|concerning|about)\s+(?i:student\s+|the\s+)?` + properName),
}

// narrativeDenyList holds phrases the narrative scanner has historically
// mistaken for names. A candidate equal to any of these (case-insensitive)
// is rejected. The list is part of the accepted behavior of the extractor,
// not a heuristic to improve on.
var narrativeDenyList = []string{
	"information technology",
	"science in",
	"bachelor of",
	"category a",
	"smoking inside",
	"the student",
	"a student",
	"from section",
	"section from",
	"the janitor",
	"de la",
	"inside campus",
	"the offender",
	"this report",
	"this letter",
}

// trailingNoise strips stray trailing tokens a capture may drag along.
var trailingNoise = regexp.MustCompile(`(?i)\s+(from|was|were|is)\s*$`)
