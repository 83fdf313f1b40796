package extractor

import "regexp"

// Student program patterns, template labels first, then narrative phrasing.
var programPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:Program|Course|Kurso)[:\-]\s*([^\n\r]+)`),
	regexp.MustCompile(`(?i)(?:enrolled\s+in|taking\s+up|taking)\s+(Bachelor\s+of\s+(?:Science|Arts)(?:\s+in\s+[A-Za-z ]+)?)`),
	regexp.MustCompile(`(?i)\b(Bachelor\s+of\s+(?:Science|Arts)\s+in\s+[A-Za-z ]+?)(?:\s+(?:student|from|was|were|section)\b|[.,]|$)`),
	regexp.MustCompile(`(?i)from\s+(?:the\s+)?(BS[A-Z]{1,4})\s+(?:Department|program)`),
	regexp.MustCompile(`\b(B[SA][A-Z]{1,4})\b`),
}

// Faculty department patterns.
var departmentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:Department|Dept\.?|Departamento)[:\-]\s*([^\n\r]+)`),
	regexp.MustCompile(`(?i)(?:from|of|in)\s+the\s+([A-Za-z ]+?)\s+Department`),
	regexp.MustCompile(`(?i)\b(ICT|GE|BM)\s+Department`),
	regexp.MustCompile(`(?i)Department\s+of\s+([A-Za-z ]+?)(?:[.,]|$)`),
}

// departmentCanonical expands the registrar's department acronyms to the
// names used on official records.
var departmentCanonical = map[string]string{
	"ICT": "Information Communications Technology (ICT)",
	"GE":  "General Education (GE)",
	"BM":  "Business and Management (BM)",
}

// Staff position patterns. The role-word alternation mirrors the job titles
// that appear in incident reports about non-teaching personnel.
var positionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:Position|Role|Posisyon|Trabaho)[:\-]\s*([^\n\r]+)`),
	regexp.MustCompile(`(?i)(?:works?\s+as|working\s+as|employed\s+as|hired\s+as)\s+(?:an?\s+)?([A-Za-z ]+?)(?:\s+(?:at|in|was|were)\b|[.,]|$)`),
	regexp.MustCompile(`(?i)\b(secretary|clerk|security\s+guard|guard|janitor|custodian|librarian|cashier|registrar|nurse|maintenance\s+(?:staff|worker)|utility\s+worker|driver)\b`),
}

// Section patterns for students: labeled fields, section keywords, then bare
// section codes ("BSIT-3A", "3A", "A1").
var sectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Section[:\-]\s*([^\n\r]+)`),
	regexp.MustCompile(`(?i)(?:section|seksyon|class|klase)\s+([A-Za-z0-9\-]{1,10})`),
	regexp.MustCompile(`\b([A-Z]{2,4}-?\d{1,3}[A-Z]?)\b`),
	regexp.MustCompile(`\b(\d[A-Z])\b`),
	regexp.MustCompile(`\b([A-Z]\d)\b`),
}
