package extractor

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// maxDescriptionLen caps the residual description so a whole scanned letter
// does not end up in the description field verbatim.
const maxDescriptionLen = 500

// descriptionPatterns capture labeled incident narration, English and
// Filipino labels, in priority order. Captures run to end of line.
var descriptionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:description|deskripsyon|paglalarawan)[:\-]?\s*([^\n\r]+)`),
	regexp.MustCompile(`(?i)(?:details|mga\s+detalye|particulars)[:\-]?\s*([^\n\r]+)`),
	regexp.MustCompile(`(?i)(?:incident|pangyayari|event)[:\-]\s*([^\n\r]+)`),
	regexp.MustCompile(`(?i)(?:what\s+happened|ano\s+ang\s+nangyari|nangyari)[:\-]?\s*([^\n\r]+)`),
	regexp.MustCompile(`(?i)(?:narration|salaysay|story)[:\-]?\s*([^\n\r]+)`),
	regexp.MustCompile(`(?i)(?:account|ulat|report)[:\-]\s*([^\n\r]+)`),
	regexp.MustCompile(`(?i)(?:complaint|reklamo|sumbong)[:\-]\s*([^\n\r]+)`),
	regexp.MustCompile(`(?i)(?:allegation|akusasyon|paratang)[:\-]?\s*([^\n\r]+)`),
}

// extractDescription finds the incident narration. A labeled capture longer
// than 10 characters wins; otherwise the whole flattened text serves as the
// residual description. Both paths are capped at maxDescriptionLen.
func extractDescription(lineText, flatText string) string {
	if v, ok := firstCapture(lineText, descriptionPatterns, acceptDescription); ok {
		return truncate(v)
	}
	return truncate(flatText)
}

func acceptDescription(v string) bool {
	return len(strings.TrimSpace(v)) > 10
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxDescriptionLen {
		return s
	}
	cut := maxDescriptionLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return strings.TrimSpace(s[:cut])
}
