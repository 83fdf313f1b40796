package extractor

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/campuswatch/extractor/internal/domain"
	"github.com/campuswatch/extractor/internal/logging"
)

// surnameParticles are the compound-surname connectors common in Filipino
// names. A particle always binds to the last name: "Juan Miguel De La Cruz"
// splits into first "Juan Miguel", last "De La Cruz".
var surnameParticles = map[string]bool{
	"de":    true,
	"dela":  true,
	"del":   true,
	"van":   true,
	"von":   true,
	"san":   true,
	"santa": true,
}

// SplitFullName splits a full name into first and last name, keeping surname
// particles attached to the last name. The scan checks the third-from-last
// word first so that two-particle surnames ("De La Cruz") stay whole, then
// the second-from-last ("Dela Cruz"). With no particle the final word is the
// last name. A single word is treated as a first name only.
func SplitFullName(fullName string) domain.ExtractedIdentity {
	parts := strings.Fields(strings.TrimSpace(fullName))
	switch len(parts) {
	case 0:
		return domain.ExtractedIdentity{}
	case 1:
		return domain.ExtractedIdentity{FirstName: parts[0]}
	}

	split := len(parts) - 1
	if len(parts) >= 3 && surnameParticles[strings.ToLower(parts[len(parts)-3])] {
		split = len(parts) - 3
	} else if surnameParticles[strings.ToLower(parts[len(parts)-2])] {
		split = len(parts) - 2
	}
	if split == 0 {
		// Name is all surname ("Dela Cruz"); keep it in the last name slot.
		return domain.ExtractedIdentity{LastName: strings.Join(parts, " ")}
	}

	return domain.ExtractedIdentity{
		FirstName: strings.Join(parts[:split], " "),
		LastName:  strings.Join(parts[split:], " "),
	}
}

// IdentityResolver extracts the subject's name from complaint text. It tries
// the template regime first (labeled form fields) and falls back to narrative
// scanning only when the template yields nothing.
type IdentityResolver struct {
	titler cases.Caser
	logger logging.Logger
}

// NewIdentityResolver returns a resolver ready for use.
func NewIdentityResolver(logger logging.Logger) *IdentityResolver {
	return &IdentityResolver{
		titler: cases.Title(language.English),
		logger: logger,
	}
}

// Resolve extracts a name from lineText (line boundaries preserved, for the
// template regime) and flatText (whitespace collapsed, for narrative
// scanning). It returns the identity and the regime that produced it; an
// empty identity carries domain.RegimeNone.
func (r *IdentityResolver) Resolve(lineText, flatText string) (domain.ExtractedIdentity, string) {
	if id := r.resolveTemplate(lineText); !id.Empty() {
		return id, domain.RegimeTemplate
	}
	if id := r.resolveNarrative(flatText); !id.Empty() {
		return id, domain.RegimeNarrative
	}
	return domain.ExtractedIdentity{}, domain.RegimeNone
}

// resolveTemplate reads labeled name fields. Form fields are often typed in
// all caps, so captures are title-cased when they carry no lowercase letters.
func (r *IdentityResolver) resolveTemplate(lineText string) domain.ExtractedIdentity {
	var id domain.ExtractedIdentity
	if v, ok := firstCapture(lineText, lastNameLabelPatterns, nil); ok {
		id.LastName = r.tidyNamePart(v)
	}
	if v, ok := firstCapture(lineText, firstNameLabelPatterns, nil); ok {
		id.FirstName = r.tidyNamePart(v)
	}
	return id
}

// resolveNarrative scans prose for a name using the context-pattern cascade.
// Candidates are cleaned, checked against the deny list and the proper-name
// shape, then split on surname particles. The first acceptable candidate
// wins.
func (r *IdentityResolver) resolveNarrative(flatText string) domain.ExtractedIdentity {
	for _, candidate := range allCaptures(flatText, narrativeNamePatterns) {
		name := strings.TrimSpace(trailingNoise.ReplaceAllString(candidate, ""))
		if !acceptName(name) {
			continue
		}
		r.logger.Debug("narrative name candidate accepted",
			logging.String("name", name),
		)
		return SplitFullName(name)
	}
	return domain.ExtractedIdentity{}
}

// tidyNamePart trims a template field value and normalizes all-caps input.
func (r *IdentityResolver) tidyNamePart(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && !strings.ContainsFunc(v, unicode.IsLower) {
		v = r.titler.String(strings.ToLower(v))
	}
	return v
}

// acceptName validates a narrative candidate: not a known false positive, no
// digits, 2-4 capitalized words (up to 6 when the name contains a surname
// particle, since the particle words inflate the count).
func acceptName(name string) bool {
	if name == "" {
		return false
	}
	lower := strings.ToLower(name)
	for _, deny := range narrativeDenyList {
		if lower == deny {
			return false
		}
	}
	if strings.ContainsFunc(name, unicode.IsDigit) {
		return false
	}

	parts := strings.Fields(name)
	maxWords := 4
	for _, p := range parts {
		if surnameParticles[strings.ToLower(p)] {
			maxWords = 6
			break
		}
	}
	if len(parts) < 2 || len(parts) > maxWords {
		return false
	}
	for _, p := range parts {
		r0, _ := utf8.DecodeRuneInString(p)
		if !unicode.IsUpper(r0) {
			return false
		}
	}
	return true
}
