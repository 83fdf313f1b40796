package extractor

import (
	"regexp"
	"strings"

	"github.com/campuswatch/extractor/internal/domain"
)

// entityProfile describes what affiliation data a given entity type carries
// and how many fields a complete extraction for it would populate. The
// expected-field count is the denominator of the confidence score.
type entityProfile struct {
	attributePatterns []*regexp.Regexp
	attributeField    string
	hasSection        bool
	expectedFields    int
}

// Students carry program and section; faculty and staff carry a single
// attribute, so their extractions have one fewer expected field.
var entityProfiles = map[domain.EntityType]entityProfile{
	domain.EntityStudent: {
		attributePatterns: programPatterns,
		attributeField:    "program",
		hasSection:        true,
		expectedFields:    7, // first, last, program, section, date, category, offense
	},
	domain.EntityFaculty: {
		attributePatterns: departmentPatterns,
		attributeField:    "department",
		expectedFields:    6,
	},
	domain.EntityStaff: {
		attributePatterns: positionPatterns,
		attributeField:    "position",
		expectedFields:    6,
	},
}

func profileFor(entity domain.EntityType) entityProfile {
	if p, ok := entityProfiles[entity]; ok {
		return p
	}
	return entityProfiles[domain.EntityStudent]
}

// AffiliationExtractor pulls the subject's organizational attributes out of
// complaint text using the pattern set for the given entity type.
type AffiliationExtractor struct{}

// NewAffiliationExtractor returns an extractor ready for use.
func NewAffiliationExtractor() *AffiliationExtractor {
	return &AffiliationExtractor{}
}

// Extract finds the program/department/position and, for students, the
// section. Template label patterns run against lineText; narrative patterns
// see the same text, so a single pass over lineText covers both shapes.
func (e *AffiliationExtractor) Extract(entity domain.EntityType, lineText string) domain.ExtractedAffiliation {
	profile := profileFor(entity)

	var aff domain.ExtractedAffiliation
	if v, ok := firstCapture(lineText, profile.attributePatterns, acceptAttribute); ok {
		aff.ProgramOrDept = canonicalAttribute(entity, v)
	}
	if profile.hasSection {
		if v, ok := firstCapture(lineText, sectionPatterns, acceptSection); ok {
			aff.SectionOrPosition = strings.ToUpper(v)
		}
	}

	if entity == domain.EntityStaff {
		// Staff have no program or department; their position fills the
		// section-or-position slot to keep the output contract uniform.
		aff.SectionOrPosition = aff.ProgramOrDept
		aff.ProgramOrDept = ""
	}
	return aff
}

// acceptAttribute rejects captures too short to be a real program,
// department, or position name. Known department acronyms pass even when
// shorter; canonicalAttribute expands them afterward.
func acceptAttribute(v string) bool {
	v = strings.TrimSpace(v)
	if _, ok := departmentCanonical[strings.ToUpper(v)]; ok {
		return true
	}
	return len(v) > 2
}

// acceptSection keeps section codes short; anything longer than 10
// characters is prose the bare-code patterns latched onto.
func acceptSection(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && len(v) <= 10
}

// canonicalAttribute expands known department acronyms and trims trailing
// punctuation from captured phrases.
func canonicalAttribute(entity domain.EntityType, v string) string {
	v = strings.TrimSpace(strings.Trim(v, ".,"))
	if entity == domain.EntityFaculty {
		if full, ok := departmentCanonical[strings.ToUpper(v)]; ok {
			return full
		}
	}
	return v
}
