package domain

import (
	"strings"
	"time"
)

// EntityType identifies which kind of person a complaint is about.
// It selects the pattern set used for name and affiliation extraction.
type EntityType string

// Known entity types.
const (
	EntityStudent EntityType = "student"
	EntityFaculty EntityType = "faculty"
	EntityStaff   EntityType = "staff"
)

// ParseEntityType normalizes a raw entity type string.
// Unknown or empty values default to student.
func ParseEntityType(s string) EntityType {
	switch EntityType(strings.ToLower(strings.TrimSpace(s))) {
	case EntityFaculty:
		return EntityFaculty
	case EntityStaff:
		return EntityStaff
	default:
		return EntityStudent
	}
}

// Extraction regime constants. The regime records which strategy produced
// the identity: labeled form fields or free-form prose.
const (
	RegimeTemplate  = "template"
	RegimeNarrative = "narrative"
	RegimeNone      = ""
)

// ExtractedIdentity holds a person's name split into first and last name.
// Particle words (de, dela, del, van, von, san, santa) always bind to the
// last name and are never split across the first/last boundary.
type ExtractedIdentity struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// FullName returns the concatenation of first and last name.
func (i ExtractedIdentity) FullName() string {
	switch {
	case i.FirstName != "" && i.LastName != "":
		return i.FirstName + " " + i.LastName
	case i.FirstName != "":
		return i.FirstName
	default:
		return i.LastName
	}
}

// Empty reports whether no name part was found.
func (i ExtractedIdentity) Empty() bool {
	return i.FirstName == "" && i.LastName == ""
}

// ExtractedAffiliation holds the organizational attributes of the subject.
// Semantics depend on entity type: program+section for students, department
// for faculty, position for staff.
type ExtractedAffiliation struct {
	ProgramOrDept     string `json:"program_or_dept"`
	SectionOrPosition string `json:"section_or_position"`
}

// ExtractedOffense is one taxonomy entry matched against the incident text.
type ExtractedOffense struct {
	Code        string `json:"code"`
	Label       string `json:"label"`
	Category    string `json:"category"`
	Severity    int    `json:"severity"`
	MatchMethod string `json:"match_method"` // "regex", "keyword", or "none"
	MatchedText string `json:"matched_text,omitempty"`
}

// ExtractionResult aggregates everything pulled out of a single complaint text.
// It is created fresh per extraction call and never persisted by this service.
type ExtractionResult struct {
	EntityType  EntityType           `json:"entity_type"`
	Regime      string               `json:"regime"`
	Identity    ExtractedIdentity    `json:"identity"`
	Affiliation ExtractedAffiliation `json:"affiliation"`
	Date        string               `json:"date"`
	Description string               `json:"description"`
	Offense     ExtractedOffense     `json:"offense"`
	Confidence  float64              `json:"extraction_confidence"`
	Warnings    []string             `json:"warnings,omitempty"`
	ExtractedAt time.Time            `json:"extracted_at"`
}
