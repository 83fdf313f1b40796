package api

import (
	"time"

	"github.com/campuswatch/extractor/internal/domain"
)

// ExtractRequest is the body for POST /api/v1/extract.
type ExtractRequest struct {
	Text       string `json:"text"`
	EntityType string `json:"entity_type"`
}

// BatchExtractRequest is the body for POST /api/v1/extract/batch.
type BatchExtractRequest struct {
	Items []ExtractRequest `json:"items" binding:"required"`
}

// DocumentExtractRequest is the body for POST /api/v1/extract/document.
// The document bytes are forwarded to the OCR collaborator; only the
// recognized text comes back for extraction.
type DocumentExtractRequest struct {
	ContentBase64 string `json:"content_base64" binding:"required"`
	MimeType      string `json:"mime_type"      binding:"required"`
	EntityType    string `json:"entity_type"`
}

// DetectOffensesRequest is the body for POST /api/v1/offenses/detect.
type DetectOffensesRequest struct {
	Text string `json:"text" binding:"required"`
}

// ExtractionResponse is the output contract consumed by the case-intake
// workflow. Key names follow the intake form fields, not the internal
// domain types: section for students, department for faculty, position for
// staff; full_name is set on the narrative path only.
type ExtractionResponse struct {
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	FullName        string   `json:"full_name,omitempty"`
	ProgramOrDept   string   `json:"program_or_dept,omitempty"`
	Section         string   `json:"section,omitempty"`
	Department      string   `json:"department,omitempty"`
	Position        string   `json:"position,omitempty"`
	Date            string   `json:"date"`
	OffenseCategory string   `json:"offense_category"`
	OffenseType     string   `json:"offense_type"`
	OffenseCode     string   `json:"offense_code"`
	MatchMethod     string   `json:"match_method"`
	Description     string   `json:"description"`
	Confidence      float64  `json:"extraction_confidence"`
	ExtractedAt     string   `json:"extracted_at"`
	Warnings        []string `json:"warnings,omitempty"`
}

// OffenseResponse is one ranked offense match.
type OffenseResponse struct {
	Code        string `json:"code"`
	Label       string `json:"label"`
	Category    string `json:"category"`
	Severity    int    `json:"severity"`
	MatchMethod string `json:"match_method"`
	MatchedText string `json:"matched_text,omitempty"`
}

// BatchExtractResponse aggregates batch results with counts for the
// review dashboard.
type BatchExtractResponse struct {
	Results      []ExtractionResponse `json:"results"`
	Total        int                  `json:"total"`
	NeedsReview  int                  `json:"needs_review"`
	ReviewCutoff float64              `json:"review_cutoff"`
}

// TaxonomyResponse lists the loaded offense entries in declaration order.
type TaxonomyResponse struct {
	Entries []domain.OffenseEntry `json:"entries"`
	Total   int                   `json:"total"`
}

// toExtractionResponse maps a domain result onto the output contract.
func toExtractionResponse(r domain.ExtractionResult) ExtractionResponse {
	resp := ExtractionResponse{
		FirstName:       r.Identity.FirstName,
		LastName:        r.Identity.LastName,
		Date:            r.Date,
		OffenseCategory: r.Offense.Category,
		OffenseType:     r.Offense.Label,
		OffenseCode:     r.Offense.Code,
		MatchMethod:     r.Offense.MatchMethod,
		Description:     r.Description,
		Confidence:      r.Confidence,
		ExtractedAt:     r.ExtractedAt.Format(time.RFC3339),
		Warnings:        r.Warnings,
	}

	if r.Regime == domain.RegimeNarrative {
		resp.FullName = r.Identity.FullName()
	}

	switch r.EntityType {
	case domain.EntityFaculty:
		resp.ProgramOrDept = r.Affiliation.ProgramOrDept
		resp.Department = r.Affiliation.ProgramOrDept
	case domain.EntityStaff:
		resp.Position = r.Affiliation.SectionOrPosition
	default:
		resp.ProgramOrDept = r.Affiliation.ProgramOrDept
		resp.Section = r.Affiliation.SectionOrPosition
	}
	return resp
}

func toOffenseResponse(o domain.ExtractedOffense) OffenseResponse {
	return OffenseResponse{
		Code:        o.Code,
		Label:       o.Label,
		Category:    o.Category,
		Severity:    o.Severity,
		MatchMethod: o.MatchMethod,
		MatchedText: o.MatchedText,
	}
}
