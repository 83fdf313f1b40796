package extractor

import (
	"context"
	"regexp"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/campuswatch/extractor/internal/classifier"
	"github.com/campuswatch/extractor/internal/domain"
	"github.com/campuswatch/extractor/internal/logging"
	"github.com/campuswatch/extractor/internal/telemetry"
	"github.com/campuswatch/extractor/internal/textnorm"
)

// DefaultReviewThreshold is the confidence below which a result is flagged
// for manual review and annotated with field warnings.
const DefaultReviewThreshold = 0.5

// categoryPatterns find an explicitly stated offense category ("Category A",
// "kategorya: B") when the taxonomy scan found nothing.
var categoryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:offense\s+category|kategorya\s+ng\s+kaso|violation\s+type|uri\s+ng\s+paglabag|case\s+type|uri\s+ng\s+kaso)\s*[:\-]?\s*([A-Da-d])\b`),
	regexp.MustCompile(`(?i)(?:category|kategorya|klase)\s*[:\-]?\s*([A-Da-d])\b`),
}

// Engine runs the full extraction pipeline: normalize, resolve identity
// (template first, narrative fallback), extract affiliation and date, pull
// the description, classify the offense, and score confidence. Extract never
// fails; the worst possible outcome is an empty result with an UNKNOWN
// offense and confidence 0.0.
type Engine struct {
	norm            *textnorm.Normalizer
	identity        *IdentityResolver
	affiliation     *AffiliationExtractor
	date            *DateExtractor
	offenses        *classifier.OffenseClassifier
	logger          logging.Logger
	telemetry       *telemetry.Provider
	reviewThreshold float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithTelemetry attaches a telemetry provider. Without it the engine runs
// unmetered, which is how tests use it.
func WithTelemetry(p *telemetry.Provider) Option {
	return func(e *Engine) { e.telemetry = p }
}

// WithReviewThreshold overrides the manual-review confidence threshold.
func WithReviewThreshold(t float64) Option {
	return func(e *Engine) { e.reviewThreshold = t }
}

// NewEngine builds an extraction engine over the given offense classifier.
func NewEngine(offenses *classifier.OffenseClassifier, logger logging.Logger, opts ...Option) *Engine {
	e := &Engine{
		norm:            textnorm.New(),
		identity:        NewIdentityResolver(logger),
		affiliation:     NewAffiliationExtractor(),
		date:            NewDateExtractor(),
		offenses:        offenses,
		logger:          logger,
		reviewThreshold: DefaultReviewThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract runs the pipeline over one complaint text. The same input always
// produces the same result apart from the ExtractedAt timestamp.
func (e *Engine) Extract(ctx context.Context, text string, entity domain.EntityType) domain.ExtractionResult {
	start := time.Now()
	if e.telemetry != nil {
		var span trace.Span
		ctx, span = e.telemetry.StartSpan(ctx, "extractor.Extract",
			attribute.String("entity_type", string(entity)),
		)
		defer span.End()
	}

	lineText := e.norm.NormalizeLines(text)
	flatText := e.norm.Normalize(text)

	result := domain.ExtractionResult{
		EntityType:  entity,
		Offense:     domain.UnknownOffense(),
		ExtractedAt: time.Now(),
	}

	if flatText != "" {
		result.Identity, result.Regime = e.identity.Resolve(lineText, flatText)
		result.Affiliation = e.affiliation.Extract(entity, lineText)
		result.Date = e.date.Extract(lineText)
		result.Description = extractDescription(lineText, flatText)
		result.Offense = e.classifyOffense(ctx, result.Description, flatText)
	}

	result.Confidence = e.scoreConfidence(entity, &result)
	if result.Confidence < e.reviewThreshold {
		result.Warnings = fieldWarnings(entity, &result)
		if e.telemetry != nil {
			e.telemetry.RecordLowConfidence(ctx)
		}
	}

	duration := time.Since(start)
	if e.telemetry != nil {
		e.telemetry.RecordExtraction(ctx, string(entity), result.Regime, duration)
	}
	e.logger.Debug("extraction complete",
		logging.String("entity_type", string(entity)),
		logging.String("regime", result.Regime),
		logging.String("offense_code", result.Offense.Code),
		logging.Float64("confidence", result.Confidence),
		logging.Duration("duration", duration),
	)
	return result
}

// DetectOffenses returns every taxonomy match in text ranked by severity,
// or the UNKNOWN sentinel alone when nothing matches. This is the
// diagnostic path behind the offense-detection endpoint.
func (e *Engine) DetectOffenses(ctx context.Context, text string) []domain.ExtractedOffense {
	flat := e.norm.Normalize(text)

	start := time.Now()
	matches := e.offenses.DetectAll(flat)
	if e.telemetry != nil {
		method := domain.MatchMethodNone
		if len(matches) > 0 {
			method = matches[0].MatchMethod
		}
		e.telemetry.RecordOffenseMatch(ctx, method, time.Since(start))
	}

	if len(matches) == 0 {
		return []domain.ExtractedOffense{domain.UnknownOffense()}
	}
	return matches
}

// classifyOffense runs the taxonomy scan over the description, or the whole
// text when no description was isolated. When the scan finds nothing, the
// secondary path looks for an explicitly written category and a handbook
// offense name so the reviewer still gets a category to start from.
func (e *Engine) classifyOffense(ctx context.Context, description, flatText string) domain.ExtractedOffense {
	target := description
	if strings.TrimSpace(target) == "" {
		target = flatText
	}

	start := time.Now()
	offense := e.offenses.Detect(target)
	if e.telemetry != nil {
		e.telemetry.RecordOffenseMatch(ctx, offense.MatchMethod, time.Since(start))
	}
	if offense.Code != domain.UnknownOffenseCode {
		return offense
	}

	if name, category, ok := classifier.ScanKnownOffense(flatText); ok {
		offense.Label = name
		offense.Category = category
		return offense
	}
	if v, ok := firstCapture(flatText, categoryPatterns, nil); ok {
		offense.Category = strings.ToUpper(v)
	}
	return offense
}

// scoreConfidence is the populated-over-expected field ratio, rounded to two
// decimals. Which fields are expected depends on the entity profile.
func (e *Engine) scoreConfidence(entity domain.EntityType, r *domain.ExtractionResult) float64 {
	profile := profileFor(entity)

	populated := 0
	if r.Identity.FirstName != "" {
		populated++
	}
	if r.Identity.LastName != "" {
		populated++
	}
	if profile.hasSection {
		if r.Affiliation.ProgramOrDept != "" {
			populated++
		}
		if r.Affiliation.SectionOrPosition != "" {
			populated++
		}
	} else if r.Affiliation.ProgramOrDept != "" || r.Affiliation.SectionOrPosition != "" {
		populated++
	}
	if r.Date != "" {
		populated++
	}
	if categoryKnown(r.Offense) {
		populated++
	}
	if offenseKnown(r.Offense) {
		populated++
	}

	ratio := float64(populated) / float64(profile.expectedFields)
	return roundTo2(ratio)
}

// fieldWarnings lists the missing fields in reviewer-facing language.
func fieldWarnings(entity domain.EntityType, r *domain.ExtractionResult) []string {
	profile := profileFor(entity)

	var warnings []string
	if r.Identity.Empty() {
		warnings = append(warnings, "Name not found. Please enter manually.")
	}
	switch entity {
	case domain.EntityStaff:
		if r.Affiliation.SectionOrPosition == "" {
			warnings = append(warnings, "Position not found. Please enter manually.")
		}
	case domain.EntityFaculty:
		if r.Affiliation.ProgramOrDept == "" {
			warnings = append(warnings, "Department not found. Please enter manually.")
		}
	default:
		if r.Affiliation.ProgramOrDept == "" {
			warnings = append(warnings, "Program not found. Please enter manually.")
		}
		if profile.hasSection && r.Affiliation.SectionOrPosition == "" {
			warnings = append(warnings, "Section not found. Please enter manually.")
		}
	}
	if r.Date == "" {
		warnings = append(warnings, "Date not found. Please enter manually.")
	}
	if !offenseKnown(r.Offense) {
		warnings = append(warnings, "Offense not found. Please select manually.")
	}
	return warnings
}

func categoryKnown(o domain.ExtractedOffense) bool {
	return o.Category != "" && o.Category != "N/A"
}

func offenseKnown(o domain.ExtractedOffense) bool {
	return o.Code != domain.UnknownOffenseCode || o.Label != domain.UnknownOffenseLabel
}

func roundTo2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
