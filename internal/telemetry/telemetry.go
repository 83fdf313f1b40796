// Package telemetry provides OpenTelemetry instrumentation for the extractor
// service. It exports Prometheus metrics and provides tracing capabilities.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "extractor"

// Metrics holds all extractor Prometheus metrics
type Metrics struct {
	// Extraction metrics
	ExtractionsTotal   *prometheus.CounterVec
	ExtractionDuration *prometheus.HistogramVec
	LowConfidenceTotal prometheus.Counter
	BatchSize          prometheus.Histogram

	// Offense matching metrics
	OffenseMatchTotal    *prometheus.CounterVec
	OffenseMatchDuration prometheus.Histogram
	TaxonomyEntries      prometheus.Gauge

	// Document recognition metrics
	DocumentsRecognized prometheus.Counter
	DocumentsFailed     *prometheus.CounterVec

	// Worker pool metrics
	ActiveWorkers prometheus.Gauge
}

// Provider wraps telemetry providers
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for /metrics endpoint
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	m := &Metrics{}
	initExtractionMetrics(m)
	initOffenseMetrics(m)
	initDocumentMetrics(m)
	initWorkerMetrics(m)
	return m
}

func initExtractionMetrics(m *Metrics) {
	m.ExtractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "extractor_extractions_total",
		Help: "Total extractions performed, by entity type and regime",
	}, []string{"entity_type", "regime"})

	m.ExtractionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "extractor_extraction_duration_seconds",
		Help:    "Time to extract a single complaint text",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	}, []string{"entity_type"})

	m.LowConfidenceTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "extractor_low_confidence_total",
		Help: "Extractions below the manual-review confidence threshold",
	})

	m.BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "extractor_batch_size",
		Help:    "Number of texts per batch request",
		Buckets: []float64{1, 5, 10, 25, 50, 100},
	})
}

func initOffenseMetrics(m *Metrics) {
	m.OffenseMatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "extractor_offense_matches_total",
		Help: "Offense detections by match method (regex, keyword, none)",
	}, []string{"match_method"})

	m.OffenseMatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "extractor_offense_match_duration_seconds",
		Help:    "Time spent matching text against the offense taxonomy",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
	})

	m.TaxonomyEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "extractor_taxonomy_entries",
		Help: "Number of offense taxonomy entries loaded",
	})
}

func initDocumentMetrics(m *Metrics) {
	m.DocumentsRecognized = promauto.NewCounter(prometheus.CounterOpts{
		Name: "extractor_documents_recognized_total",
		Help: "Documents successfully run through OCR",
	})

	m.DocumentsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "extractor_documents_failed_total",
		Help: "Documents that failed OCR, by error type",
	}, []string{"error_type"})
}

func initWorkerMetrics(m *Metrics) {
	m.ActiveWorkers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "extractor_active_workers",
		Help: "Currently active batch worker goroutines",
	})
}

// RecordExtraction records metrics for a single extraction
func (p *Provider) RecordExtraction(ctx context.Context, entityType, regime string, duration time.Duration) {
	if regime == "" {
		regime = "none"
	}
	p.Metrics.ExtractionsTotal.WithLabelValues(entityType, regime).Inc()
	p.Metrics.ExtractionDuration.WithLabelValues(entityType).Observe(duration.Seconds())
}

// RecordLowConfidence counts an extraction flagged for manual review
func (p *Provider) RecordLowConfidence(ctx context.Context) {
	p.Metrics.LowConfidenceTotal.Inc()
}

// RecordOffenseMatch records an offense detection outcome
func (p *Provider) RecordOffenseMatch(ctx context.Context, matchMethod string, duration time.Duration) {
	p.Metrics.OffenseMatchTotal.WithLabelValues(matchMethod).Inc()
	p.Metrics.OffenseMatchDuration.Observe(duration.Seconds())
}

// SetTaxonomyEntries sets the loaded taxonomy size
func (p *Provider) SetTaxonomyEntries(count int) {
	p.Metrics.TaxonomyEntries.Set(float64(count))
}

// RecordDocumentRecognized counts a successful OCR pass
func (p *Provider) RecordDocumentRecognized(ctx context.Context) {
	p.Metrics.DocumentsRecognized.Inc()
}

// RecordDocumentFailure records a failed OCR pass with error type
func (p *Provider) RecordDocumentFailure(ctx context.Context, errorType string) {
	p.Metrics.DocumentsFailed.WithLabelValues(errorType).Inc()
}

// RecordBatchSize records the size of a processed batch
func (p *Provider) RecordBatchSize(size int) {
	p.Metrics.BatchSize.Observe(float64(size))
}

// SetActiveWorkers sets the current active worker count
func (p *Provider) SetActiveWorkers(count int) {
	p.Metrics.ActiveWorkers.Set(float64(count))
}

// StartSpan starts a new trace span.
// The caller is responsible for ending the span with span.End().
//
//nolint:spancheck // Caller is responsible for ending the span
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := p.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, span
}
