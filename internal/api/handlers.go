package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuswatch/extractor/internal/domain"
	"github.com/campuswatch/extractor/internal/extractor"
	"github.com/campuswatch/extractor/internal/logging"
	"github.com/campuswatch/extractor/internal/ocrclient"
	"github.com/campuswatch/extractor/internal/processor"
	"github.com/campuswatch/extractor/internal/taxonomy"
	"github.com/campuswatch/extractor/internal/telemetry"
)

// Handler handles HTTP requests for the extractor API.
type Handler struct {
	engine          *extractor.Engine
	batch           *processor.BatchProcessor
	tax             *taxonomy.Taxonomy
	ocr             *ocrclient.Client
	telemetry       *telemetry.Provider
	logger          logging.Logger
	maxBatchItems   int
	reviewThreshold float64
}

// NewHandler creates a new API handler. ocr may be nil when no OCR
// collaborator is configured; the document route then reports it
// unavailable. tel may be nil, which leaves the handler unmetered.
func NewHandler(
	engine *extractor.Engine,
	batch *processor.BatchProcessor,
	tax *taxonomy.Taxonomy,
	ocr *ocrclient.Client,
	tel *telemetry.Provider,
	logger logging.Logger,
	maxBatchItems int,
	reviewThreshold float64,
) *Handler {
	return &Handler{
		engine:          engine,
		batch:           batch,
		tax:             tax,
		ocr:             ocr,
		telemetry:       tel,
		logger:          logger,
		maxBatchItems:   maxBatchItems,
		reviewThreshold: reviewThreshold,
	}
}

// Extract handles POST /api/v1/extract
func (h *Handler) Extract(c *gin.Context) {
	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid extract request", logging.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entity := domain.ParseEntityType(req.EntityType)
	result := h.engine.Extract(c.Request.Context(), req.Text, entity)

	c.JSON(http.StatusOK, toExtractionResponse(result))
}

// ExtractBatch handles POST /api/v1/extract/batch
func (h *Handler) ExtractBatch(c *gin.Context) {
	var req BatchExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid batch extract request", logging.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "batch is empty"})
		return
	}
	if len(req.Items) > h.maxBatchItems {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "batch too large",
			"max_items": h.maxBatchItems,
		})
		return
	}

	items := make([]processor.BatchItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = processor.BatchItem{
			Index:      i,
			Text:       item.Text,
			EntityType: domain.ParseEntityType(item.EntityType),
		}
	}

	results := h.batch.Process(c.Request.Context(), items)

	resp := BatchExtractResponse{
		Results:      make([]ExtractionResponse, 0, len(results)),
		Total:        len(results),
		ReviewCutoff: h.reviewThreshold,
	}
	for _, r := range results {
		if r.Result.Confidence < h.reviewThreshold {
			resp.NeedsReview++
		}
		resp.Results = append(resp.Results, toExtractionResponse(r.Result))
	}
	c.JSON(http.StatusOK, resp)
}

// ExtractDocument handles POST /api/v1/extract/document
func (h *Handler) ExtractDocument(c *gin.Context) {
	var req DocumentExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid document extract request", logging.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.ocr == nil {
		h.recordDocumentFailure(c, "ocr_unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":      "no OCR service configured",
			"error_type": "ocr_unavailable",
		})
		return
	}

	recognized, err := h.ocr.Recognize(c.Request.Context(), req.ContentBase64, req.MimeType)
	if err != nil {
		if errors.Is(err, ocrclient.ErrUnavailable) {
			h.logger.Error("ocr service unavailable", logging.Error(err))
			h.recordDocumentFailure(c, "ocr_unavailable")
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":      "OCR engine unavailable",
				"error_type": "ocr_unavailable",
			})
			return
		}
		h.logger.Error("document recognition failed", logging.Error(err))
		h.recordDocumentFailure(c, "ocr_error")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if h.telemetry != nil {
		h.telemetry.RecordDocumentRecognized(c.Request.Context())
	}

	entity := domain.ParseEntityType(req.EntityType)
	result := h.engine.Extract(c.Request.Context(), recognized.Text, entity)

	c.JSON(http.StatusOK, toExtractionResponse(result))
}

func (h *Handler) recordDocumentFailure(c *gin.Context, errorType string) {
	if h.telemetry != nil {
		h.telemetry.RecordDocumentFailure(c.Request.Context(), errorType)
	}
}

// DetectOffenses handles POST /api/v1/offenses/detect
func (h *Handler) DetectOffenses(c *gin.Context) {
	var req DetectOffensesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid offense detection request", logging.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	matches := h.engine.DetectOffenses(c.Request.Context(), req.Text)
	out := make([]OffenseResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, toOffenseResponse(m))
	}
	c.JSON(http.StatusOK, gin.H{
		"matches": out,
		"total":   len(out),
	})
}

// GetTaxonomy handles GET /api/v1/taxonomy
func (h *Handler) GetTaxonomy(c *gin.Context) {
	entries := h.tax.Entries()
	resp := TaxonomyResponse{
		Entries: make([]domain.OffenseEntry, 0, len(entries)),
		Total:   len(entries),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, e.OffenseEntry)
	}
	c.JSON(http.StatusOK, resp)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// ReadyCheck handles GET /ready. The service is ready once the taxonomy is
// loaded; the OCR collaborator is reported but does not gate readiness,
// since text extraction works without it.
func (h *Handler) ReadyCheck(c *gin.Context) {
	status := gin.H{
		"status":           "ready",
		"taxonomy_entries": h.tax.Len(),
	}
	if h.ocr != nil {
		if err := h.ocr.Health(c.Request.Context()); err != nil {
			status["ocr"] = "unavailable"
		} else {
			status["ocr"] = "ok"
		}
	}
	c.JSON(http.StatusOK, status)
}
