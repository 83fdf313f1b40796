// Package processor runs extractions over batches of complaint texts with a
// bounded worker pool.
package processor

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/campuswatch/extractor/internal/domain"
	"github.com/campuswatch/extractor/internal/extractor"
	"github.com/campuswatch/extractor/internal/logging"
	"github.com/campuswatch/extractor/internal/telemetry"
)

const defaultConcurrency = 10

// BatchItem is one text to extract, tagged with its position in the batch so
// results can be returned in request order.
type BatchItem struct {
	Index      int
	Text       string
	EntityType domain.EntityType
}

// BatchResult pairs an item's index with its extraction result.
type BatchResult struct {
	Index  int
	Result domain.ExtractionResult
}

// BatchProcessor extracts multiple complaint texts in parallel using a
// worker pool. Extraction never fails per item, so a batch result always has
// one entry per input.
type BatchProcessor struct {
	engine      *extractor.Engine
	concurrency int
	logger      logging.Logger
	telemetry   *telemetry.Provider
}

// NewBatchProcessor creates a batch processor. Non-positive concurrency
// falls back to the default.
func NewBatchProcessor(engine *extractor.Engine, concurrency int, logger logging.Logger, tel *telemetry.Provider) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &BatchProcessor{
		engine:      engine,
		concurrency: concurrency,
		logger:      logger,
		telemetry:   tel,
	}
}

// Process extracts every item in the batch and returns results in item
// order. Workers stop early when ctx is cancelled; already-finished results
// are still returned.
func (b *BatchProcessor) Process(ctx context.Context, items []BatchItem) []BatchResult {
	if len(items) == 0 {
		return []BatchResult{}
	}

	b.logger.Info("starting batch extraction",
		logging.Int("batch_size", len(items)),
		logging.Int("concurrency", b.concurrency),
	)
	start := time.Now()
	if b.telemetry != nil {
		b.telemetry.RecordBatchSize(len(items))
	}

	jobs := make(chan BatchItem, len(items))
	results := make(chan BatchResult, len(items))

	var wg sync.WaitGroup
	if b.telemetry != nil {
		b.telemetry.SetActiveWorkers(b.concurrency)
		defer b.telemetry.SetActiveWorkers(0)
	}
	for i := 0; i < b.concurrency; i++ {
		wg.Add(1)
		go b.worker(ctx, i, jobs, results, &wg)
	}

	for _, item := range items {
		jobs <- item
	}
	close(jobs)

	wg.Wait()
	close(results)

	out := make([]BatchResult, 0, len(items))
	for r := range results {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })

	duration := time.Since(start)
	b.logger.Info("batch extraction complete",
		logging.Int("total", len(items)),
		logging.Int("completed", len(out)),
		logging.Duration("duration", duration),
	)
	return out
}

// Concurrency returns the worker pool size.
func (b *BatchProcessor) Concurrency() int {
	return b.concurrency
}

func (b *BatchProcessor) worker(
	ctx context.Context,
	id int,
	jobs <-chan BatchItem,
	results chan<- BatchResult,
	wg *sync.WaitGroup,
) {
	defer wg.Done()

	for item := range jobs {
		select {
		case <-ctx.Done():
			b.logger.Warn("worker stopping, context cancelled", logging.Int("worker_id", id))
			return
		default:
		}

		results <- BatchResult{
			Index:  item.Index,
			Result: b.engine.Extract(ctx, item.Text, item.EntityType),
		}
	}
}
