package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/scrapetab/internal/database"
	"github.com/nao1215/scrapetab/internal/model"
)

// BatchProcessor runs one pipeline per query, strictly in sequence.
// All pipelines share one database session, which only serves one
// statement at a time.
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each query.
	pipelineFactory func(q database.Query) *Pipeline

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// NewBatchProcessor creates a new BatchProcessor.
//
// The pipelineFactory function is called for each query to create a fresh
// pipeline, so no state leaks between queries.
func NewBatchProcessor(pipelineFactory func(q database.Query) *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatchWithCallback runs every query and calls callback with each
// finished run and its index, in query order.
// A failing query is recorded in its run and the batch continues.
// Once ctx is cancelled no further query is started; the query already
// running finishes and ctx.Err() is returned.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	queries []database.Query,
	callback func(run *model.Run, index int),
) error {
	bp.logger.Info("starting query batch", "total_queries", len(queries))
	startTime := time.Now()

	for i, q := range queries {
		select {
		case <-ctx.Done():
			bp.logger.Warn("query batch interrupted",
				"completed", i,
				"total_queries", len(queries),
				"reason", ctx.Err(),
			)
			return ctx.Err()
		default:
		}

		bp.logger.Info("running query",
			"query", q.Name,
			"index", i+1,
			"total", len(queries),
		)

		run := model.NewRun(q.Name, q.Title, nil)

		// The in-flight query is not interrupted; cancellation takes
		// effect before the next one starts.
		if err := bp.pipelineFactory(q).Execute(context.WithoutCancel(ctx), run); err != nil {
			bp.logger.Warn("query failed", "query", q.Name, "error", err)
		}

		callback(run, i)
	}

	bp.logger.Info("query batch complete",
		"total_queries", len(queries),
		"elapsed", time.Since(startTime),
	)
	return nil
}

// Succeeded returns the number of runs that finished without error.
func Succeeded(runs []*model.Run) int {
	n := 0
	for _, r := range runs {
		if !r.Failed() {
			n++
		}
	}
	return n
}
