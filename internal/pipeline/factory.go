package pipeline

import (
	"io"
	"log/slog"
	"time"

	"github.com/nao1215/scrapetab/internal/database"
	"github.com/nao1215/scrapetab/internal/extract"
	"github.com/nao1215/scrapetab/internal/fetch"
	"github.com/nao1215/scrapetab/internal/metrics"
	"github.com/nao1215/scrapetab/internal/report"
)

// ListingPipelineConfig holds configuration for the listing pipeline.
type ListingPipelineConfig struct {
	// MaxResults caps the number of candidates normalized.
	MaxResults int

	// Delay is the pause between consecutive candidates.
	Delay time.Duration

	// Currency is the marker the heuristic locator looks for.
	Currency string

	// SaveTo is the result file path. Empty disables saving.
	SaveTo string

	// Format is the result file format.
	Format string

	// Recorder collects run metrics. May be nil.
	Recorder *metrics.Recorder
}

// ListingPipelineOption configures a ListingPipelineConfig.
type ListingPipelineOption func(*ListingPipelineConfig)

// WithMaxResults sets the candidate cap.
func WithMaxResults(n int) ListingPipelineOption {
	return func(c *ListingPipelineConfig) {
		c.MaxResults = n
	}
}

// WithDelay sets the pause between candidates.
func WithDelay(d time.Duration) ListingPipelineOption {
	return func(c *ListingPipelineConfig) {
		c.Delay = d
	}
}

// WithCurrency sets the heuristic currency marker.
func WithCurrency(marker string) ListingPipelineOption {
	return func(c *ListingPipelineConfig) {
		c.Currency = marker
	}
}

// WithSaveFile enables the result file.
func WithSaveFile(path, format string) ListingPipelineOption {
	return func(c *ListingPipelineConfig) {
		c.SaveTo = path
		c.Format = format
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r *metrics.Recorder) ListingPipelineOption {
	return func(c *ListingPipelineConfig) {
		c.Recorder = r
	}
}

// NewListingPipeline creates the fetch, extract, normalize, report and save
// steps of a listing search. The table and save notices go to out.
func NewListingPipeline(source fetch.Source, out io.Writer, pipelineOpts []Option, configOpts ...ListingPipelineOption) *Pipeline {
	p := New(pipelineOpts...)

	cfg := &ListingPipelineConfig{
		MaxResults: extract.DefaultMaxResults,
		Delay:      500 * time.Millisecond,
		Currency:   "₹",
		Format:     report.FormatText,
	}
	for _, opt := range configOpts {
		opt(cfg)
	}

	extractor := extract.New(
		extract.WithMaxResults(cfg.MaxResults),
		extract.WithCurrency(cfg.Currency),
		extract.WithLogger(p.logger),
	)

	p.AddSteps(
		NewFetchStep(source, cfg.Recorder, p.logger),
		NewExtractStep(extractor, cfg.Recorder, p.logger),
		NewNormalizeStep(cfg.Delay, cfg.Recorder, p.logger),
		NewReportStep(report.NewListingTableWriter(out)),
	)
	if cfg.SaveTo != "" {
		p.AddStep(NewSaveStep(cfg.SaveTo, cfg.Format, out, p.logger))
	}

	return p
}

// NewQueryPipeline creates the steps of one catalog statement.
// A count statement prints a page summary instead of a table.
func NewQueryPipeline(querier Querier, q database.Query, params database.Params, out io.Writer, recorder *metrics.Recorder, logger *slog.Logger) *Pipeline {
	p := New(WithLogger(logger))

	p.AddSteps(
		NewQueryStep(querier, q, recorder, p.logger),
		NewExtractRowsStep(recorder),
		NewNormalizeRowsStep(q.KeyColumn, recorder, p.logger),
	)

	if q.Name == database.QueryFamilyCount {
		p.AddStep(NewPageSummaryStep(params.Pagination, params.MinLength, out))
	} else {
		p.AddStep(NewReportStep(report.NewQueryTableWriter(out)))
	}

	return p
}
