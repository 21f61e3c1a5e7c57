package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/nao1215/scrapetab/internal/database"
	"github.com/nao1215/scrapetab/internal/extract"
	"github.com/nao1215/scrapetab/internal/fetch"
	"github.com/nao1215/scrapetab/internal/metrics"
	"github.com/nao1215/scrapetab/internal/model"
	"github.com/nao1215/scrapetab/internal/normalize"
	"github.com/nao1215/scrapetab/internal/report"
)

// FetchStep downloads the run's source and parses it into a document.
type FetchStep struct {
	source   fetch.Source
	recorder *metrics.Recorder
	logger   *slog.Logger
}

// NewFetchStep creates a FetchStep reading from source.
func NewFetchStep(source fetch.Source, recorder *metrics.Recorder, logger *slog.Logger) *FetchStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &FetchStep{source: source, recorder: recorder, logger: logger}
}

// Name returns the step name.
func (s *FetchStep) Name() string {
	return "fetch"
}

// Do executes the fetch step.
func (s *FetchStep) Do(ctx context.Context, run *model.Run) error {
	s.logger.Info("fetching listings", "url", run.Source)

	start := time.Now()
	body, err := s.source.Fetch(ctx, run.Source)
	s.recorder.ObserveFetch(metrics.PipelineListings, time.Since(start))
	if err != nil {
		s.recorder.IncFetchFailure(metrics.PipelineListings, fetch.FailureKind(err))
		return err
	}

	doc, err := extract.Parse(body)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", run.Source, err)
	}
	run.Document = doc
	return nil
}

// ExtractStep runs the locator chain over the fetched document.
type ExtractStep struct {
	extractor *extract.Extractor
	recorder  *metrics.Recorder
	logger    *slog.Logger
}

// NewExtractStep creates an ExtractStep using extractor.
func NewExtractStep(extractor *extract.Extractor, recorder *metrics.Recorder, logger *slog.Logger) *ExtractStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractStep{extractor: extractor, recorder: recorder, logger: logger}
}

// Name returns the step name.
func (s *ExtractStep) Name() string {
	return "extract"
}

// Do executes the extract step. The document is released afterwards.
func (s *ExtractStep) Do(_ context.Context, run *model.Run) error {
	result := s.extractor.Extract(run.Document)
	run.Document = nil

	run.Tier = result.Tier
	run.Found = result.Found
	run.Candidates = result.Candidates
	s.recorder.AddCandidates(metrics.PipelineListings, result.Tier.String(), len(result.Candidates))

	s.logger.Info("located listings",
		"tier", result.Tier.String(),
		"found", result.Found,
		"kept", len(result.Candidates),
	)
	return nil
}

// NormalizeStep turns web candidates into listing records, pausing between
// consecutive candidates.
type NormalizeStep struct {
	delay    time.Duration
	recorder *metrics.Recorder
	logger   *slog.Logger
}

// NewNormalizeStep creates a NormalizeStep waiting delay between candidates.
func NewNormalizeStep(delay time.Duration, recorder *metrics.Recorder, logger *slog.Logger) *NormalizeStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &NormalizeStep{delay: delay, recorder: recorder, logger: logger}
}

// Name returns the step name.
func (s *NormalizeStep) Name() string {
	return "normalize"
}

// Do executes the normalize step.
// Records produced before a cancellation stay in the run.
func (s *NormalizeStep) Do(ctx context.Context, run *model.Run) error {
	candidates := run.Candidates
	run.Candidates = nil

	for i, c := range candidates {
		if i > 0 {
			if err := sleep(ctx, s.delay); err != nil {
				return err
			}
		}
		s.apply(run, normalize.ListingOutcome(c), metrics.PipelineListings)
	}
	return nil
}

// apply stores one outcome in the run.
func (s *NormalizeStep) apply(run *model.Run, o model.Outcome, pipeline string) {
	run.Outcomes = append(run.Outcomes, o)
	if o.Dropped {
		s.logger.Warn("dropped candidate", "source", run.Source, "index", o.Index, "reason", o.Reason)
		s.recorder.IncDropped(pipeline)
		return
	}
	run.Result.Append(*o.Record)
	s.recorder.IncRecords(pipeline)
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Querier runs one catalog statement.
// *database.Session implements it.
type Querier interface {
	Query(ctx context.Context, q database.Query) (*model.RowSet, error)
}

// QueryStep runs one statement on a shared session.
type QueryStep struct {
	querier  Querier
	query    database.Query
	recorder *metrics.Recorder
	logger   *slog.Logger
}

// NewQueryStep creates a QueryStep running q on querier.
func NewQueryStep(querier Querier, q database.Query, recorder *metrics.Recorder, logger *slog.Logger) *QueryStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &QueryStep{querier: querier, query: q, recorder: recorder, logger: logger}
}

// Name returns the step name.
func (s *QueryStep) Name() string {
	return "query"
}

// Do executes the query step.
func (s *QueryStep) Do(ctx context.Context, run *model.Run) error {
	s.logger.Debug("running query", "query", s.query.Name)

	start := time.Now()
	rows, err := s.querier.Query(ctx, s.query)
	s.recorder.ObserveFetch(metrics.PipelineQuery, time.Since(start))
	if err != nil {
		s.recorder.IncFetchFailure(metrics.PipelineQuery, "query")
		return err
	}
	run.Rows = rows
	return nil
}

// ExtractRowsStep turns the raw rows into candidates. The rows are already
// structured, so nothing is located or filtered.
type ExtractRowsStep struct {
	recorder *metrics.Recorder
}

// NewExtractRowsStep creates an ExtractRowsStep.
func NewExtractRowsStep(recorder *metrics.Recorder) *ExtractRowsStep {
	return &ExtractRowsStep{recorder: recorder}
}

// Name returns the step name.
func (s *ExtractRowsStep) Name() string {
	return "extract_rows"
}

// Do executes the row extraction step. The row set is released afterwards.
func (s *ExtractRowsStep) Do(_ context.Context, run *model.Run) error {
	if run.Rows != nil && len(run.Result.Columns) == 0 {
		run.Result.Columns = run.Rows.Columns
	}
	run.RowCandidates = extract.Rows(run.Rows)
	run.Rows = nil

	run.Tier = model.TierRow
	run.Found = len(run.RowCandidates)
	s.recorder.AddCandidates(metrics.PipelineQuery, model.TierRow.String(), run.Found)
	return nil
}

// NormalizeRowsStep turns row candidates into records.
type NormalizeRowsStep struct {
	NormalizeStep
	keyColumn int
}

// NewNormalizeRowsStep creates a NormalizeRowsStep checking keyColumn.
func NewNormalizeRowsStep(keyColumn int, recorder *metrics.Recorder, logger *slog.Logger) *NormalizeRowsStep {
	return &NormalizeRowsStep{
		NormalizeStep: *NewNormalizeStep(0, recorder, logger),
		keyColumn:     keyColumn,
	}
}

// Name returns the step name.
func (s *NormalizeRowsStep) Name() string {
	return "normalize_rows"
}

// Do executes the row normalization step.
func (s *NormalizeRowsStep) Do(_ context.Context, run *model.Run) error {
	candidates := run.RowCandidates
	run.RowCandidates = nil

	for _, c := range candidates {
		s.apply(run, normalize.RowOutcome(c, s.keyColumn), metrics.PipelineQuery)
	}
	return nil
}

// ReportStep writes the result set with a report.Writer.
type ReportStep struct {
	writer report.Writer
}

// NewReportStep creates a ReportStep writing to w.
func NewReportStep(w report.Writer) *ReportStep {
	return &ReportStep{writer: w}
}

// Name returns the step name.
func (s *ReportStep) Name() string {
	return "report"
}

// Do executes the report step.
func (s *ReportStep) Do(_ context.Context, run *model.Run) error {
	if _, err := s.writer.Write(run.Result); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// SaveStep writes the result set to a file. A failure to save is reported
// and otherwise ignored.
type SaveStep struct {
	path   string
	format string
	out    io.Writer
	logger *slog.Logger
}

// NewSaveStep creates a SaveStep writing format to path. Confirmation and
// failure notices are printed to out when it is not nil.
func NewSaveStep(path, format string, out io.Writer, logger *slog.Logger) *SaveStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &SaveStep{path: path, format: format, out: out, logger: logger}
}

// Name returns the step name.
func (s *SaveStep) Name() string {
	return "save"
}

// Do executes the save step. It never returns an error.
// An empty result leaves any existing file untouched.
func (s *SaveStep) Do(_ context.Context, run *model.Run) error {
	if run.Result.IsEmpty() {
		s.logger.Debug("nothing to save", "path", s.path)
		return nil
	}

	if err := report.SaveFile(s.path, s.format, run.Result); err != nil {
		s.logger.Error("could not save results to file", "path", s.path, "error", err)
		if s.out != nil {
			fmt.Fprintf(s.out, "\nCould not save results to file: %s\n", s.path)
		}
		return nil
	}

	s.logger.Debug("results saved", "path", s.path, "records", run.Result.Len())
	if s.out != nil {
		fmt.Fprintf(s.out, "\nResults saved to %s\n", s.path)
	}
	return nil
}

// PageSummaryStep prints the total of a count query together with the page
// that is about to be requested.
type PageSummaryStep struct {
	pagination database.Pagination
	minLength  int64
	out        io.Writer
}

// NewPageSummaryStep creates a PageSummaryStep writing to out.
func NewPageSummaryStep(p database.Pagination, minLength int64, out io.Writer) *PageSummaryStep {
	return &PageSummaryStep{pagination: p, minLength: minLength, out: out}
}

// Name returns the step name.
func (s *PageSummaryStep) Name() string {
	return "page_summary"
}

// Do executes the page summary step. The first value of the first record
// must be the total row count.
func (s *PageSummaryStep) Do(_ context.Context, run *model.Run) error {
	if run.Result.IsEmpty() || len(run.Result.Records[0].Fields) == 0 {
		return fmt.Errorf("count query returned no rows: %w", model.ErrFieldExtraction)
	}

	value := run.Result.Records[0].Fields[0].Value
	total, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmt.Errorf("count query returned %q: %w: %w", value, model.ErrFieldExtraction, err)
	}

	return report.WritePageSummary(s.out, report.PageSummary{
		Total:     total,
		MinLength: s.minLength,
		PageSize:  s.pagination.PageSize,
		PageCount: s.pagination.PageCount(total),
		Page:      s.pagination.Page,
		FirstRow:  s.pagination.FirstRow(),
		LastRow:   s.pagination.LastRow(),
	})
}
