package pipeline

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/nao1215/scrapetab/internal/database"
	"github.com/nao1215/scrapetab/internal/model"
)

// testQueries returns three plain catalog entries.
func testQueries() []database.Query {
	return []database.Query{
		{Name: "first", Title: "First"},
		{Name: "second", Title: "Second"},
		{Name: "third", Title: "Third"},
	}
}

// oneRow is a row set with a single keyed row.
func oneRow() *model.RowSet {
	return &model.RowSet{Columns: []string{"id"}, Rows: [][]any{{int64(1)}}}
}

// collectRuns runs the batch and returns every finished run.
func collectRuns(ctx context.Context, bp *BatchProcessor, queries []database.Query) ([]*model.Run, error) {
	runs := make([]*model.Run, 0, len(queries))
	err := bp.ProcessBatchWithCallback(ctx, queries, func(run *model.Run, _ int) {
		runs = append(runs, run)
	})
	return runs, err
}

// TestBatchProcessorNew tests the BatchProcessor constructor.
func TestBatchProcessorNew(t *testing.T) {
	t.Parallel()

	t.Run("creates processor with defaults", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func(database.Query) *Pipeline { return New() })

		if bp == nil {
			t.Fatal("expected non-nil processor")
		}
		if bp.logger == nil {
			t.Error("expected default logger to be set")
		}
	})

	t.Run("applies WithBatchLogger option", func(t *testing.T) {
		t.Parallel()

		logger := quietLogger()
		bp := NewBatchProcessor(func(database.Query) *Pipeline { return New() }, WithBatchLogger(logger))

		if bp.logger != logger {
			t.Error("expected custom logger to be set")
		}
	})
}

// TestBatchProcessorSequence tests sequential batch execution.
func TestBatchProcessorSequence(t *testing.T) {
	t.Parallel()

	t.Run("runs queries in order", func(t *testing.T) {
		t.Parallel()

		querier := &fakeQuerier{results: map[string]*model.RowSet{
			"first": oneRow(), "second": oneRow(), "third": oneRow(),
		}}
		var out bytes.Buffer
		bp := NewBatchProcessor(func(q database.Query) *Pipeline {
			return NewQueryPipeline(querier, q, database.Params{}, &out, nil, quietLogger())
		}, WithBatchLogger(quietLogger()))

		runs, err := collectRuns(context.Background(), bp, testQueries())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(runs) != 3 {
			t.Fatalf("expected 3 runs, got %d", len(runs))
		}
		for i, name := range []string{"first", "second", "third"} {
			if querier.calls[i] != name {
				t.Errorf("call %d: expected %s, got %s", i, name, querier.calls[i])
			}
			if runs[i].Source != name || runs[i].Result.Title != testQueries()[i].Title {
				t.Errorf("run %d: unexpected source %q title %q", i, runs[i].Source, runs[i].Result.Title)
			}
		}
		if Succeeded(runs) != 3 {
			t.Errorf("expected 3 successes, got %d", Succeeded(runs))
		}
	})

	t.Run("failing query does not stop the batch", func(t *testing.T) {
		t.Parallel()

		querier := &fakeQuerier{
			results: map[string]*model.RowSet{"first": oneRow(), "third": oneRow()},
			errs:    map[string]error{"second": errors.New("no such table")},
		}
		bp := NewBatchProcessor(func(q database.Query) *Pipeline {
			return NewQueryPipeline(querier, q, database.Params{}, &bytes.Buffer{}, nil, quietLogger())
		}, WithBatchLogger(quietLogger()))

		runs, err := collectRuns(context.Background(), bp, testQueries())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(runs) != 3 {
			t.Fatalf("expected 3 runs, got %d", len(runs))
		}
		if !runs[1].Failed() {
			t.Error("expected second run to fail")
		}
		var qErr *database.QueryError
		if !errors.As(runs[1].Err, &qErr) || qErr.Query != "second" {
			t.Errorf("expected QueryError for second, got %v", runs[1].Err)
		}
		if Succeeded(runs) != 2 {
			t.Errorf("expected 2 successes, got %d", Succeeded(runs))
		}
	})

	t.Run("cancellation stops before the next query", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		querier := &fakeQuerier{
			results: map[string]*model.RowSet{"first": oneRow(), "second": oneRow(), "third": oneRow()},
			onQuery: func(database.Query) { cancel() },
		}
		bp := NewBatchProcessor(func(q database.Query) *Pipeline {
			return NewQueryPipeline(querier, q, database.Params{}, &bytes.Buffer{}, nil, quietLogger())
		}, WithBatchLogger(quietLogger()))

		runs, err := collectRuns(ctx, bp, testQueries())
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}

		if len(runs) != 1 {
			t.Fatalf("expected 1 run, got %d", len(runs))
		}
		if runs[0].Failed() {
			t.Errorf("expected in-flight query to complete, got %v", runs[0].Err)
		}
		if len(querier.calls) != 1 {
			t.Errorf("expected 1 query, got %v", querier.calls)
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func(database.Query) *Pipeline { return New() }, WithBatchLogger(quietLogger()))

		runs, err := collectRuns(context.Background(), bp, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(runs) != 0 {
			t.Errorf("expected 0 runs, got %d", len(runs))
		}
	})
}

// TestBatchProcessorProcessBatchWithCallback tests callback ordering.
func TestBatchProcessorProcessBatchWithCallback(t *testing.T) {
	t.Parallel()

	bp := NewBatchProcessor(func(q database.Query) *Pipeline {
		p := New(WithLogger(quietLogger()))
		p.AddStep(&mockStep{name: "mark", doFunc: func(_ context.Context, run *model.Run) error {
			run.Result.Append(model.NewRecord([]string{"name"}, []string{q.Name}))
			return nil
		}})
		return p
	}, WithBatchLogger(quietLogger()))

	var indices []int
	var names []string
	err := bp.ProcessBatchWithCallback(context.Background(), testQueries(), func(run *model.Run, index int) {
		indices = append(indices, index)
		name, _ := run.Result.Records[0].Get("name")
		names = append(names, name)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, want := range []string{"first", "second", "third"} {
		if indices[i] != i {
			t.Errorf("expected index %d, got %d", i, indices[i])
		}
		if names[i] != want {
			t.Errorf("expected %s at %d, got %s", want, i, names[i])
		}
	}
}

// TestSucceeded tests success counting.
func TestSucceeded(t *testing.T) {
	t.Parallel()

	ok := model.NewRun("a", "a", nil)
	failed := model.NewRun("b", "b", nil)
	failed.Err = errors.New("boom")

	if got := Succeeded([]*model.Run{ok, failed, ok}); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
	if got := Succeeded(nil); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}
