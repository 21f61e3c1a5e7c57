package main

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/scrapetab/internal/config"
	"github.com/nao1215/scrapetab/internal/database"
	"github.com/nao1215/scrapetab/internal/model"
)

// setupTaxonomyDB creates a small SQLite copy of the taxonomy table.
func setupTaxonomyDB(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "rfam.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	stmts := []string{
		`CREATE TABLE taxonomy (ncbi_id INTEGER PRIMARY KEY, species TEXT, tax_string TEXT)`,
		`INSERT INTO taxonomy VALUES (9694, 'Panthera tigris', 'Eukaryota; Felidae; Panthera tigris')`,
		`INSERT INTO taxonomy VALUES (9695, 'Panthera tigris sumatrae', 'Eukaryota; Felidae; Panthera tigris sumatrae')`,
		`INSERT INTO taxonomy VALUES (9606, 'Homo sapiens', 'Eukaryota; Hominidae; Homo')`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("failed to seed database: %v", err)
		}
	}
	return path
}

// TestNewQueryCmd tests the query command flags.
func TestNewQueryCmd(t *testing.T) {
	t.Parallel()

	cmd := NewQueryCmd()

	testCases := []struct {
		name     string
		defValue string
	}{
		{"driver", "mysql"},
		{"host", "mysql-rfam-public.ebi.ac.uk"},
		{"port", "4497"},
		{"database", "Rfam"},
		{"user", "rfamro"},
		{"password", ""},
		{"dsn", ""},
		{"timeout", "30s"},
		{"list", "false"},
		{"page", "9"},
		{"page-size", "15"},
		{"min-length", "1000000"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			flag := cmd.Flags().Lookup(tc.name)
			if flag == nil {
				t.Fatalf("expected %s flag", tc.name)
			}
			if flag.DefValue != tc.defValue {
				t.Errorf("expected default %q, got %q", tc.defValue, flag.DefValue)
			}
		})
	}
}

// TestRunQueryCmd tests the query command against a local SQLite database.
func TestRunQueryCmd(t *testing.T) {
	t.Parallel()

	t.Run("lists the catalog without connecting", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := execute(t, "query", "--list", "--page", "3")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, name := range database.Names() {
			if !strings.Contains(stdout, name) {
				t.Errorf("expected %s in catalog:\n%s", name, stdout)
			}
		}
		if !strings.Contains(stdout, "Page 3:") {
			t.Errorf("expected page number in title:\n%s", stdout)
		}
	})

	t.Run("runs named queries", func(t *testing.T) {
		t.Parallel()

		path := setupTaxonomyDB(t)
		stdout, _, err := execute(t, "query", "--driver", "sqlite", "--database", path, "tigers", "sumatran")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, want := range []string{
			"Connected to sqlite server version",
			"You're connected to database: main",
			"ALL TIGER TYPES IN TAXONOMY",
			"Total rows: 2",
			"Total rows: 1",
			"Database connection closed.",
		} {
			if !strings.Contains(stdout, want) {
				t.Errorf("expected %q in output:\n%s", want, stdout)
			}
		}
		if strings.Index(stdout, "Total rows: 2") > strings.Index(stdout, "Total rows: 1") {
			t.Errorf("expected queries in the given order:\n%s", stdout)
		}
	})

	t.Run("failed query does not stop the batch", func(t *testing.T) {
		t.Parallel()

		path := setupTaxonomyDB(t)
		stdout, stderr, err := execute(t, "query", "--driver", "sqlite", "--database", path, "rice-longest", "tigers")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stderr, "Error executing query rice-longest") {
			t.Errorf("expected failure notice on stderr:\n%s", stderr)
		}
		if !strings.Contains(stdout, "Total rows: 2") {
			t.Errorf("expected the tigers table:\n%s", stdout)
		}
	})

	t.Run("fails when no query succeeded", func(t *testing.T) {
		t.Parallel()

		path := setupTaxonomyDB(t)
		stdout, _, err := execute(t, "query", "--driver", "sqlite", "--database", path, "foreign-keys")
		if !errors.Is(err, errNoQuerySucceeded) {
			t.Fatalf("expected errNoQuerySucceeded, got %v", err)
		}
		if !strings.Contains(stdout, "Database connection closed.") {
			t.Errorf("expected the session to be closed:\n%s", stdout)
		}
	})

	t.Run("unknown query", func(t *testing.T) {
		t.Parallel()

		_, _, err := execute(t, "query", "--driver", "sqlite", "--database", setupTaxonomyDB(t), "lions")
		if !errors.Is(err, database.ErrUnknownQuery) {
			t.Errorf("expected ErrUnknownQuery, got %v", err)
		}
	})

	t.Run("missing database file", func(t *testing.T) {
		t.Parallel()

		_, _, err := execute(t, "query", "--driver", "sqlite", "--database", filepath.Join(t.TempDir(), "none.db"), "tigers")
		if err == nil || !strings.Contains(err.Error(), "could not connect to database") {
			t.Errorf("expected connection error, got %v", err)
		}
	})
}

// cancellingSession cancels the batch context once its first query returns.
type cancellingSession struct {
	*database.Session
	cancel  context.CancelFunc
	queries int
}

func (s *cancellingSession) Query(ctx context.Context, q database.Query) (*model.RowSet, error) {
	s.queries++
	defer s.cancel()
	return s.Session.Query(ctx, q)
}

// TestRunSession tests that the session is released when a batch ends.
func TestRunSession(t *testing.T) {
	t.Parallel()

	t.Run("interrupt closes the session", func(t *testing.T) {
		t.Parallel()

		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		session, err := database.Open(ctx, database.Options{
			Driver:   database.DriverSQLite,
			Database: setupTaxonomyDB(t),
			Logger:   logger,
		})
		if err != nil {
			t.Fatalf("failed to open session: %v", err)
		}

		cfg := config.NewConfig()
		cfg.PushgatewayURL = ""
		params := queryParams(cfg)
		queries, err := database.Select(database.Catalog(params), []string{"tigers", "sumatran"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		wrapped := &cancellingSession{Session: session, cancel: cancel}
		var out, errOut bytes.Buffer
		err = runSession(ctx, wrapped, queries, params, &out, &errOut, cfg, logger)

		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if !strings.Contains(err.Error(), "query batch interrupted") {
			t.Errorf("expected interrupt message, got %v", err)
		}
		if wrapped.queries != 1 {
			t.Errorf("expected 1 query before the interrupt, got %d", wrapped.queries)
		}
		if !session.Closed() {
			t.Error("expected the session to be closed")
		}
		if !strings.Contains(out.String(), "Database connection closed.") {
			t.Errorf("expected close notice:\n%s", out.String())
		}
		if strings.Contains(out.String(), "Total rows: 1") {
			t.Errorf("expected the second query not to run:\n%s", out.String())
		}
	})
}
