package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/nao1215/scrapetab/internal/config"
	"github.com/nao1215/scrapetab/internal/database"
	"github.com/nao1215/scrapetab/internal/metrics"
	"github.com/nao1215/scrapetab/internal/model"
	"github.com/nao1215/scrapetab/internal/pipeline"
	"github.com/spf13/cobra"
)

// errNoQuerySucceeded is returned when every query of a batch failed.
var errNoQuerySucceeded = errors.New("no query succeeded")

// NewQueryCmd creates the query command.
func NewQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query [query-name ...]",
		Short: "Run the Rfam analysis queries",
		Long: `Query opens one database session and runs the named catalog queries in order,
printing each result as a table. All queries run when none are named.

A failing query is reported and the remaining queries still run. The command
fails only when no query succeeded.

Catalog:
  tigers        tiger species in the taxonomy
  sumatran      the Sumatran tiger
  foreign-keys  foreign key columns of the schema (MySQL only)
  rice-longest  the five longest rice sequences
  family-count  families longer than --min-length, with page summary
  family-page   one page of those families

Examples:
  # Run every query against the public Rfam server
  scrapetab query

  # Run two queries
  scrapetab query tigers rice-longest

  # Request another family page
  scrapetab query family-count family-page --page 2 --page-size 20

  # Use a local SQLite copy
  scrapetab query --driver sqlite --database rfam.db tigers`,
		Args: cobra.ArbitraryArgs,
		RunE: runQueryCmd,
	}

	cmd.Flags().String("driver", config.DefaultDriver,
		"Database driver (mysql, postgres, sqlite)")
	cmd.Flags().String("host", config.DefaultDBHost, "Database host")
	cmd.Flags().Int("port", config.DefaultDBPort, "Database port")
	cmd.Flags().String("database", config.DefaultDBName,
		"Database name, or the database file for sqlite")
	cmd.Flags().String("user", config.DefaultDBUser, "Database user")
	cmd.Flags().String("password", "", "Database password")
	cmd.Flags().String("dsn", "",
		"Connection string; overrides the individual connection flags")
	cmd.Flags().DurationP("timeout", "t", config.DefaultQueryTimeout,
		"Timeout for connecting and for each query")
	cmd.Flags().BoolP("list", "l", false,
		"List the catalog queries and exit")
	cmd.Flags().Int("page", config.DefaultPage, "Family page to request")
	cmd.Flags().Int("page-size", config.DefaultPageSize, "Families per page")
	cmd.Flags().Int64("min-length", config.DefaultMinLength,
		"Sequence length a family must exceed")

	return cmd
}

// runQueryCmd executes the query command.
func runQueryCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildQueryConfig(cmd, args)
	if err != nil {
		return err
	}

	params := queryParams(cfg)
	catalog := database.Catalog(params)

	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if list {
		writeCatalog(cmd.OutOrStdout(), catalog)
		return nil
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	queries, err := database.Select(catalog, cfg.Queries)
	if err != nil {
		return err
	}

	logger, closeLog, err := setupLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	ctx, cancel := signalContext(logger)
	defer cancel()

	out := cmd.OutOrStdout()

	session, err := database.Open(ctx, database.Options{
		Driver:   cfg.Driver,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		Database: cfg.DBName,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DSN:      cfg.DSN,
		Timeout:  cfg.QueryTimeout,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("could not connect to database: %w", err)
	}
	return runSession(ctx, session, queries, params, out, cmd.ErrOrStderr(), cfg, logger)
}

// querySession is an open database session the query batch runs on.
type querySession interface {
	pipeline.Querier
	Driver() string
	ServerVersion() string
	DatabaseName() string
	Close() error
}

// runSession runs the batch on session and closes the session when the
// batch ends, whether it finished or was interrupted.
func runSession(
	ctx context.Context,
	session querySession,
	queries []database.Query,
	params database.Params,
	out, errOut io.Writer,
	cfg *config.Config,
	logger *slog.Logger,
) error {
	defer func() {
		if err := session.Close(); err != nil {
			logger.Error("failed to close database session", "error", err)
			return
		}
		fmt.Fprintln(out, "\nDatabase connection closed.")
	}()

	fmt.Fprintf(out, "Connected to %s server version %s\n", session.Driver(), session.ServerVersion())
	fmt.Fprintf(out, "You're connected to database: %s\n", session.DatabaseName())

	runs, err := runQueries(ctx, session, queries, params, out, errOut, cfg, logger)
	if err != nil {
		return fmt.Errorf("query batch interrupted: %w", err)
	}
	if len(runs) > 0 && pipeline.Succeeded(runs) == 0 {
		return errNoQuerySucceeded
	}
	return nil
}

// runQueries runs queries in order on one session and reports each failure
// on errOut as it happens.
func runQueries(
	ctx context.Context,
	querier pipeline.Querier,
	queries []database.Query,
	params database.Params,
	out, errOut io.Writer,
	cfg *config.Config,
	logger *slog.Logger,
) ([]*model.Run, error) {
	recorder := metrics.NewRecorder()
	defer pushMetrics(cfg, recorder, logger)

	bp := pipeline.NewBatchProcessor(
		func(q database.Query) *pipeline.Pipeline {
			return pipeline.NewQueryPipeline(querier, q, params, out, recorder, logger)
		},
		pipeline.WithBatchLogger(logger),
	)

	runs := make([]*model.Run, 0, len(queries))
	err := bp.ProcessBatchWithCallback(ctx, queries, func(run *model.Run, _ int) {
		runs = append(runs, run)
		if run.Failed() {
			fmt.Fprintf(errOut, "\nError executing query %s: %v\n", run.Source, run.Err)
		}
	})
	return runs, err
}

// buildQueryConfig applies the query flags over the loaded configuration.
func buildQueryConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	if len(args) > 0 {
		cfg.Queries = args
	}

	for name, dst := range map[string]*string{
		"driver":   &cfg.Driver,
		"host":     &cfg.DBHost,
		"database": &cfg.DBName,
		"user":     &cfg.DBUser,
		"password": &cfg.DBPassword,
		"dsn":      &cfg.DSN,
	} {
		if err := setString(cmd, name, dst); err != nil {
			return nil, err
		}
	}
	if err := setInt(cmd, "port", &cfg.DBPort); err != nil {
		return nil, err
	}
	if err := setDuration(cmd, "timeout", &cfg.QueryTimeout); err != nil {
		return nil, err
	}
	if err := setInt(cmd, "page", &cfg.Page); err != nil {
		return nil, err
	}
	if err := setInt(cmd, "page-size", &cfg.PageSize); err != nil {
		return nil, err
	}
	if err := setInt64(cmd, "min-length", &cfg.MinLength); err != nil {
		return nil, err
	}

	return cfg, nil
}

// queryParams returns the values bound into the catalog statements.
func queryParams(cfg *config.Config) database.Params {
	return database.Params{
		Schema: cfg.DBName,
		Pagination: database.Pagination{
			Page:     cfg.Page,
			PageSize: cfg.PageSize,
		},
		MinLength: cfg.MinLength,
	}
}

// writeCatalog prints the name and title of every catalog query.
func writeCatalog(w io.Writer, catalog []database.Query) {
	for _, q := range catalog {
		fmt.Fprintf(w, "%-14s %s\n", q.Name, q.Title)
	}
}
