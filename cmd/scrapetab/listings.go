package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/nao1215/scrapetab/internal/config"
	"github.com/nao1215/scrapetab/internal/fetch"
	"github.com/nao1215/scrapetab/internal/metrics"
	"github.com/nao1215/scrapetab/internal/model"
	"github.com/nao1215/scrapetab/internal/pipeline"
	"github.com/nao1215/scrapetab/internal/report"
	"github.com/spf13/cobra"
)

// listingSite names the listings site in report titles.
const listingSite = "OLX"

// NewListingsCmd creates the listings command.
func NewListingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listings [search-term]",
		Short: "Extract listings from a classifieds search page",
		Long: `Listings downloads one search results page and extracts title, description
and price of every listing card on it.

Listing cards are located with the first strategy that matches anything:
- the site's test-id attributes
- the obfuscated card class
- blocks whose whole text starts with the currency marker

Cards without a title are skipped; a missing price is shown as N/A.
The results are printed as a table and saved to a file.

Examples:
  # Search for car covers (the default term)
  scrapetab listings

  # Search for another term and keep only 5 results
  scrapetab listings --max-results 5 helmet

  # Re-run the extraction on a saved page
  scrapetab listings --from-file page.html

  # Save the results as Markdown
  scrapetab listings -o results.md --format markdown`,
		Args: cobra.ArbitraryArgs,
		RunE: runListingsCmd,
	}

	cmd.Flags().Int("max-results", config.DefaultMaxResults,
		"Keep only the first N listings found on the page")
	cmd.Flags().Duration("delay", config.DefaultDelay,
		"Pause between consecutive listings")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for the page request")
	cmd.Flags().String("base-url", config.DefaultBaseURL,
		"Listings site root")
	cmd.Flags().String("currency", config.DefaultCurrency,
		"Currency marker used when the page layout is unknown")
	cmd.Flags().String("from-file", "",
		"Read the page from a saved HTML file instead of the network")
	cmd.Flags().StringP("output", "o", config.DefaultOutputFile,
		"Results file path")
	cmd.Flags().String("format", config.DefaultOutputFormat,
		"Results file format (text, markdown, json)")
	cmd.Flags().Bool("no-save", false,
		"Do not write the results file")

	return cmd
}

// runListingsCmd executes the listings command.
func runListingsCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildListingsConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger, closeLog, err := setupLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	ctx, cancel := signalContext(logger)
	defer cancel()

	source, target := listingSource(cfg, logger)
	title := report.ListingTitle(listingSite, cfg.SearchTerm)
	recorder := metrics.NewRecorder()

	opts := []pipeline.ListingPipelineOption{
		pipeline.WithMaxResults(cfg.MaxResults),
		pipeline.WithDelay(cfg.Delay),
		pipeline.WithCurrency(cfg.Currency),
		pipeline.WithRecorder(recorder),
	}
	if cfg.SaveResults {
		opts = append(opts, pipeline.WithSaveFile(cfg.OutputFile, cfg.OutputFormat))
	}

	out := cmd.OutOrStdout()
	p := pipeline.NewListingPipeline(source, out, []pipeline.Option{pipeline.WithLogger(logger)}, opts...)

	fmt.Fprintf(out, "Searching %s for %q...\n", listingSite, cfg.SearchTerm)

	run := model.NewRun(target, title, model.ListingColumns)
	err = p.Execute(ctx, run)
	pushMetrics(cfg, recorder, logger)
	if err != nil {
		return fmt.Errorf("listing search failed: %w", err)
	}

	logger.Info("listing search complete",
		"tier", run.Tier.String(),
		"records", run.Result.Len(),
		"dropped", run.Dropped(),
	)
	return nil
}

// buildListingsConfig applies the listings flags over the loaded configuration.
func buildListingsConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	if term := strings.Join(args, " "); strings.TrimSpace(term) != "" {
		cfg.SearchTerm = term
	}

	if err := setInt(cmd, "max-results", &cfg.MaxResults); err != nil {
		return nil, err
	}
	if err := setDuration(cmd, "delay", &cfg.Delay); err != nil {
		return nil, err
	}
	if err := setDuration(cmd, "timeout", &cfg.Timeout); err != nil {
		return nil, err
	}
	if err := setString(cmd, "base-url", &cfg.BaseURL); err != nil {
		return nil, err
	}
	if err := setString(cmd, "currency", &cfg.Currency); err != nil {
		return nil, err
	}
	if err := setString(cmd, "from-file", &cfg.FromFile); err != nil {
		return nil, err
	}
	if err := setString(cmd, "output", &cfg.OutputFile); err != nil {
		return nil, err
	}
	if err := setString(cmd, "format", &cfg.OutputFormat); err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	if noSave {
		cfg.SaveResults = false
	}

	return cfg, nil
}

// listingSource returns where the page is read from and its location.
func listingSource(cfg *config.Config, logger *slog.Logger) (fetch.Source, string) {
	if cfg.FromFile != "" {
		return fetch.FileSource{}, cfg.FromFile
	}

	client := fetch.NewClient(
		fetch.WithTimeout(cfg.Timeout),
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
		fetch.WithLogger(logger),
	)
	return client, fetch.BuildSearchURL(cfg.BaseURL, cfg.SearchTerm)
}
