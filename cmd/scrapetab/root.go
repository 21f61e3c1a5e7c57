package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for scrapetab.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrapetab",
		Short: "Extract tabular records from listing pages and the Rfam database",
		Long: `scrapetab runs a fetch, extract, normalize and report pipeline over two sources:

- listings: a classifieds search results page, located through a chain of
  increasingly generic selectors so that layout changes degrade gracefully
- query:    a fixed catalog of analytical statements against the public
  Rfam MySQL database (or a PostgreSQL or SQLite copy of it)

Results are printed as a bordered console table.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .scrapetab in current or home directory)")
	cmd.PersistentFlags().String("log-file", "",
		"Mirror log output into a size rotated file")
	cmd.PersistentFlags().String("pushgateway", "",
		"Push run metrics to this Prometheus Pushgateway URL")

	// Add subcommands
	cmd.AddCommand(NewListingsCmd())
	cmd.AddCommand(NewQueryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
