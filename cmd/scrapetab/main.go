// Package main provides the entry point for the scrapetab CLI.
//
// scrapetab extracts tabular records from two kinds of sources: the listing
// cards of a classifieds search page, and a fixed catalog of statements run
// against the Rfam relational database. Both are fetched, extracted,
// normalized and reported as a console table.
//
// Usage:
//
//	scrapetab listings "car cover"
//	scrapetab query tigers rice-longest
//
// See --help for all available options.
package main

// main is the entry point for scrapetab.
func main() {
	Execute()
}
