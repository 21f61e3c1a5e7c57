package report

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ListingTitle returns the heading of a listing search, for example
// "OLX Car Cover Search Results".
func ListingTitle(site, term string) string {
	parts := make([]string, 0, 4)
	if site = strings.TrimSpace(site); site != "" {
		parts = append(parts, site)
	}
	if term = strings.Join(strings.Fields(term), " "); term != "" {
		parts = append(parts, cases.Title(language.English).String(term))
	}
	parts = append(parts, "Search Results")
	return strings.Join(parts, " ")
}

// upper returns the banner form of a title.
func upper(title string) string {
	return cases.Upper(language.English).String(title)
}

// formatCount renders n with thousands separators.
func formatCount(n int64) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}
