package report

import (
	"fmt"
	"io"
)

// PageSummary describes a paged query before the page is fetched.
type PageSummary struct {
	// Total is the number of rows across all pages.
	Total int64

	// MinLength is the threshold the rows were filtered by.
	MinLength int64

	// PageSize and PageCount describe the paging.
	PageSize  int
	PageCount int64

	// Page is the requested page, holding rows FirstRow to LastRow.
	Page     int
	FirstRow int
	LastRow  int
}

// WritePageSummary prints the family count and the requested row range.
func WritePageSummary(out io.Writer, s PageSummary) error {
	_, err := fmt.Fprintf(out,
		"\nTotal families with sequence length > %s: %s\nTotal pages (%d per page): %d\nRequesting page %d (rows %d-%d)\n",
		formatCount(s.MinLength), formatCount(s.Total),
		s.PageSize, s.PageCount,
		s.Page, s.FirstRow, s.LastRow,
	)
	return err
}
