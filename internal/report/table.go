package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/scrapetab/internal/model"
	"github.com/olekukonko/tablewriter"
)

// Display widths of the terminal table.
const (
	// DefaultBannerWidth is the length of the "=" rule around a listing table.
	DefaultBannerWidth = 100

	// DefaultCellWidth bounds columns without an explicit width.
	DefaultCellWidth = 20

	// TitleWidth and DescriptionWidth bound the listing columns.
	TitleWidth       = 50
	DescriptionWidth = 60
)

// Trailer labels and empty-set messages.
const (
	ListingTotalLabel = "Total Results"
	QueryTotalLabel   = "Total rows"
	ListingEmpty      = "No results to display."
	QueryEmpty        = "No results found."
)

// TableWriter prints a result set as a bordered table framed by a banner.
//
//	====...====
//	OLX CAR COVER SEARCH RESULTS
//	====...====
//	+---+-------+-------------+-------+
//	| # | TITLE | DESCRIPTION | PRICE |
//	...
//	Total Results: 3
//	====...====
type TableWriter struct {
	baseWriter

	bannerWidth  int
	cellWidth    int
	widths       map[string]int
	totalLabel   string
	emptyMessage string
}

// TableWriterOption configures a TableWriter.
type TableWriterOption func(*TableWriter)

// WithBannerWidth sets the length of the "=" rules.
func WithBannerWidth(n int) TableWriterOption {
	return func(w *TableWriter) {
		if n > 0 {
			w.bannerWidth = n
		}
	}
}

// WithCellWidth sets the width of columns without an explicit width.
func WithCellWidth(n int) TableWriterOption {
	return func(w *TableWriter) {
		w.cellWidth = n
	}
}

// WithColumnWidth bounds the named column to n terminal columns.
func WithColumnWidth(column string, n int) TableWriterOption {
	return func(w *TableWriter) {
		w.widths[column] = n
	}
}

// WithTotalLabel sets the label of the trailing count line.
func WithTotalLabel(label string) TableWriterOption {
	return func(w *TableWriter) {
		w.totalLabel = label
	}
}

// WithEmptyMessage sets the line printed for an empty result set.
func WithEmptyMessage(msg string) TableWriterOption {
	return func(w *TableWriter) {
		w.emptyMessage = msg
	}
}

// NewTableWriter creates a TableWriter that outputs to the given writer.
func NewTableWriter(output io.Writer, opts ...TableWriterOption) *TableWriter {
	w := &TableWriter{
		baseWriter:   newBaseWriter(output),
		bannerWidth:  DefaultBannerWidth,
		cellWidth:    DefaultCellWidth,
		widths:       make(map[string]int),
		totalLabel:   QueryTotalLabel,
		emptyMessage: QueryEmpty,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// NewListingTableWriter returns a TableWriter with the listing column widths.
func NewListingTableWriter(output io.Writer) *TableWriter {
	return NewTableWriter(output,
		WithColumnWidth(model.ColumnTitle, TitleWidth),
		WithColumnWidth(model.ColumnDescription, DescriptionWidth),
		WithCellWidth(0),
		WithTotalLabel(ListingTotalLabel),
		WithEmptyMessage(ListingEmpty),
	)
}

// NewQueryTableWriter returns a TableWriter for query results.
func NewQueryTableWriter(output io.Writer) *TableWriter {
	return NewTableWriter(output, WithBannerWidth(80))
}

// Write outputs the result set as a table.
func (w *TableWriter) Write(rs *model.ResultSet) (int, error) {
	if rs.IsEmpty() {
		return fmt.Fprintf(w.output, "\n%s\n", w.emptyMessage)
	}

	var table bytes.Buffer
	if err := w.renderTable(&table, rs); err != nil {
		return 0, fmt.Errorf("failed to render table: %w", err)
	}

	rule := strings.Repeat("=", w.bannerWidth)

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(rule)
	sb.WriteString("\n")
	if rs.Title != "" {
		sb.WriteString(upper(rs.Title))
		sb.WriteString("\n")
		sb.WriteString(rule)
		sb.WriteString("\n")
	}
	sb.Write(table.Bytes())
	fmt.Fprintf(&sb, "\n%s: %d\n", w.totalLabel, rs.Len())
	sb.WriteString(rule)
	sb.WriteString("\n")

	return io.WriteString(w.output, sb.String())
}

// renderTable draws the bordered grid with a leading index column.
func (w *TableWriter) renderTable(out io.Writer, rs *model.ResultSet) error {
	table := tablewriter.NewWriter(out)

	header := make([]any, 0, len(rs.Columns)+1)
	header = append(header, "#")
	for _, c := range rs.Columns {
		header = append(header, c)
	}
	table.Header(header...)

	for i, r := range rs.Records {
		row := make([]string, 0, len(rs.Columns)+1)
		row = append(row, strconv.Itoa(i+1))
		for _, c := range rs.Columns {
			v, ok := r.Get(c)
			if !ok {
				v = model.Placeholder
			}
			row = append(row, Truncate(v, w.widthOf(c)))
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}

	return table.Render()
}

// widthOf returns the display width bound of column.
func (w *TableWriter) widthOf(column string) int {
	if n, ok := w.widths[column]; ok {
		return n
	}
	return w.cellWidth
}
