package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/scrapetab/internal/model"
)

// TextWriter outputs numbered plain-text blocks, one per record:
//
//	1. Waterproof Car Cover
//	   Price: ₹ 1,499
//	   Description: Bengaluru | Today
//	----...----
//
// The first column is the headline; the others follow as "Key: value" lines.
type TextWriter struct {
	baseWriter

	// ruleWidth is the length of the separator lines.
	ruleWidth int

	// fieldOrder lists the detail fields to print first.
	fieldOrder []string
}

// TextWriterOption configures a TextWriter.
type TextWriterOption func(*TextWriter)

// WithFieldOrder prints the named fields first, in the order given.
// Remaining fields follow in column order.
func WithFieldOrder(fields ...string) TextWriterOption {
	return func(w *TextWriter) {
		w.fieldOrder = fields
	}
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer, opts ...TextWriterOption) *TextWriter {
	w := &TextWriter{
		baseWriter: newBaseWriter(output),
		ruleWidth:  DefaultBannerWidth,
		fieldOrder: []string{model.ColumnPrice, model.ColumnDescription},
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the result set in plain text.
func (w *TextWriter) Write(rs *model.ResultSet) (int, error) {
	var sb strings.Builder

	sb.WriteString(rs.Title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", w.ruleWidth))
	sb.WriteString("\n\n")

	if len(rs.Columns) > 0 {
		headline := rs.Columns[0]
		details := w.detailColumns(rs.Columns[1:])

		for i, r := range rs.Records {
			v, _ := r.Get(headline)
			fmt.Fprintf(&sb, "%d. %s\n", i+1, v)
			for _, c := range details {
				v, _ := r.Get(c)
				fmt.Fprintf(&sb, "   %s: %s\n", c, v)
			}
			sb.WriteString(strings.Repeat("-", w.ruleWidth))
			sb.WriteString("\n")
		}
	}

	return io.WriteString(w.output, sb.String())
}

// detailColumns orders columns by fieldOrder, then the rest as given.
func (w *TextWriter) detailColumns(columns []string) []string {
	ordered := make([]string, 0, len(columns))
	seen := make(map[string]bool, len(columns))
	for _, f := range w.fieldOrder {
		for _, c := range columns {
			if c == f && !seen[c] {
				ordered = append(ordered, c)
				seen[c] = true
			}
		}
	}
	for _, c := range columns {
		if !seen[c] {
			ordered = append(ordered, c)
		}
	}
	return ordered
}
