package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/scrapetab/internal/model"
)

// MarkdownWriter outputs result sets in Markdown format.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the result set as a heading, a table and a total line.
func (w *MarkdownWriter) Write(rs *model.ResultSet) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1(rs.Title)
	md.PlainText("")

	if rs.IsEmpty() {
		md.PlainText(QueryEmpty)
		return len(md.String()), md.Build()
	}

	header := append([]string{"#"}, rs.Columns...)
	rows := make([][]string, len(rs.Records))
	for i, r := range rs.Records {
		row := make([]string, 0, len(header))
		row = append(row, strconv.Itoa(i+1))
		for _, c := range rs.Columns {
			v, _ := r.Get(c)
			row = append(row, escapeCell(v))
		}
		rows[i] = row
	}

	md.Table(markdown.TableSet{
		Header: header,
		Rows:   rows,
	})
	md.PlainText("")
	md.PlainTextf("**Total:** %d", rs.Len())

	return len(md.String()), md.Build()
}

// escapeCell keeps a value from breaking the table layout.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
