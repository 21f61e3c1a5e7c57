package report

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/nao1215/scrapetab/internal/model"
)

// JSONWriter outputs result sets in JSON format for tool integration.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// JSONResult is the document written by JSONWriter.
type JSONResult struct {
	Title   string       `json:"title"`
	Columns []string     `json:"columns"`
	Records []jsonRecord `json:"records"`
	Total   int          `json:"total"`
}

// jsonRecord marshals a record as an object whose keys keep column order.
type jsonRecord model.Record

// MarshalJSON implements json.Marshaler.
func (r jsonRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// NewJSONResult converts a result set into its JSON document.
func NewJSONResult(rs *model.ResultSet) *JSONResult {
	records := make([]jsonRecord, len(rs.Records))
	for i, r := range rs.Records {
		records[i] = jsonRecord(r)
	}
	columns := rs.Columns
	if columns == nil {
		columns = []string{}
	}
	return &JSONResult{
		Title:   rs.Title,
		Columns: columns,
		Records: records,
		Total:   rs.Len(),
	}
}

// Write outputs the result set in JSON format.
func (w *JSONWriter) Write(rs *model.ResultSet) (int, error) {
	return w.writeJSON(NewJSONResult(rs))
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
