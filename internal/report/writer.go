package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/nao1215/scrapetab/internal/model"
)

// Output formats accepted by NewWriter.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// ErrUnknownFormat is returned for an output format NewWriter does not know.
var ErrUnknownFormat = errors.New("unknown output format")

// Writer defines the interface for result output.
type Writer interface {
	// Write outputs the result set to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(rs *model.ResultSet) (int, error)
}

// NewWriter returns the file writer for format.
func NewWriter(format string, output io.Writer) (Writer, error) {
	switch format {
	case FormatText, "":
		return NewTextWriter(output), nil
	case FormatMarkdown:
		return NewMarkdownWriter(output), nil
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// baseWriter provides common functionality for writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
