package model

import "errors"

// Failure kinds shared by both extraction pipelines.
// Components wrap these with fmt.Errorf("...: %w", ...) so that callers can
// classify a failure with errors.Is without knowing which component raised it.
var (
	// ErrTransport is returned when the source could not be reached at all:
	// network error, HTTP error status, timeout, or a refused database connection.
	// It aborts the current invocation.
	ErrTransport = errors.New("transport failure")

	// ErrStructureMismatch is reported when a locator strategy finds no
	// candidates. It is logged and the next strategy is tried.
	ErrStructureMismatch = errors.New("structure mismatch")

	// ErrFieldExtraction is returned when a single candidate cannot be turned
	// into a record. The candidate is dropped and the run continues.
	ErrFieldExtraction = errors.New("field extraction failure")

	// ErrPersistence is returned when the optional result file cannot be written.
	// It is logged and ignored.
	ErrPersistence = errors.New("persistence failure")
)
