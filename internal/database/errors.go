package database

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedDriver is returned for a driver name other than mysql,
	// postgres or sqlite.
	ErrUnsupportedDriver = errors.New("unsupported database driver")

	// ErrUnknownQuery is returned when a query name is not in the catalog.
	ErrUnknownQuery = errors.New("unknown query")

	// ErrSessionClosed is returned when a closed session is used.
	ErrSessionClosed = errors.New("session is closed")
)

// QueryError is returned when a single statement fails: bad credentials,
// a malformed statement, or a connection lost mid-batch.
type QueryError struct {
	// Query is the catalog name of the failing statement.
	Query string

	// Err is the driver error.
	Err error
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	return fmt.Sprintf("query %s failed: %v", e.Query, e.Err)
}

// Unwrap returns the driver error.
func (e *QueryError) Unwrap() error {
	return e.Err
}
