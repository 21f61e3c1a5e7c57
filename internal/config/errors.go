package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrInvalidTimeout is returned when a fetch or query timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxResults is returned when max results is not positive.
	ErrInvalidMaxResults = errors.New("invalid max results: must be positive")

	// ErrInvalidDelay is returned when the pacing delay is negative.
	// Use 0 to disable pacing.
	ErrInvalidDelay = errors.New("invalid delay: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrEmptyCurrency is returned when the heuristic currency marker is empty.
	// An empty marker would match every element.
	ErrEmptyCurrency = errors.New("invalid currency marker: must not be empty")

	// ErrInvalidFormat is returned for an unknown results file format.
	ErrInvalidFormat = errors.New("invalid output format: must be text, markdown or json")

	// ErrInvalidDriver is returned for an unknown database driver.
	ErrInvalidDriver = errors.New("invalid driver: must be mysql, postgres or sqlite")

	// ErrInvalidPageSize is returned when the page size is not positive.
	ErrInvalidPageSize = errors.New("invalid page size: must be positive")

	// ErrInvalidPage is returned when the page number is not positive.
	// Pages are numbered from 1.
	ErrInvalidPage = errors.New("invalid page: must be positive")
)
