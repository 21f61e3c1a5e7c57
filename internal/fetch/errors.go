package fetch

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/nao1215/scrapetab/internal/model"
)

// NetworkError is returned when the request never produced a response:
// DNS failure, refused connection, reset, or timeout.
type NetworkError struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() []error {
	return []error{model.ErrTransport, e.Err}
}

// Timeout reports whether the failure was a deadline being exceeded.
func (e *NetworkError) Timeout() bool {
	var netErr net.Error
	if errors.As(e.Err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// Kind returns a short label for metrics: "timeout" or "network".
func (e *NetworkError) Kind() string {
	if e.Timeout() {
		return "timeout"
	}
	return "network"
}

// HTTPError is returned when the server answered with a non-2xx status.
type HTTPError struct {
	URL        string
	StatusCode int
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("failed to fetch %s: HTTP %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Unwrap returns model.ErrTransport so errors.Is can classify the failure.
func (e *HTTPError) Unwrap() error {
	return model.ErrTransport
}

// Kind returns a short label for metrics.
func (e *HTTPError) Kind() string {
	return "http_status"
}

// FailureKind labels any fetch error for metrics.
func FailureKind(err error) string {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.Kind()
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Kind()
	}
	return "other"
}
