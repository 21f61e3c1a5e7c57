// Package fetch retrieves the raw listings page.
//
// The Client sends a desktop browser header set, bounds every request with a
// timeout, and makes a single attempt. Failures come back as *NetworkError or
// *HTTPError, both of which match model.ErrTransport with errors.Is.
package fetch
