package http

import "fmt"

// HTTPError indicates a non-2xx response on a streaming request.
type HTTPError struct {
	// StatusCode is the HTTP status code
	StatusCode int
	// Body is the (truncated) response body
	Body []byte
}

// Error returns a string representation of the HTTP error.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: status %d", e.StatusCode)
}
