package productapi

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned by Update and Delete when the API answers with a
// non-success status. Absent and conflicting resources are not told apart.
var ErrNotFound = errors.New("productapi: product not found")

// HTTPError represents a non-2xx HTTP response returned by the products API.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
	Header     http.Header
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("productapi: %s %s: status=%d body=%s", e.Method, e.URL, e.StatusCode, string(e.Body))
}

// DecodeError reports a response body that is not the expected JSON shape.
type DecodeError struct {
	Body []byte
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("productapi: decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
