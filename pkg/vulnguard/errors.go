package vulnguard

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a non-success response from the VulnGuard API. It is
// returned by the transport after the retry policy is exhausted and carries
// the response for inspection.
type APIError struct {
	StatusCode int
	Method     string
	URL        string
	Body       []byte
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.URL, e.StatusCode, string(e.Body))
}

// Static errors that can be wrapped with context.
var (
	ErrNotFound             = errors.New("resource not found")
	ErrNotImplemented       = errors.New("not implemented")
	ErrUnknownResource      = errors.New("unknown resource kind")
	ErrMalformedTagFilter   = errors.New("each tag must contain a key and a value")
	ErrMissingResponseField = errors.New("response missing expected field")
	ErrTooManyPages         = errors.New("pagination exceeded maximum page count")
	ErrTokenRequired        = errors.New("API token is required")
	ErrOrganizationRequired = errors.New("organization scope is required")
)

// IsNotFound checks whether the error is a not-found condition, either the
// library's own sentinel or an HTTP 404 from the API.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}

	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}

	return false
}

// IsServerError checks whether the error is an HTTP 5xx from the API.
func IsServerError(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= http.StatusInternalServerError
	}

	return false
}
