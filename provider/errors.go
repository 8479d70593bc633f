package provider

import (
	"errors"
	"fmt"
)

// ErrInvalidProvider indicates an unknown provider token. This is a routing
// bug in the caller, not a transient condition, and must not be retried.
var ErrInvalidProvider = errors.New("invalid provider")

// APIError represents a non-success response from a provider API.
type APIError struct {
	StatusCode int
	URL        string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("provider API error: status %d from %s", e.StatusCode, e.URL)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}
