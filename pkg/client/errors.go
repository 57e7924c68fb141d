package client

import (
	"errors"
	"fmt"
)

// ClientError represents errors that occur during JIRA client operations
type ClientError struct {
	Type       string // Type of error (authentication_error, api_error, etc.)
	Message    string // Human-readable error message
	StatusCode int    // HTTP status code when the remote responded, 0 otherwise
	Err        error  // Underlying error
	Context    string // Additional context (issue key, operation, etc.)
}

func (e *ClientError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("JIRA client error (%s) for %s: %s", e.Type, e.Context, e.Message)
	}
	return fmt.Sprintf("JIRA client error (%s): %s", e.Type, e.Message)
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

// IsAuthenticationError checks if the error is a credential rejection
func IsAuthenticationError(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == "authentication_error"
	}
	return false
}

// IsNotFoundError checks if the error is related to a resource not being found
func IsNotFoundError(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == "not_found"
	}
	return false
}

// ErrorMarker renders a lookup failure as the short inline diagnostic
// carried by that item in the final report.
func ErrorMarker(err error) string {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		if clientErr.StatusCode > 0 {
			return fmt.Sprintf("Error: HTTP %d", clientErr.StatusCode)
		}
		return fmt.Sprintf("Error: %s", clientErr.Message)
	}
	return fmt.Sprintf("Error: %v", err)
}
