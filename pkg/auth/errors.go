package auth

import (
	"errors"
	"fmt"
)

// AuthRequiredError reports that the endpoint requires authentication and
// no valid credential could be obtained within the attempt bound. It is
// fatal for the run.
type AuthRequiredError struct {
	Endpoint string
	Attempts int
}

func (e *AuthRequiredError) Error() string {
	return fmt.Sprintf("authentication is required for %s (no valid credential after %d attempts)", e.Endpoint, e.Attempts)
}

// IsAuthRequiredError checks if the error is an exhausted mandatory
// authentication
func IsAuthRequiredError(err error) bool {
	var authErr *AuthRequiredError
	return errors.As(err, &authErr)
}
