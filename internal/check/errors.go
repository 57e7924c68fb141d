package check

import (
	"errors"
	"fmt"
)

// AuthExpiredError reports that the remote rejected an already-validated
// credential mid-run. It aborts the remaining resolution: a partial
// report produced with a dead credential would mislabel every remaining
// item.
type AuthExpiredError struct {
	Endpoint string
	Key      string // the identifier being resolved when the rejection arrived
	Err      error
}

func (e *AuthExpiredError) Error() string {
	return fmt.Sprintf("authentication failed for %s while checking %s", e.Endpoint, e.Key)
}

func (e *AuthExpiredError) Unwrap() error {
	return e.Err
}

// IsAuthExpiredError checks if the error is a mid-run credential rejection
func IsAuthExpiredError(err error) bool {
	var expiredErr *AuthExpiredError
	return errors.As(err, &expiredErr)
}
