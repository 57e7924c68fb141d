package git

import (
	"errors"
	"fmt"
)

// GitError represents errors that occur during Git operations
type GitError struct {
	Type    string // Type of error (invalid_input, repository_not_found, git_operation_error)
	Message string // Human-readable error message
	Err     error  // Underlying error
	Context string // Additional context (repository path)
}

func (e *GitError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("git error (%s) for %s: %s", e.Type, e.Context, e.Message)
	}
	return fmt.Sprintf("git error (%s): %s", e.Type, e.Message)
}

func (e *GitError) Unwrap() error {
	return e.Err
}

// IsRepositoryNotFoundError checks if the error is related to repository not being found
func IsRepositoryNotFoundError(err error) bool {
	var gitErr *GitError
	if errors.As(err, &gitErr) {
		return gitErr.Type == "repository_not_found"
	}
	return false
}

// IsGitOperationError checks if the error is related to Git operations
func IsGitOperationError(err error) bool {
	var gitErr *GitError
	if errors.As(err, &gitErr) {
		return gitErr.Type == "git_operation_error"
	}
	return false
}
