package tokenstore

import (
	"errors"
	"fmt"
)

// StoreError represents errors that occur during credential store operations
type StoreError struct {
	Type    string // Type of error (validation_error, filesystem_error, etc.)
	Message string // Human-readable error message
	Err     error  // Underlying error
	Context string // Additional context (endpoint URL, file path, etc.)
}

func (e *StoreError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("token store error (%s) for %s: %s", e.Type, e.Context, e.Message)
	}
	return fmt.Sprintf("token store error (%s): %s", e.Type, e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// PermissionWarning reports that a save succeeded but the record file's
// permissions could not be restricted to owner read/write. The credential
// is persisted and usable; callers should surface the warning, not fail.
type PermissionWarning struct {
	Path string
	Err  error
}

func (e *PermissionWarning) Error() string {
	return fmt.Sprintf("token saved, but could not set permissions on %s: %v", e.Path, e.Err)
}

func (e *PermissionWarning) Unwrap() error {
	return e.Err
}

// IsValidationError checks if the error is a rejected blank username/token
func IsValidationError(err error) bool {
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr.Type == "validation_error"
	}
	return false
}

// IsPermissionWarning checks if the error is the non-fatal chmod warning
// that accompanies an otherwise successful save
func IsPermissionWarning(err error) bool {
	var warning *PermissionWarning
	return errors.As(err, &warning)
}
