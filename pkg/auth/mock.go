package auth

import "context"

// MockPrompter implements the Prompter interface with scripted answers
// for deterministic testing. Each call consumes the next scripted value;
// when the script runs out, the zero value is returned. Cancellation is
// honored before any scripted answer.
type MockPrompter struct {
	// Usernames are returned by successive Username calls
	Usernames []string

	// Secrets are returned by successive Secret calls
	Secrets []string

	// Confirms are returned by successive Confirm calls
	Confirms []bool

	// UsernameError, SecretError and ConfirmError simulate I/O failures
	UsernameError error
	SecretError   error
	ConfirmError  error

	// Call counters
	UsernameCallCount int
	SecretCallCount   int
	ConfirmCallCount  int

	// LastQuestion tracks the last Confirm question
	LastQuestion string
}

// Username returns the next scripted username
func (m *MockPrompter) Username(ctx context.Context, endpoint string) (string, error) {
	m.UsernameCallCount++
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.UsernameError != nil {
		return "", m.UsernameError
	}
	return takeNext(&m.Usernames), nil
}

// Secret returns the next scripted secret
func (m *MockPrompter) Secret(ctx context.Context, username string) (string, error) {
	m.SecretCallCount++
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.SecretError != nil {
		return "", m.SecretError
	}
	return takeNext(&m.Secrets), nil
}

// Confirm returns the next scripted answer
func (m *MockPrompter) Confirm(ctx context.Context, question string) (bool, error) {
	m.ConfirmCallCount++
	m.LastQuestion = question
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if m.ConfirmError != nil {
		return false, m.ConfirmError
	}
	return takeNext(&m.Confirms), nil
}

func takeNext[T any](values *[]T) T {
	var zero T
	if len(*values) == 0 {
		return zero
	}
	next := (*values)[0]
	*values = (*values)[1:]
	return next
}
