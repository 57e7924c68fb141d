package ratelimit

import "context"

// MockLimiter implements the Limiter interface for testing
type MockLimiter struct {
	// WaitError simulates pacing failures when set
	WaitError error

	// WaitCallCount tracks how many times Wait was called
	WaitCallCount int
}

// NewMockLimiter creates a new mock limiter for testing
func NewMockLimiter() *MockLimiter {
	return &MockLimiter{}
}

// Wait returns the configured error, honoring context cancellation first
func (m *MockLimiter) Wait(ctx context.Context) error {
	m.WaitCallCount++

	if err := ctx.Err(); err != nil {
		return err
	}

	return m.WaitError
}
