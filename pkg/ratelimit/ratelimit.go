package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter defines the interface for pacing JIRA API requests
// This enables dependency injection and testing with mock implementations
type Limiter interface {
	// Wait blocks until it's safe to make the next request
	Wait(ctx context.Context) error
}

// FixedDelayLimiter paces requests by enforcing a minimum delay between
// consecutive calls. Ticket lookups run sequentially, so a simple
// last-request timestamp is all the state required.
type FixedDelayLimiter struct {
	delay time.Duration

	lastRequest time.Time
	mutex       sync.Mutex
}

// NewFixedDelay creates a limiter enforcing the given minimum gap between
// requests. A zero or negative delay disables pacing.
func NewFixedDelay(delay time.Duration) *FixedDelayLimiter {
	return &FixedDelayLimiter{delay: delay}
}

// Wait blocks until the configured gap since the previous request has
// elapsed, or the context is cancelled.
func (l *FixedDelayLimiter) Wait(ctx context.Context) error {
	if l.delay <= 0 {
		return nil
	}

	l.mutex.Lock()
	waitTime := l.delay - time.Since(l.lastRequest)
	l.mutex.Unlock()

	if waitTime > 0 {
		select {
		case <-time.After(waitTime):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	l.mutex.Lock()
	l.lastRequest = time.Now()
	l.mutex.Unlock()

	return nil
}
