// Package check runs the ticket-resolution pipeline: it takes the
// extracted identifier set, resolves each ticket's status against the
// remote, and assembles the ordered report.
package check

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/chambrid/jira-branch-checker/pkg/client"
	"github.com/chambrid/jira-branch-checker/pkg/ratelimit"
)

// ResolvedTicket is the final per-identifier result: identifier, status
// label (with the terminal resolution appended when present, or an inline
// error marker), and browse link. Produced once per identifier per run.
type ResolvedTicket struct {
	Key    string
	Status string
	Link   string
}

// ProgressUpdate represents progress information for the resolution loop
type ProgressUpdate struct {
	CurrentKey     string
	ProcessedCount int
	TotalCount     int
}

// Resolver defines the interface for ticket resolution
// This enables dependency injection and testing with mock implementations
type Resolver interface {
	Resolve(ctx context.Context, keys []string) ([]ResolvedTicket, error)
	GetProgressChannel() <-chan ProgressUpdate
}

// Engine implements the Resolver interface. It resolves tickets
// sequentially in the order given, tolerating per-item failures and
// escalating credential rejection for the whole run.
type Engine struct {
	client        client.Client
	baseURL       string
	authenticated bool
	requiresAuth  bool
	limiter       ratelimit.Limiter
	logger        *zap.Logger
	progressChan  chan ProgressUpdate
}

// NewEngine creates a resolution engine for the endpoint. authenticated
// records whether a validated credential backs the client; requiresAuth
// records whether the endpoint demands one. A nil limiter disables
// request pacing.
func NewEngine(c client.Client, baseURL string, authenticated, requiresAuth bool, limiter ratelimit.Limiter, logger *zap.Logger) *Engine {
	if limiter == nil {
		limiter = ratelimit.NewFixedDelay(0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		client:        c,
		baseURL:       baseURL,
		authenticated: authenticated,
		requiresAuth:  requiresAuth,
		limiter:       limiter,
		logger:        logger,
		progressChan:  make(chan ProgressUpdate, 100),
	}
}

// GetProgressChannel returns the channel carrying per-item progress.
// The channel is closed when Resolve returns.
func (e *Engine) GetProgressChannel() <-chan ProgressUpdate {
	return e.progressChan
}

// Resolve looks up every key in order and returns exactly one
// ResolvedTicket per key. Per-item failures become inline error markers;
// a rejected credential aborts the whole run with *AuthExpiredError. The
// keys must already be deduplicated and deterministically ordered.
func (e *Engine) Resolve(ctx context.Context, keys []string) ([]ResolvedTicket, error) {
	defer close(e.progressChan)

	// The authenticator must have produced a credential for an endpoint
	// that requires one before the resolver runs.
	if e.requiresAuth && !e.authenticated {
		return nil, fmt.Errorf("endpoint %s requires authentication but no credential was supplied", e.baseURL)
	}

	tickets := make([]ResolvedTicket, 0, len(keys))
	for i, key := range keys {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		e.reportProgress(key, i+1, len(keys))

		status, err := e.client.GetIssueStatus(ctx, key)
		label, fatalErr := e.classify(key, status, err)
		if fatalErr != nil {
			return nil, fatalErr
		}

		tickets = append(tickets, ResolvedTicket{
			Key:    key,
			Status: label,
			Link:   fmt.Sprintf("%s/browse/%s", e.baseURL, key),
		})
	}

	return tickets, nil
}

// classify maps one lookup outcome to a status label or a run-fatal
// error. Credential rejection is fatal: continuing would silently
// mislabel every remaining item.
func (e *Engine) classify(key string, status *client.IssueStatus, err error) (string, error) {
	switch {
	case err == nil:
		return statusLabel(status), nil

	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		return "", err

	case client.IsAuthenticationError(err):
		return "", &AuthExpiredError{
			Endpoint: e.baseURL,
			Key:      key,
			Err:      err,
		}

	default:
		e.logger.Debug("ticket lookup failed",
			zap.String("key", key),
			zap.Error(err))
		return client.ErrorMarker(err), nil
	}
}

// statusLabel renders the workflow state, with the terminal resolution
// appended after a colon-space when the remote reports one.
func statusLabel(status *client.IssueStatus) string {
	if status == nil || status.Status == "" {
		return "Unknown"
	}
	if status.Resolution != "" {
		return status.Status + ": " + status.Resolution
	}
	return status.Status
}

func (e *Engine) reportProgress(key string, processed, total int) {
	update := ProgressUpdate{
		CurrentKey:     key,
		ProcessedCount: processed,
		TotalCount:     total,
	}
	select {
	case e.progressChan <- update:
	default:
		// Never block resolution on a slow progress consumer.
	}
}
