// Package auth obtains a usable JIRA credential for a run. It combines
// the credential store, a live identity probe, and interactive prompting
// into a bounded retry loop. The authenticator is the only component that
// decides whether a credential is trusted for use.
package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/chambrid/jira-branch-checker/pkg/tokenstore"
)

// ProbeFunc validates a candidate credential against the endpoint with a
// lightweight authenticated request. A nil return means the credential is
// trusted; any error means it is not.
type ProbeFunc func(ctx context.Context, endpoint string, cred tokenstore.Credential) error

// authState names the phases of a single authentication attempt. The
// retry loop in Authenticate drives attempts; each attempt walks
// TryStored -> TryInteractive -> Validated and stops at the first state
// that produces a usable credential.
type authState int

const (
	stateTryStored authState = iota
	stateTryInteractive
	stateValidated
	stateExhaustedFatal
	stateSkippedNoAuth
)

// Options configures an Authenticator.
type Options struct {
	// DefaultEndpoint is the designated default remote. Authentication is
	// mandatory for it, overriding any request to skip.
	DefaultEndpoint string

	// MaxAttempts bounds the retry loop (default 3).
	MaxAttempts int

	// Out receives user-visible notices (default os.Stderr).
	Out io.Writer

	// Logger receives diagnostics (default no-op).
	Logger *zap.Logger
}

// Authenticator orchestrates obtaining usable credentials for an endpoint
type Authenticator struct {
	store    tokenstore.Store
	prompter Prompter
	probe    ProbeFunc
	opts     Options
}

// NewAuthenticator creates an authenticator over the given store,
// prompter and probe.
func NewAuthenticator(store tokenstore.Store, prompter Prompter, probe ProbeFunc, opts Options) *Authenticator {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 3
	}
	if opts.Out == nil {
		opts.Out = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Authenticator{
		store:    store,
		prompter: prompter,
		probe:    probe,
		opts:     opts,
	}
}

// Authenticate resolves a credential for the endpoint, or nil when the
// run may proceed unauthenticated. providedUsername pins the username
// when non-empty. skipAuth requests an unauthenticated run; it is
// overridden for the default endpoint, which must never be queried
// without a credential.
//
// Stored secrets are only returned after a successful probe. Blank
// interactive entries fail the attempt; attempts are bounded. Exhausting
// all attempts is fatal (*AuthRequiredError) only when the endpoint
// requires authentication.
func (a *Authenticator) Authenticate(ctx context.Context, endpoint, providedUsername string, skipAuth bool) (*tokenstore.Credential, error) {
	requiresAuth := endpoint == a.opts.DefaultEndpoint

	if skipAuth && !requiresAuth {
		a.opts.Logger.Debug("skipping authentication", zap.String("endpoint", endpoint))
		return nil, nil // stateSkippedNoAuth
	}

	for attempt := 1; attempt <= a.opts.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if attempt > 1 {
			fmt.Fprintf(a.opts.Out, "Authentication attempt %d/%d\n", attempt, a.opts.MaxAttempts)
		}

		cred, err := a.runAttempt(ctx, endpoint, providedUsername)
		if err != nil {
			return nil, err
		}
		if cred != nil {
			return cred, nil
		}
	}

	// stateExhaustedFatal vs. proceed unauthenticated.
	if requiresAuth {
		return nil, &AuthRequiredError{
			Endpoint: endpoint,
			Attempts: a.opts.MaxAttempts,
		}
	}
	return nil, nil
}

// runAttempt walks one attempt through the state machine. It returns a
// validated credential, (nil, nil) when the attempt failed softly (blank
// entry, invalid stored token with blank re-entry), or an error for
// cancellation and prompt I/O failures.
func (a *Authenticator) runAttempt(ctx context.Context, endpoint, providedUsername string) (*tokenstore.Credential, error) {
	var (
		cred     *tokenstore.Credential
		username = providedUsername
	)

	state := stateTryStored
	for {
		switch state {
		case stateTryStored:
			stored, err := a.store.Load(endpoint)
			if err != nil {
				a.opts.Logger.Warn("failed to read stored credentials", zap.Error(err))
				stored = nil
			}
			if username == "" && stored != nil {
				username = stored.Username
			}

			// The stored secret is a candidate only when it belongs to
			// the requested username, and it is never trusted without a
			// successful probe.
			if stored == nil || (providedUsername != "" && providedUsername != stored.Username) {
				state = stateTryInteractive
				continue
			}

			fmt.Fprintf(a.opts.Out, "Using saved credentials for %s at %s\n", stored.Username, endpoint)
			probeErr := a.probe(ctx, endpoint, *stored)
			if probeErr == nil {
				cred = stored
				state = stateValidated
				continue
			}
			if errors.Is(probeErr, context.Canceled) {
				return nil, probeErr
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			a.opts.Logger.Debug("stored credential failed validation",
				zap.String("endpoint", endpoint),
				zap.Error(probeErr))
			fmt.Fprintln(a.opts.Out, "Saved token appears to be invalid. Please enter a new one.")
			state = stateTryInteractive

		case stateTryInteractive:
			if username == "" {
				entered, err := a.prompter.Username(ctx, endpoint)
				if err != nil {
					return nil, promptError("username", err)
				}
				if strings.TrimSpace(entered) == "" {
					fmt.Fprintln(a.opts.Out, "Error: Username cannot be empty")
					return nil, nil
				}
				username = entered
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			token, err := a.prompter.Secret(ctx, username)
			if err != nil {
				return nil, promptError("token", err)
			}
			if strings.TrimSpace(token) == "" {
				fmt.Fprintln(a.opts.Out, "Error: Token cannot be empty")
				return nil, nil
			}

			cred = &tokenstore.Credential{Username: username, Token: token}
			if err := a.offerToPersist(ctx, endpoint, *cred); err != nil {
				return nil, err
			}
			state = stateValidated

		case stateValidated:
			return cred, nil
		}
	}
}

// offerToPersist asks the user whether to save the credential. A save
// failure is surfaced but never invalidates the in-memory credential for
// the current run.
func (a *Authenticator) offerToPersist(ctx context.Context, endpoint string, cred tokenstore.Credential) error {
	save, err := a.prompter.Confirm(ctx, "Save this token for future use?")
	if err != nil {
		return promptError("answer", err)
	}
	if !save {
		return nil
	}

	if saveErr := a.store.Save(endpoint, cred); saveErr != nil {
		if tokenstore.IsPermissionWarning(saveErr) {
			fmt.Fprintf(a.opts.Out, "Warning: %v\n", saveErr)
			return nil
		}
		fmt.Fprintf(a.opts.Out, "Warning: could not save token: %v\n", saveErr)
		return nil
	}

	fmt.Fprintf(a.opts.Out, "Token saved for %s\n", endpoint)
	return nil
}

// promptError wraps a prompt read failure for context. Cancellation is
// passed through unwrapped so callers match it with errors.Is directly.
func promptError(what string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("failed to read %s: %w", what, err)
}
