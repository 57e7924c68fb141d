package auth

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter defines the interactive credential entry capability. It is
// injected into the Authenticator so tests can script the interaction.
// Every prompt honors context cancellation: an interrupt while blocked
// on user input unblocks the call with the context's error.
type Prompter interface {
	// Username asks for the JIRA username to use against the endpoint.
	Username(ctx context.Context, endpoint string) (string, error)

	// Secret asks for the API token for the username. Input is masked
	// when attached to a terminal.
	Secret(ctx context.Context, username string) (string, error)

	// Confirm asks a yes/no question; only an explicit "y" is a yes.
	Confirm(ctx context.Context, question string) (bool, error)
}

// TerminalPrompter implements Prompter on stdin/stderr
type TerminalPrompter struct {
	in         *bufio.Reader
	out        io.Writer
	fd         int
	isTerminal bool
}

// NewTerminalPrompter creates a prompter reading from stdin and writing
// prompts to stderr, so prompts never mix into the report on stdout.
func NewTerminalPrompter() *TerminalPrompter {
	fd := int(os.Stdin.Fd())
	return &TerminalPrompter{
		in:         bufio.NewReader(os.Stdin),
		out:        os.Stderr,
		fd:         fd,
		isTerminal: term.IsTerminal(fd),
	}
}

// Username prompts for a username
func (p *TerminalPrompter) Username(ctx context.Context, endpoint string) (string, error) {
	fmt.Fprintf(p.out, "Enter your JIRA username for %s: ", endpoint)
	return p.readLine(ctx)
}

// Secret prompts for an API token without echoing it when stdin is a
// terminal. Piped input falls back to a plain line read.
func (p *TerminalPrompter) Secret(ctx context.Context, username string) (string, error) {
	fmt.Fprintf(p.out, "Enter your JIRA API token for %s: ", username)

	if !p.isTerminal {
		return p.readLine(ctx)
	}

	text, err := p.await(ctx, func() (string, error) {
		tokenBytes, err := term.ReadPassword(p.fd)
		return string(tokenBytes), err
	})
	fmt.Fprintln(p.out)
	return text, err
}

// Confirm prompts for a yes/no answer
func (p *TerminalPrompter) Confirm(ctx context.Context, question string) (bool, error) {
	fmt.Fprintf(p.out, "%s (y/n): ", question)
	answer, err := p.readLine(ctx)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y"), nil
}

func (p *TerminalPrompter) readLine(ctx context.Context) (string, error) {
	return p.await(ctx, func() (string, error) {
		line, err := p.in.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	})
}

type promptResult struct {
	text string
	err  error
}

// await runs the blocking read in a goroutine so cancellation unblocks
// the prompt immediately. An abandoned read finishes (and is discarded)
// whenever the user eventually hits enter; the process is on its way out
// by then.
func (p *TerminalPrompter) await(ctx context.Context, read func() (string, error)) (string, error) {
	results := make(chan promptResult, 1)
	go func() {
		text, err := read()
		results <- promptResult{text: text, err: err}
	}()

	select {
	case res := <-results:
		return res.text, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
