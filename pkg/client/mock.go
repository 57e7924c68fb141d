package client

import (
	"context"
	"fmt"
)

// MockClient implements the Client interface for testing
// This enables unit testing the resolver pipeline without a JIRA server
type MockClient struct {
	// Statuses maps issue keys to their status result
	Statuses map[string]*IssueStatus

	// Errors maps issue keys to a per-item lookup error
	Errors map[string]error

	// ProbeError simulates identity probe failures when set
	ProbeError error

	// GetIssueStatusCallCount tracks how many times GetIssueStatus was called
	GetIssueStatusCallCount int

	// ProbeIdentityCallCount tracks how many times ProbeIdentity was called
	ProbeIdentityCallCount int

	// RequestedKeys records every issue key requested, in order
	RequestedKeys []string
}

// NewMockClient creates a new mock JIRA client for testing
func NewMockClient() *MockClient {
	return &MockClient{
		Statuses: make(map[string]*IssueStatus),
		Errors:   make(map[string]error),
	}
}

// GetIssueStatus returns the configured status or error for the key
func (m *MockClient) GetIssueStatus(ctx context.Context, issueKey string) (*IssueStatus, error) {
	m.GetIssueStatusCallCount++
	m.RequestedKeys = append(m.RequestedKeys, issueKey)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err, exists := m.Errors[issueKey]; exists {
		return nil, err
	}

	if status, exists := m.Statuses[issueKey]; exists {
		return status, nil
	}

	return nil, &ClientError{
		Type:       "not_found",
		Message:    fmt.Sprintf("issue %s not found", issueKey),
		StatusCode: 404,
		Context:    issueKey,
	}
}

// ProbeIdentity simulates credential validation
func (m *MockClient) ProbeIdentity(ctx context.Context) error {
	m.ProbeIdentityCallCount++

	if err := ctx.Err(); err != nil {
		return err
	}

	return m.ProbeError
}
