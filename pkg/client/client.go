// Package client talks to the JIRA REST API. It exposes the two
// operations the checker needs: fetching one issue's workflow status and
// probing the authenticated identity to validate a credential.
package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/andygrunwald/go-jira"

	"github.com/chambrid/jira-branch-checker/pkg/tokenstore"
)

// Client defines the interface for JIRA operations
// This enables dependency injection and testing with mock implementations
type Client interface {
	// GetIssueStatus fetches one issue's workflow state and, when the
	// remote reports one, its terminal resolution.
	GetIssueStatus(ctx context.Context, issueKey string) (*IssueStatus, error)

	// ProbeIdentity issues a lightweight authenticated request to verify
	// the client's credential against the remote.
	ProbeIdentity(ctx context.Context) error
}

// IssueStatus holds the status fields extracted from a JIRA issue
type IssueStatus struct {
	Key        string
	Status     string
	Resolution string
}

// JIRAClient implements the Client interface using the go-jira library
type JIRAClient struct {
	client *jira.Client
}

// NewClient creates a JIRA client for the given endpoint. With a
// credential, requests use basic auth (username + API token); without
// one, requests are anonymous.
func NewClient(baseURL string, cred *tokenstore.Credential, timeout time.Duration) (Client, error) {
	httpClient := &http.Client{
		Timeout: timeout,
	}
	if cred != nil {
		httpClient.Transport = &jira.BasicAuthTransport{
			Username: cred.Username,
			Password: cred.Token,
		}
	}

	jiraClient, err := jira.NewClient(httpClient, baseURL)
	if err != nil {
		return nil, &ClientError{
			Type:    "connection_error",
			Message: "failed to create JIRA client",
			Err:     err,
			Context: baseURL,
		}
	}

	return &JIRAClient{client: jiraClient}, nil
}

// GetIssueStatus retrieves a single JIRA issue's status by key
func (c *JIRAClient) GetIssueStatus(ctx context.Context, issueKey string) (*IssueStatus, error) {
	if issueKey == "" {
		return nil, &ClientError{
			Type:    "invalid_input",
			Message: "issue key cannot be empty",
		}
	}

	jiraIssue, response, err := c.client.Issue.GetWithContext(ctx, issueKey, nil)
	if err != nil {
		return nil, c.handleAPIError(err, response, issueKey)
	}

	return convertIssueStatus(issueKey, jiraIssue), nil
}

// ProbeIdentity verifies the connection and credentials by requesting
// the current user
func (c *JIRAClient) ProbeIdentity(ctx context.Context) error {
	_, response, err := c.client.User.GetSelfWithContext(ctx)
	if err != nil {
		return c.handleAPIError(err, response, "identity probe")
	}
	return nil
}

// convertIssueStatus extracts the status fields from a go-jira issue.
// Missing fields degrade to an empty value; the resolver maps an empty
// status to the "Unknown" placeholder.
func convertIssueStatus(issueKey string, jiraIssue *jira.Issue) *IssueStatus {
	status := &IssueStatus{Key: issueKey}

	if jiraIssue == nil || jiraIssue.Fields == nil {
		return status
	}

	if jiraIssue.Fields.Status != nil {
		status.Status = jiraIssue.Fields.Status.Name
	}
	if jiraIssue.Fields.Resolution != nil {
		status.Resolution = jiraIssue.Fields.Resolution.Name
	}

	return status
}

// handleAPIError creates appropriate error based on HTTP response
func (c *JIRAClient) handleAPIError(err error, response *jira.Response, context string) error {
	if response != nil {
		switch response.StatusCode {
		case http.StatusUnauthorized:
			return &ClientError{
				Type:       "authentication_error",
				Message:    "authentication failed - check JIRA credentials",
				StatusCode: response.StatusCode,
				Err:        err,
				Context:    context,
			}
		case http.StatusForbidden:
			return &ClientError{
				Type:       "authorization_error",
				Message:    "access denied - insufficient permissions",
				StatusCode: response.StatusCode,
				Err:        err,
				Context:    context,
			}
		case http.StatusNotFound:
			return &ClientError{
				Type:       "not_found",
				Message:    "issue not found",
				StatusCode: response.StatusCode,
				Err:        err,
				Context:    context,
			}
		}
	}

	clientError := &ClientError{
		Type:    "api_error",
		Message: "JIRA API request failed",
		Err:     err,
		Context: context,
	}
	if response != nil {
		clientError.StatusCode = response.StatusCode
		clientError.Message = fmt.Sprintf("HTTP %d error - %s", response.StatusCode, http.StatusText(response.StatusCode))
	} else if err != nil {
		clientError.Type = "network_error"
		clientError.Message = "network/connection error"
	}

	return clientError
}
