package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vulnguard-io/vulnguard-client/internal/http"
	"github.com/vulnguard-io/vulnguard-client/pkg/vulnguard"
)

// JiraIssuesClient implements vulnguard.JiraIssuesClient.
type JiraIssuesClient struct {
	httpClient *http.Client
}

// NewJiraIssuesClient creates a new Jira issues client.
func NewJiraIssuesClient(httpClient *http.Client) *JiraIssuesClient {
	return &JiraIssuesClient{httpClient: httpClient}
}

// All implements vulnguard.JiraIssuesClient.All. The result maps issue ids to
// the Jira issues linked to them.
func (c *JiraIssuesClient) All(ctx context.Context, orgID, projectID string) (map[string][]any, error) {
	path := fmt.Sprintf("org/%s/project/%s/jira-issues", orgID, projectID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing jira issues: %w", err)
	}

	var issues map[string][]any

	err = json.Unmarshal(resp.Body, &issues)
	if err != nil {
		return nil, fmt.Errorf("parsing jira issues response: %w", err)
	}

	return issues, nil
}

// Create implements vulnguard.JiraIssuesClient.Create. The endpoint wraps
// the created issue under the triggering issue id; Create unwraps it so
// callers get the issue itself.
func (c *JiraIssuesClient) Create(ctx context.Context, orgID, projectID, issueID string, fields map[string]any) (vulnguard.JiraIssue, error) {
	path := fmt.Sprintf("org/%s/project/%s/issue/%s/jira-issue", orgID, projectID, issueID)
	body := map[string]any{"fields": fields}

	resp, err := c.httpClient.Post(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("creating jira issue: %w", err)
	}

	var result map[string][]struct {
		JiraIssue vulnguard.JiraIssue `json:"jiraIssue"`
	}

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing jira issue response: %w", err)
	}

	created, ok := result[issueID]
	if !ok || len(created) == 0 || created[0].JiraIssue == nil {
		return nil, fmt.Errorf("jira issue response has no issue for %s: %w", issueID, vulnguard.ErrMissingResponseField)
	}

	return created[0].JiraIssue, nil
}
