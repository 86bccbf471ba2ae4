package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vulnguard-io/vulnguard-client/internal/http"
	"github.com/vulnguard-io/vulnguard-client/pkg/vulnguard"
)

// IssuesClient implements vulnguard.IssuesClient.
type IssuesClient struct {
	httpClient *http.Client
}

// NewIssuesClient creates a new issues client.
func NewIssuesClient(httpClient *http.Client) *IssuesClient {
	return &IssuesClient{httpClient: httpClient}
}

// DependencyGraph implements vulnguard.IssuesClient.DependencyGraph.
func (c *IssuesClient) DependencyGraph(ctx context.Context, orgID, projectID string) (*vulnguard.DependencyGraph, error) {
	path := fmt.Sprintf("org/%s/project/%s/dep-graph", orgID, projectID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting dependency graph: %w", err)
	}

	var result struct {
		DepGraph *vulnguard.DependencyGraph `json:"depGraph"`
	}

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing dependency graph response: %w", err)
	}

	if result.DepGraph == nil {
		return nil, fmt.Errorf("dependency graph response has no depGraph: %w", vulnguard.ErrMissingResponseField)
	}

	return result.DepGraph, nil
}

// Aggregated implements vulnguard.IssuesClient.Aggregated. Unset filter
// fields fall back to the widest server-side selection.
func (c *IssuesClient) Aggregated(ctx context.Context, orgID, projectID string, filters *vulnguard.IssueFilters) (*vulnguard.AggregatedIssueSet, error) {
	path := fmt.Sprintf("org/%s/project/%s/aggregated-issues", orgID, projectID)
	body := aggregatedIssueBody(filters)

	resp, err := c.httpClient.Post(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("listing aggregated issues: %w", err)
	}

	var issueSet vulnguard.AggregatedIssueSet

	err = json.Unmarshal(resp.Body, &issueSet)
	if err != nil {
		return nil, fmt.Errorf("parsing aggregated issues response: %w", err)
	}

	return &issueSet, nil
}

// Paths implements vulnguard.IssuesClient.Paths.
func (c *IssuesClient) Paths(ctx context.Context, orgID, projectID, issueID string) (*vulnguard.IssuePaths, error) {
	path := fmt.Sprintf("org/%s/project/%s/issue/%s/paths", orgID, projectID, issueID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting issue paths: %w", err)
	}

	var paths vulnguard.IssuePaths

	err = json.Unmarshal(resp.Body, &paths)
	if err != nil {
		return nil, fmt.Errorf("parsing issue paths response: %w", err)
	}

	return &paths, nil
}

// aggregatedIssueBody builds the aggregated-issues request body, starting
// from the widest filters and layering caller overrides on top.
func aggregatedIssueBody(filters *vulnguard.IssueFilters) map[string]any {
	filterBody := map[string]any{
		"severities":      []string{"critical", "high", "medium", "low"},
		"exploitMaturity": []string{"mature", "proof-of-concept", "no-known-exploit", "no-data"},
		"types":           []string{"vuln", "license"},
		"priority": map[string]any{
			"score": map[string]any{"min": 0, "max": 1000},
		},
	}

	body := map[string]any{"filters": filterBody}

	if filters == nil {
		return body
	}

	if len(filters.Severities) > 0 {
		filterBody["severities"] = filters.Severities
	}

	if len(filters.ExploitMaturity) > 0 {
		filterBody["exploitMaturity"] = filters.ExploitMaturity
	}

	if len(filters.Types) > 0 {
		filterBody["types"] = filters.Types
	}

	if filters.Ignored != nil {
		filterBody["ignored"] = *filters.Ignored
	}

	if filters.Patched != nil {
		filterBody["patched"] = *filters.Patched
	}

	if filters.PriorityScoreMin != nil || filters.PriorityScoreMax != nil {
		score := map[string]any{"min": 0, "max": 1000}

		if filters.PriorityScoreMin != nil {
			score["min"] = *filters.PriorityScoreMin
		}

		if filters.PriorityScoreMax != nil {
			score["max"] = *filters.PriorityScoreMax
		}

		filterBody["priority"] = map[string]any{"score": score}
	}

	if filters.IncludeDescription != nil {
		body["includeDescription"] = *filters.IncludeDescription
	}

	if filters.IncludeIntroducedThrough != nil {
		body["includeIntroducedThrough"] = *filters.IncludeIntroducedThrough
	}

	return body
}
