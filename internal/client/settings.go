package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vulnguard-io/vulnguard-client/internal/http"
)

// updatableSettings is the allow-list of snake_case setting names accepted
// by Update. Anything outside the list is silently dropped.
var updatableSettings = []string{
	"auto_dep_upgrade_enabled",
	"auto_dep_upgrade_ignored_dependencies",
	"auto_dep_upgrade_min_age",
	"auto_dep_upgrade_limit",
	"pull_request_fail_on_any_vulns",
	"pull_request_fail_only_for_high_severity",
	"pull_request_test_enabled",
	"pull_request_assignment",
	"auto_remediation_prs",
}

// SettingsClient implements vulnguard.SettingsClient.
type SettingsClient struct {
	httpClient *http.Client
}

// NewSettingsClient creates a new settings client.
func NewSettingsClient(httpClient *http.Client) *SettingsClient {
	return &SettingsClient{httpClient: httpClient}
}

// All implements vulnguard.SettingsClient.All.
func (c *SettingsClient) All(ctx context.Context, orgID, projectID string) (map[string]any, error) {
	path := fmt.Sprintf("org/%s/project/%s/settings", orgID, projectID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting project settings: %w", err)
	}

	var settings map[string]any

	err = json.Unmarshal(resp.Body, &settings)
	if err != nil {
		return nil, fmt.Errorf("parsing project settings response: %w", err)
	}

	return settings, nil
}

// Update implements vulnguard.SettingsClient.Update. Keys are taken in
// snake_case and sent in the camelCase form the endpoint expects.
func (c *SettingsClient) Update(ctx context.Context, orgID, projectID string, settings map[string]any) (bool, error) {
	body := map[string]any{}

	for _, name := range updatableSettings {
		if value, ok := settings[name]; ok {
			body[http.SnakeToCamel(name)] = value
		}
	}

	path := fmt.Sprintf("org/%s/project/%s/settings", orgID, projectID)

	_, err := c.httpClient.Put(ctx, path, body)
	if err != nil {
		return false, fmt.Errorf("updating project settings: %w", err)
	}

	return true, nil
}
