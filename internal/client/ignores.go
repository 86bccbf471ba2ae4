package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vulnguard-io/vulnguard-client/internal/http"
)

// IgnoresClient implements vulnguard.IgnoresClient.
type IgnoresClient struct {
	httpClient *http.Client
}

// NewIgnoresClient creates a new ignores client.
func NewIgnoresClient(httpClient *http.Client) *IgnoresClient {
	return &IgnoresClient{httpClient: httpClient}
}

// All implements vulnguard.IgnoresClient.All. The result maps issue ids to
// their ignore rules.
func (c *IgnoresClient) All(ctx context.Context, orgID, projectID string) (map[string][]any, error) {
	path := fmt.Sprintf("org/%s/project/%s/ignores", orgID, projectID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting ignores: %w", err)
	}

	var ignores map[string][]any

	err = json.Unmarshal(resp.Body, &ignores)
	if err != nil {
		return nil, fmt.Errorf("parsing ignores response: %w", err)
	}

	return ignores, nil
}
