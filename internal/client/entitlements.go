package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vulnguard-io/vulnguard-client/internal/http"
)

// EntitlementsClient implements vulnguard.EntitlementsClient.
type EntitlementsClient struct {
	httpClient *http.Client
}

// NewEntitlementsClient creates a new entitlements client.
func NewEntitlementsClient(httpClient *http.Client) *EntitlementsClient {
	return &EntitlementsClient{httpClient: httpClient}
}

// All implements vulnguard.EntitlementsClient.All.
func (c *EntitlementsClient) All(ctx context.Context, orgID string) (map[string]bool, error) {
	path := fmt.Sprintf("org/%s/entitlements", orgID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting entitlements: %w", err)
	}

	var entitlements map[string]bool

	err = json.Unmarshal(resp.Body, &entitlements)
	if err != nil {
		return nil, fmt.Errorf("parsing entitlements response: %w", err)
	}

	return entitlements, nil
}
