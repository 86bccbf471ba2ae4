package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/vulnguard-io/vulnguard-client/internal/http"
	"github.com/vulnguard-io/vulnguard-client/pkg/vulnguard"
)

// IntegrationsClient implements vulnguard.IntegrationsClient. The listing
// endpoint returns a flat name-to-id map; each pair becomes one typed
// integration carrying the organization back-reference.
type IntegrationsClient struct {
	httpClient *http.Client
}

// NewIntegrationsClient creates a new integrations client.
func NewIntegrationsClient(httpClient *http.Client) *IntegrationsClient {
	return &IntegrationsClient{httpClient: httpClient}
}

// List implements vulnguard.IntegrationsClient.List. Results are ordered by
// integration name for determinism.
func (c *IntegrationsClient) List(ctx context.Context, org *vulnguard.Organization) ([]vulnguard.Integration, error) {
	if org == nil {
		return nil, vulnguard.ErrOrganizationRequired
	}

	path := fmt.Sprintf("org/%s/integrations", org.ID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing integrations: %w", err)
	}

	var byName map[string]string

	err = json.Unmarshal(resp.Body, &byName)
	if err != nil {
		return nil, fmt.Errorf("parsing integrations response: %w", err)
	}

	integrations := make([]vulnguard.Integration, 0, len(byName))
	for name, id := range byName {
		integrations = append(integrations, vulnguard.Integration{
			Name:         name,
			ID:           id,
			Organization: org,
		})
	}

	sort.Slice(integrations, func(i, j int) bool {
		return integrations[i].Name < integrations[j].Name
	})

	return integrations, nil
}

// Get implements vulnguard.IntegrationsClient.Get.
func (c *IntegrationsClient) Get(ctx context.Context, org *vulnguard.Organization, id string) (*vulnguard.Integration, error) {
	integrations, err := c.List(ctx, org)
	if err != nil {
		return nil, err
	}

	return getByID(integrations, id, func(i vulnguard.Integration) string { return i.ID })
}

// First implements vulnguard.IntegrationsClient.First.
func (c *IntegrationsClient) First(ctx context.Context, org *vulnguard.Organization) (*vulnguard.Integration, error) {
	integrations, err := c.List(ctx, org)
	if err != nil {
		return nil, err
	}

	return firstOf(integrations)
}

// Filter implements vulnguard.IntegrationsClient.Filter.
func (c *IntegrationsClient) Filter(ctx context.Context, org *vulnguard.Organization, match func(vulnguard.Integration) bool) ([]vulnguard.Integration, error) {
	integrations, err := c.List(ctx, org)
	if err != nil {
		return nil, err
	}

	return filterItems(integrations, match), nil
}

// Settings implements vulnguard.IntegrationsClient.Settings.
func (c *IntegrationsClient) Settings(ctx context.Context, orgID, integrationID string) (map[string]any, error) {
	path := fmt.Sprintf("org/%s/integrations/%s/settings", orgID, integrationID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting integration settings: %w", err)
	}

	var settings map[string]any

	err = json.Unmarshal(resp.Body, &settings)
	if err != nil {
		return nil, fmt.Errorf("parsing integration settings response: %w", err)
	}

	return settings, nil
}
