package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vulnguard-io/vulnguard-client/internal/http"
	"github.com/vulnguard-io/vulnguard-client/pkg/vulnguard"
)

// LicensesClient implements vulnguard.LicensesClient. The endpoint is a
// legacy POST taking a filter body; an empty projectID lists organization
// wide.
type LicensesClient struct {
	httpClient *http.Client
}

// NewLicensesClient creates a new licenses client.
func NewLicensesClient(httpClient *http.Client) *LicensesClient {
	return &LicensesClient{httpClient: httpClient}
}

// List implements vulnguard.LicensesClient.List.
func (c *LicensesClient) List(ctx context.Context, orgID, projectID string) ([]vulnguard.License, error) {
	path := fmt.Sprintf("org/%s/licenses", orgID)
	body := map[string]any{"filters": projectFilter(projectID)}

	resp, err := c.httpClient.Post(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("listing licenses: %w", err)
	}

	var result struct {
		Results []vulnguard.License `json:"results"`
	}

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing licenses response: %w", err)
	}

	return result.Results, nil
}

// Get implements vulnguard.LicensesClient.Get.
func (c *LicensesClient) Get(ctx context.Context, orgID, projectID, id string) (*vulnguard.License, error) {
	licenses, err := c.List(ctx, orgID, projectID)
	if err != nil {
		return nil, err
	}

	return getByID(licenses, id, func(l vulnguard.License) string { return l.ID })
}

// First implements vulnguard.LicensesClient.First.
func (c *LicensesClient) First(ctx context.Context, orgID, projectID string) (*vulnguard.License, error) {
	licenses, err := c.List(ctx, orgID, projectID)
	if err != nil {
		return nil, err
	}

	return firstOf(licenses)
}

// Filter implements vulnguard.LicensesClient.Filter.
func (c *LicensesClient) Filter(ctx context.Context, orgID, projectID string, match func(vulnguard.License) bool) ([]vulnguard.License, error) {
	licenses, err := c.List(ctx, orgID, projectID)
	if err != nil {
		return nil, err
	}

	return filterItems(licenses, match), nil
}

// projectFilter builds the filter body shared by license and dependency
// listings.
func projectFilter(projectID string) map[string]any {
	if projectID == "" {
		return map[string]any{}
	}

	return map[string]any{"projects": []string{projectID}}
}
