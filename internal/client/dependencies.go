package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vulnguard-io/vulnguard-client/internal/constants"
	"github.com/vulnguard-io/vulnguard-client/internal/http"
	"github.com/vulnguard-io/vulnguard-client/pkg/vulnguard"
)

// DependenciesClient implements vulnguard.DependenciesClient. The endpoint
// paginates with explicit page/perPage counters instead of cursor links: the
// loop continues while the reported total exceeds page*perPage, bounded so
// an inconsistent server total cannot cause an unbounded fetch.
type DependenciesClient struct {
	httpClient *http.Client
}

// NewDependenciesClient creates a new dependencies client.
func NewDependenciesClient(httpClient *http.Client) *DependenciesClient {
	return &DependenciesClient{httpClient: httpClient}
}

// List implements vulnguard.DependenciesClient.List.
func (c *DependenciesClient) List(ctx context.Context, orgID, projectID string) ([]vulnguard.Dependency, error) {
	body := map[string]any{"filters": projectFilter(projectID)}

	var dependencies []vulnguard.Dependency

	for page := 1; ; page++ {
		if page > constants.MaxDependencyPages {
			return nil, fmt.Errorf("dependency listing for organization %s: %w", orgID, vulnguard.ErrTooManyPages)
		}

		path := fmt.Sprintf("org/%s/dependencies?sortBy=dependency&order=asc&page=%d&perPage=%d",
			orgID, page, constants.DependencyPageSize)

		resp, err := c.httpClient.Post(ctx, path, body)
		if err != nil {
			return nil, fmt.Errorf("listing dependencies: %w", err)
		}

		var result vulnguard.DependencyPage

		err = json.Unmarshal(resp.Body, &result)
		if err != nil {
			return nil, fmt.Errorf("parsing dependencies response: %w", err)
		}

		dependencies = append(dependencies, result.Results...)

		if result.Total <= page*constants.DependencyPageSize {
			return dependencies, nil
		}
	}
}

// Get implements vulnguard.DependenciesClient.Get.
func (c *DependenciesClient) Get(ctx context.Context, orgID, projectID, id string) (*vulnguard.Dependency, error) {
	dependencies, err := c.List(ctx, orgID, projectID)
	if err != nil {
		return nil, err
	}

	return getByID(dependencies, id, func(d vulnguard.Dependency) string { return d.ID })
}

// First implements vulnguard.DependenciesClient.First.
func (c *DependenciesClient) First(ctx context.Context, orgID, projectID string) (*vulnguard.Dependency, error) {
	dependencies, err := c.List(ctx, orgID, projectID)
	if err != nil {
		return nil, err
	}

	return firstOf(dependencies)
}

// Filter implements vulnguard.DependenciesClient.Filter.
func (c *DependenciesClient) Filter(ctx context.Context, orgID, projectID string, match func(vulnguard.Dependency) bool) ([]vulnguard.Dependency, error) {
	dependencies, err := c.List(ctx, orgID, projectID)
	if err != nil {
		return nil, err
	}

	return filterItems(dependencies, match), nil
}
