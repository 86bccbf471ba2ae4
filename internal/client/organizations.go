package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/vulnguard-io/vulnguard-client/internal/constants"
	"github.com/vulnguard-io/vulnguard-client/internal/http"
	"github.com/vulnguard-io/vulnguard-client/pkg/vulnguard"
)

// OrganizationsClient implements vulnguard.OrganizationsClient.
type OrganizationsClient struct {
	httpClient *http.Client
}

// NewOrganizationsClient creates a new organizations client.
func NewOrganizationsClient(httpClient *http.Client) *OrganizationsClient {
	return &OrganizationsClient{httpClient: httpClient}
}

// List implements vulnguard.OrganizationsClient.List.
//
// The organization listing uses its own next convention: instead of
// following the next link verbatim, its query parameters are merged over the
// current set and the listing path is requested again, with a short pause
// between pages to respect the endpoint's rate limits.
func (c *OrganizationsClient) List(ctx context.Context, params url.Values) ([]vulnguard.Organization, error) {
	orgs := []vulnguard.Organization{}
	seen := map[string]struct{}{}

	query := url.Values{}
	for key, values := range params {
		query[key] = values
	}

	for {
		page, err := c.httpClient.GetPage(ctx, "orgs", query)
		if err != nil {
			return nil, fmt.Errorf("listing organizations: %w", err)
		}

		batch, err := decodeOrganizations(page.Data)
		if err != nil {
			return nil, err
		}

		orgs = append(orgs, batch...)

		next := page.Links.Next
		if next == "" || next == page.Links.Self {
			return orgs, nil
		}

		if _, visited := seen[next]; visited {
			return orgs, nil
		}

		seen[next] = struct{}{}

		// The next link's parameters (cursor, limit) override ours.
		for key, values := range http.ExtractQueryParams(next) {
			query[key] = values
		}

		time.Sleep(constants.OrganizationPagePause)
	}
}

// Get implements vulnguard.OrganizationsClient.Get by scanning the listing
// for the first exact id match.
func (c *OrganizationsClient) Get(ctx context.Context, id string) (*vulnguard.Organization, error) {
	orgs, err := c.List(ctx, nil)
	if err != nil {
		return nil, err
	}

	return getByID(orgs, id, func(o vulnguard.Organization) string { return o.ID })
}

// First implements vulnguard.OrganizationsClient.First.
func (c *OrganizationsClient) First(ctx context.Context) (*vulnguard.Organization, error) {
	orgs, err := c.List(ctx, nil)
	if err != nil {
		return nil, err
	}

	return firstOf(orgs)
}

// Filter implements vulnguard.OrganizationsClient.Filter.
func (c *OrganizationsClient) Filter(ctx context.Context, match func(vulnguard.Organization) bool) ([]vulnguard.Organization, error) {
	orgs, err := c.List(ctx, nil)
	if err != nil {
		return nil, err
	}

	return filterItems(orgs, match), nil
}

// decodeOrganizations converts raw REST records into organizations.
func decodeOrganizations(records []json.RawMessage) ([]vulnguard.Organization, error) {
	orgs := make([]vulnguard.Organization, 0, len(records))

	for _, record := range records {
		var rec struct {
			ID         string `json:"id"`
			Attributes struct {
				Name    string `json:"name"`
				Slug    string `json:"slug"`
				GroupID string `json:"group_id"`
			} `json:"attributes"`
		}

		err := json.Unmarshal(record, &rec)
		if err != nil {
			return nil, fmt.Errorf("parsing organization record: %w", err)
		}

		orgs = append(orgs, vulnguard.Organization{
			ID:    rec.ID,
			Name:  rec.Attributes.Name,
			Slug:  rec.Attributes.Slug,
			Group: rec.Attributes.GroupID,
		})
	}

	return orgs, nil
}
