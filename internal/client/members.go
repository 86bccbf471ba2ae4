package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vulnguard-io/vulnguard-client/internal/http"
	"github.com/vulnguard-io/vulnguard-client/pkg/vulnguard"
)

// MembersClient implements vulnguard.MembersClient over the legacy surface,
// which returns a bare JSON array.
type MembersClient struct {
	httpClient *http.Client
}

// NewMembersClient creates a new members client.
func NewMembersClient(httpClient *http.Client) *MembersClient {
	return &MembersClient{httpClient: httpClient}
}

// List implements vulnguard.MembersClient.List.
func (c *MembersClient) List(ctx context.Context, orgID string) ([]vulnguard.Member, error) {
	path := fmt.Sprintf("org/%s/members", orgID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}

	var members []vulnguard.Member

	err = json.Unmarshal(resp.Body, &members)
	if err != nil {
		return nil, fmt.Errorf("parsing members response: %w", err)
	}

	return members, nil
}

// Get implements vulnguard.MembersClient.Get.
func (c *MembersClient) Get(ctx context.Context, orgID, id string) (*vulnguard.Member, error) {
	members, err := c.List(ctx, orgID)
	if err != nil {
		return nil, err
	}

	return getByID(members, id, func(m vulnguard.Member) string { return m.ID })
}

// First implements vulnguard.MembersClient.First.
func (c *MembersClient) First(ctx context.Context, orgID string) (*vulnguard.Member, error) {
	members, err := c.List(ctx, orgID)
	if err != nil {
		return nil, err
	}

	return firstOf(members)
}

// Filter implements vulnguard.MembersClient.Filter.
func (c *MembersClient) Filter(ctx context.Context, orgID string, match func(vulnguard.Member) bool) ([]vulnguard.Member, error) {
	members, err := c.List(ctx, orgID)
	if err != nil {
		return nil, err
	}

	return filterItems(members, match), nil
}
