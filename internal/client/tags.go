package client

import (
	"context"
	"fmt"

	"github.com/vulnguard-io/vulnguard-client/internal/http"
)

// TagsClient implements vulnguard.TagsClient.
type TagsClient struct {
	httpClient *http.Client
}

// NewTagsClient creates a new tags client.
func NewTagsClient(httpClient *http.Client) *TagsClient {
	return &TagsClient{httpClient: httpClient}
}

// Add implements vulnguard.TagsClient.Add.
func (c *TagsClient) Add(ctx context.Context, orgID, projectID, key, value string) (bool, error) {
	path := fmt.Sprintf("org/%s/project/%s/tags", orgID, projectID)

	return c.post(ctx, path, key, value)
}

// Delete implements vulnguard.TagsClient.Delete.
func (c *TagsClient) Delete(ctx context.Context, orgID, projectID, key, value string) (bool, error) {
	path := fmt.Sprintf("org/%s/project/%s/tags/remove", orgID, projectID)

	return c.post(ctx, path, key, value)
}

func (c *TagsClient) post(ctx context.Context, path, key, value string) (bool, error) {
	body := map[string]any{"key": key, "value": value}

	_, err := c.httpClient.Post(ctx, path, body)
	if err != nil {
		return false, fmt.Errorf("modifying tags: %w", err)
	}

	return true, nil
}
