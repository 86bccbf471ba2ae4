package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vulnguard-io/vulnguard-client/internal/client"
	vghttp "github.com/vulnguard-io/vulnguard-client/internal/http"
	"github.com/vulnguard-io/vulnguard-client/pkg/vulnguard"
)

func newOrganizationsClient(restURL string) *client.OrganizationsClient {
	httpClient := vghttp.NewClient("http://unused.invalid", restURL, "test-token")

	return client.NewOrganizationsClient(httpClient)
}

func TestOrganizationsClient_List(t *testing.T) {
	t.Parallel()
	t.Run("single page", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/orgs", request.URL.Path)
			_, _ = writer.Write([]byte(`{
				"data": [
					{"id": "org-1", "attributes": {"name": "Platform", "slug": "platform", "group_id": "grp-1"}},
					{"id": "org-2", "attributes": {"name": "Mobile", "slug": "mobile"}}
				],
				"links": {"self": "/orgs"}
			}`))
		}))
		defer server.Close()

		orgs, err := newOrganizationsClient(server.URL).List(context.Background(), nil)
		require.NoError(t, err)
		require.Len(t, orgs, 2)
		assert.Equal(t, "org-1", orgs[0].ID)
		assert.Equal(t, "Platform", orgs[0].Name)
		assert.Equal(t, "platform", orgs[0].Slug)
		assert.Equal(t, "grp-1", orgs[0].Group)
		assert.Empty(t, orgs[1].Group)
	})

	t.Run("merges next link parameters across pages", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/orgs", request.URL.Path)

			switch calls.Add(1) {
			case 1:
				assert.Empty(t, request.URL.Query().Get("starting_after"))
				_, _ = writer.Write([]byte(`{
					"data": [{"id": "org-1", "attributes": {"name": "One"}}],
					"links": {"self": "/orgs", "next": "/orgs?starting_after=cursor-1"}
				}`))
			default:
				// The cursor from the next link carries into the follow-up.
				assert.Equal(t, "cursor-1", request.URL.Query().Get("starting_after"))
				_, _ = writer.Write([]byte(`{
					"data": [{"id": "org-2", "attributes": {"name": "Two"}}],
					"links": {"self": "/orgs?starting_after=cursor-1"}
				}`))
			}
		}))
		defer server.Close()

		orgs, err := newOrganizationsClient(server.URL).List(context.Background(), nil)
		require.NoError(t, err)
		require.Len(t, orgs, 2)
		assert.Equal(t, "org-1", orgs[0].ID)
		assert.Equal(t, "org-2", orgs[1].ID)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("stops on repeated next links", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			calls.Add(1)
			// A next link that never advances must not loop forever.
			_, _ = writer.Write([]byte(`{
				"data": [{"id": "org-1", "attributes": {"name": "One"}}],
				"links": {"self": "/orgs", "next": "/orgs?starting_after=stuck"}
			}`))
		}))
		defer server.Close()

		orgs, err := newOrganizationsClient(server.URL).List(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, int32(2), calls.Load())
		assert.Len(t, orgs, 2)
	})
}

func TestOrganizationsClient_Get(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(`{
			"data": [
				{"id": "org-1", "attributes": {"name": "One"}},
				{"id": "org-2", "attributes": {"name": "Two"}}
			],
			"links": {"self": "/orgs"}
		}`))
	}))
	defer server.Close()

	orgsClient := newOrganizationsClient(server.URL)

	org, err := orgsClient.Get(context.Background(), "org-2")
	require.NoError(t, err)
	assert.Equal(t, "Two", org.Name)

	_, err = orgsClient.Get(context.Background(), "org-404")
	require.ErrorIs(t, err, vulnguard.ErrNotFound)
	assert.True(t, vulnguard.IsNotFound(err))
}

func TestOrganizationsClient_FirstAndFilter(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(`{
			"data": [
				{"id": "org-1", "attributes": {"name": "One", "slug": "one"}},
				{"id": "org-2", "attributes": {"name": "Two", "slug": "two"}}
			],
			"links": {"self": "/orgs"}
		}`))
	}))
	defer server.Close()

	orgsClient := newOrganizationsClient(server.URL)

	first, err := orgsClient.First(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "org-1", first.ID)

	matched, err := orgsClient.Filter(context.Background(), func(o vulnguard.Organization) bool {
		return o.Slug == "two"
	})
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "org-2", matched[0].ID)
}
