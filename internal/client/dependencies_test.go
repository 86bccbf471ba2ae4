package client_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vulnguard-io/vulnguard-client/internal/client"
	vghttp "github.com/vulnguard-io/vulnguard-client/internal/http"
	"github.com/vulnguard-io/vulnguard-client/pkg/vulnguard"
)

func newDependenciesClient(legacyURL string) *client.DependenciesClient {
	httpClient := vghttp.NewClient(legacyURL, "http://unused.invalid", "test-token")

	return client.NewDependenciesClient(httpClient)
}

func TestDependenciesClient_List(t *testing.T) {
	t.Parallel()
	t.Run("walks counted pages until the total is covered", func(t *testing.T) {
		t.Parallel()

		// 1500 dependencies at 1000 per page means exactly two requests.
		const total = 1500

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodPost, request.Method)
			assert.Equal(t, "/org/org-1/dependencies", request.URL.Path)
			assert.Equal(t, "dependency", request.URL.Query().Get("sortBy"))
			assert.Equal(t, "asc", request.URL.Query().Get("order"))
			assert.Equal(t, "1000", request.URL.Query().Get("perPage"))

			var body struct {
				Filters map[string]any `json:"filters"`
			}

			require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
			assert.Equal(t, []any{"proj-1"}, body.Filters["projects"])

			page, err := strconv.Atoi(request.URL.Query().Get("page"))
			require.NoError(t, err)

			count := 1000
			if page == 2 {
				count = 500
			}

			results := make([]map[string]any, 0, count)
			for i := 0; i < count; i++ {
				results = append(results, map[string]any{
					"id": fmt.Sprintf("dep-%d-%d", page, i),
				})
			}

			_ = json.NewEncoder(writer).Encode(map[string]any{
				"total":   total,
				"results": results,
			})
		}))
		defer server.Close()

		deps, err := newDependenciesClient(server.URL).List(context.Background(), "org-1", "proj-1")
		require.NoError(t, err)
		assert.Len(t, deps, total)
		assert.Equal(t, "dep-1-0", deps[0].ID)
		assert.Equal(t, "dep-2-499", deps[total-1].ID)
	})

	t.Run("empty project id lists organization wide", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			var body struct {
				Filters map[string]any `json:"filters"`
			}

			require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
			assert.Empty(t, body.Filters)

			_, _ = writer.Write([]byte(`{"total": 1, "results": [{"id": "dep-1", "name": "lodash", "version": "4.17.21"}]}`))
		}))
		defer server.Close()

		deps, err := newDependenciesClient(server.URL).List(context.Background(), "org-1", "")
		require.NoError(t, err)
		require.Len(t, deps, 1)
		assert.Equal(t, "lodash", deps[0].Name)
	})

	t.Run("caps runaway totals", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			calls.Add(1)
			// A total the pages never reach would loop forever without a cap.
			_, _ = writer.Write([]byte(`{"total": 10000000, "results": [{"id": "dep-1"}]}`))
		}))
		defer server.Close()

		_, err := newDependenciesClient(server.URL).List(context.Background(), "org-1", "proj-1")
		require.ErrorIs(t, err, vulnguard.ErrTooManyPages)
		assert.Equal(t, int32(50), calls.Load())
	})
}

func TestDependenciesClient_Get(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(`{"total": 2, "results": [{"id": "dep-1"}, {"id": "dep-2"}]}`))
	}))
	defer server.Close()

	depsClient := newDependenciesClient(server.URL)

	dep, err := depsClient.Get(context.Background(), "org-1", "", "dep-2")
	require.NoError(t, err)
	assert.Equal(t, "dep-2", dep.ID)

	_, err = depsClient.Get(context.Background(), "org-1", "", "dep-404")
	require.ErrorIs(t, err, vulnguard.ErrNotFound)
}
