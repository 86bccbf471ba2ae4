package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vghttp "github.com/vulnguard-io/vulnguard-client/internal/http"
	"github.com/vulnguard-io/vulnguard-client/pkg/vulnguard"
)

// MockLogger for testing.
type MockLogger struct {
	logs []map[string]interface{}
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "debug", "msg": msg, "fields": fields})
}

func (l *MockLogger) Info(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "info", "msg": msg, "fields": fields})
}

func (l *MockLogger) Warn(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "warn", "msg": msg, "fields": fields})
}

func (l *MockLogger) Error(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "error", "msg": msg, "fields": fields})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()
	t.Run("successful legacy request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/org/org-1/members", request.URL.Path)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "token test-token", request.Header.Get("Authorization"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))
			assert.Empty(t, request.URL.Query().Get("version"))

			_ = json.NewEncoder(writer).Encode([]map[string]string{{"id": "member-1"}})
		}))
		defer server.Close()

		client := vghttp.NewClient(server.URL, "http://unused.invalid", "test-token")

		resp, err := client.Get(context.Background(), "org/org-1/members", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("rest request injects fallback version", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/orgs", request.URL.Path)
			assert.Equal(t, "2024-06-21", request.URL.Query().Get("version"))
			writer.WriteHeader(http.StatusOK)
			_, _ = writer.Write([]byte(`{"data": []}`))
		}))
		defer server.Close()

		client := vghttp.NewClient("http://unused.invalid", server.URL, "test-token")

		resp, err := client.GetRest(context.Background(), "orgs", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("rest request uses configured version", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "2025-01-15", request.URL.Query().Get("version"))
			writer.WriteHeader(http.StatusOK)
			_, _ = writer.Write([]byte(`{"data": []}`))
		}))
		defer server.Close()

		client := vghttp.NewClient("http://unused.invalid", server.URL, "test-token",
			vghttp.WithVersion("2025-01-15"))

		_, err := client.GetRest(context.Background(), "orgs", nil)
		require.NoError(t, err)
	})

	t.Run("caller version is not duplicated", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			versions := request.URL.Query()["version"]
			assert.Equal(t, []string{"2023-09-01"}, versions)
			writer.WriteHeader(http.StatusOK)
			_, _ = writer.Write([]byte(`{"data": []}`))
		}))
		defer server.Close()

		client := vghttp.NewClient("http://unused.invalid", server.URL, "test-token")

		query := url.Values{"version": []string{"2023-09-01"}}

		_, err := client.GetRest(context.Background(), "orgs", query)
		require.NoError(t, err)
	})

	t.Run("embedded limit wins over caller limit", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			limits := request.URL.Query()["limit"]
			assert.Equal(t, []string{"10"}, limits)
			writer.WriteHeader(http.StatusOK)
			_, _ = writer.Write([]byte(`{"data": []}`))
		}))
		defer server.Close()

		client := vghttp.NewClient("http://unused.invalid", server.URL, "test-token")

		query := url.Values{"limit": []string{"100"}}

		_, err := client.GetRest(context.Background(), "orgs?limit=10", query)
		require.NoError(t, err)
	})

	t.Run("post sends json content type", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]any

			require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
			assert.Equal(t, map[string]any{"filters": map[string]any{}}, body)
			writer.WriteHeader(http.StatusOK)
			_, _ = writer.Write([]byte(`{"results": []}`))
		}))
		defer server.Close()

		client := vghttp.NewClient(server.URL, "http://unused.invalid", "test-token")

		_, err := client.Post(context.Background(), "org/org-1/licenses", map[string]any{"filters": map[string]any{}})
		require.NoError(t, err)
	})

	t.Run("patch sends typed json content type", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "application/vnd.api+json", request.Header.Get("Content-Type"))
			writer.WriteHeader(http.StatusOK)
			_, _ = writer.Write([]byte(`{"data": {"id": "p-1"}}`))
		}))
		defer server.Close()

		client := vghttp.NewClient("http://unused.invalid", server.URL, "test-token")

		_, err := client.Patch(context.Background(), "orgs/o-1/projects/p-1", map[string]any{})
		require.NoError(t, err)
	})

	t.Run("error response returns api error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte(`{"message": "no such org"}`))
		}))
		defer server.Close()

		client := vghttp.NewClient(server.URL, "http://unused.invalid", "test-token")

		_, err := client.Get(context.Background(), "org/missing/members", nil)
		require.Error(t, err)

		var apiErr *vulnguard.APIError

		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Contains(t, string(apiErr.Body), "no such org")
	})
}

func TestClient_Retry(t *testing.T) {
	t.Parallel()
	t.Run("retries server errors until success", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if attempts.Add(1) < 3 {
				writer.WriteHeader(http.StatusServiceUnavailable)

				return
			}

			writer.WriteHeader(http.StatusOK)
			_, _ = writer.Write([]byte(`{"data": []}`))
		}))
		defer server.Close()

		client := vghttp.NewClient("http://unused.invalid", server.URL, "test-token",
			vghttp.WithRetryConfig(3, time.Millisecond, 5*time.Millisecond))

		resp, err := client.GetRest(context.Background(), "orgs", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, int32(3), attempts.Load())
	})

	t.Run("does not retry client errors", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := vghttp.NewClient("http://unused.invalid", server.URL, "test-token",
			vghttp.WithRetryConfig(3, time.Millisecond, 5*time.Millisecond))

		_, err := client.GetRest(context.Background(), "orgs", nil)
		require.Error(t, err)
		assert.Equal(t, int32(1), attempts.Load())
	})

	t.Run("exhausted retries surface the api error", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := vghttp.NewClient("http://unused.invalid", server.URL, "test-token",
			vghttp.WithRetryConfig(2, time.Millisecond, 5*time.Millisecond))

		_, err := client.GetRest(context.Background(), "orgs", nil)
		require.Error(t, err)

		var apiErr *vulnguard.APIError

		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
		assert.Equal(t, int32(3), attempts.Load())
	})
}

func TestClient_LegacyDeleteBridge(t *testing.T) {
	t.Parallel()

	const (
		orgID     = "a3f1c6e2-9b4d-4e8a-b1c2-d3e4f5a6b7c8"
		projectID = "0f9e8d7c-6b5a-4c3d-8e2f-1a2b3c4d5e6f"
	)

	legacy := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		t.Errorf("legacy surface must not receive the delete, got %s", request.URL.Path)
	}))
	defer legacy.Close()

	rest := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodDelete, request.Method)
		assert.Equal(t, "/orgs/"+orgID+"/projects/"+projectID, request.URL.Path)
		assert.NotEmpty(t, request.URL.Query().Get("version"))
		writer.WriteHeader(http.StatusNoContent)
	}))
	defer rest.Close()

	client := vghttp.NewClient(legacy.URL, rest.URL, "test-token")

	resp, err := client.Delete(context.Background(), "org/"+orgID+"/project/"+projectID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestClient_GetNextPage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		// Cursor links carry their own query; nothing may be re-injected.
		assert.Equal(t, url.Values{"starting_after": []string{"cursor-1"}}, request.URL.Query())
		writer.WriteHeader(http.StatusOK)
		_, _ = writer.Write([]byte(`{"data": [{"id": "o-2"}], "links": {}}`))
	}))
	defer server.Close()

	client := vghttp.NewClient("http://unused.invalid", server.URL, "test-token")

	page, err := client.GetNextPage(context.Background(), server.URL+"/orgs?starting_after=cursor-1")
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
}

func TestClient_PageDecoding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		wantNil  bool
		wantLen  int
		wantNext string
	}{
		{
			name:    "array data",
			body:    `{"data": [{"id": "1"}, {"id": "2"}], "links": {"next": "/orgs?p=2"}}`,
			wantLen: 2, wantNext: "/orgs?p=2",
		},
		{
			name:    "single object data",
			body:    `{"data": {"id": "1"}}`,
			wantLen: 1,
		},
		{
			name:    "null data",
			body:    `{"data": null}`,
			wantNil: true,
		},
		{
			name:    "missing data key",
			body:    `{"links": {}}`,
			wantNil: true,
		},
		{
			name:    "empty array",
			body:    `{"data": []}`,
			wantLen: 0,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				_, _ = writer.Write([]byte(testCase.body))
			}))
			defer server.Close()

			client := vghttp.NewClient("http://unused.invalid", server.URL, "test-token")

			page, err := client.GetPage(context.Background(), "orgs", nil)
			require.NoError(t, err)

			if testCase.wantNil {
				assert.Nil(t, page.Data)
			} else {
				assert.Len(t, page.Data, testCase.wantLen)
			}

			assert.Equal(t, testCase.wantNext, page.Links.Next)
		})
	}
}

func TestClient_DebugLogging(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
		_, _ = writer.Write([]byte(`{}`))
	}))
	defer server.Close()

	logger := &MockLogger{}
	client := vghttp.NewClient(server.URL, "http://unused.invalid", "test-token",
		vghttp.WithLogger(logger), vghttp.WithDebug(true))

	_, err := client.Get(context.Background(), "org/o-1/entitlements", nil)
	require.NoError(t, err)
	require.Len(t, logger.logs, 2)
	assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
	assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])
}

func TestClient_ContextCancellation(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := vghttp.NewClient(server.URL, "http://unused.invalid", "test-token")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Get(ctx, "org/o-1/members", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
