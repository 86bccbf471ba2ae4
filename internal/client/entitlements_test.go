package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vulnguard-io/vulnguard-client/internal/client"
	vghttp "github.com/vulnguard-io/vulnguard-client/internal/http"
)

func TestEntitlementsClient_All(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/org/org-1/entitlements", request.URL.Path)
		_, _ = writer.Write([]byte(`{"licenses": true, "reports": false}`))
	}))
	defer server.Close()

	httpClient := vghttp.NewClient(server.URL, "http://unused.invalid", "test-token")

	entitlements, err := client.NewEntitlementsClient(httpClient).All(context.Background(), "org-1")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"licenses": true, "reports": false}, entitlements)
}
