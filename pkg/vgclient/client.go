// Package vgclient provides the main entry point for creating VulnGuard API clients
package vgclient

import (
	"strings"

	"github.com/vulnguard-io/vulnguard-client/internal/client"
	"github.com/vulnguard-io/vulnguard-client/pkg/vulnguard"
)

// New creates a new VulnGuard API client from the given configuration.
func New(config *vulnguard.Config) (vulnguard.Client, error) {
	if config == nil || config.Token == "" {
		return nil, vulnguard.ErrTokenRequired
	}

	config.APIEndpoint = normalizeEndpoint(config.APIEndpoint)
	config.RestAPIEndpoint = normalizeEndpoint(config.RestAPIEndpoint)

	return client.New(config)
}

// NewWithToken creates a new client against the hosted service with just an
// API token.
func NewWithToken(token string) (vulnguard.Client, error) {
	return New(&vulnguard.Config{Token: token})
}

// normalizeEndpoint trims trailing slashes and defaults the scheme to https.
// An empty endpoint stays empty so the built-in default applies.
func normalizeEndpoint(endpoint string) string {
	if endpoint == "" {
		return ""
	}

	endpoint = strings.TrimSuffix(endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}
