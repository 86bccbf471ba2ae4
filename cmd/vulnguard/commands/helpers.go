package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"github.com/vulnguard-io/vulnguard-client/pkg/vgclient"
	"github.com/vulnguard-io/vulnguard-client/pkg/vulnguard"
	"gopkg.in/yaml.v3"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"

	// Output formats.
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	// YAML formatting.
	defaultYAMLIndent = 2
)

// Common static errors used throughout the commands package.
var (
	ErrTokenNotConfigured   = errors.New("no API token configured. Use 'vulnguard login' or --token")
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrProjectNotFound      = errors.New("project not found")
	ErrOrgFlagRequired      = errors.New("organization is required (use --org)")
	ErrInvalidTagFormat     = errors.New("invalid tag format. Expected key=value")
)

// CreateClient builds an API client from the effective flag/config/env
// values.
func CreateClient() (vulnguard.Client, error) {
	token := viper.GetString("token")
	if token == "" {
		return nil, ErrTokenNotConfigured
	}

	return vgclient.New(&vulnguard.Config{
		Token:           token,
		APIEndpoint:     viper.GetString("api"),
		RestAPIEndpoint: viper.GetString("rest_api"),
		SkipTLSVerify:   viper.GetBool("insecure"),
		Debug:           viper.GetBool("debug"),
	})
}

// StandardJSONRenderer creates a standard JSON encoder.
func StandardJSONRenderer[T any](data T) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer creates a standard YAML encoder.
func StandardYAMLRenderer[T any](data T) error {
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(defaultYAMLIndent)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return nil
}

// findOrganization resolves an organization by id, slug, or name.
func findOrganization(ctx context.Context, client vulnguard.Client, idOrName string) (*vulnguard.Organization, error) {
	org, err := client.Organizations().Get(ctx, idOrName)
	if err == nil {
		return org, nil
	}

	matches, err := client.Organizations().Filter(ctx, func(o vulnguard.Organization) bool {
		return o.Slug == idOrName || o.Name == idOrName
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("organization '%s': %w", idOrName, ErrOrganizationNotFound)
	}

	return &matches[0], nil
}

// parseTagFlags converts repeated key=value flags into typed tags.
func parseTagFlags(raw []string) ([]vulnguard.Tag, error) {
	tags := make([]vulnguard.Tag, 0, len(raw))

	for _, entry := range raw {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" || value == "" {
			return nil, fmt.Errorf("'%s': %w", entry, ErrInvalidTagFormat)
		}

		tags = append(tags, vulnguard.Tag{Key: key, Value: value})
	}

	return tags, nil
}
