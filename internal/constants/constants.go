package constants

import "time"

// API endpoints.
const (
	// DefaultAPIEndpoint is the legacy v1 API base URL.
	DefaultAPIEndpoint = "https://api.vulnguard.io/v1"

	// DefaultRestAPIEndpoint is the REST API base URL.
	DefaultRestAPIEndpoint = "https://api.vulnguard.io/rest"

	// FallbackAPIVersion is the REST API version used when the client has
	// none configured. REST calls always carry a version parameter.
	FallbackAPIVersion = "2024-06-21"
)

// Retry behavior.
const (
	// DefaultRetryMax is the default maximum number of retries for
	// transient server failures.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the initial wait between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Pagination.
const (
	// ProjectPageLimit is the page size requested for project listings.
	ProjectPageLimit = 100

	// DependencyPageSize is the fixed per-page counter used by the
	// dependency listing endpoint.
	DependencyPageSize = 1000

	// MaxDependencyPages bounds the dependency page loop. The endpoint
	// reports a total that drives pagination; a server returning an
	// inconsistent total must not cause an unbounded fetch.
	MaxDependencyPages = 50

	// OrganizationPagePause is the pause between organization listing
	// pages, respecting externally imposed rate limits.
	OrganizationPagePause = 100 * time.Millisecond
)

// UUIDPattern matches the v4 UUIDs used in resource paths.
const UUIDPattern = `[0-9a-f]{8}-[0-9a-f]{4}-[4][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}`

// File and directory permissions for CLI configuration.
const (
	ConfigDirPerm  = 0750
	ConfigFilePerm = 0600
)
