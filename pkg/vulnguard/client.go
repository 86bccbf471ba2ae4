package vulnguard

import (
	"context"
	"net/url"
	"time"
)

// Logger interface for logging. The transport logs every outgoing request at
// debug level and every non-success response body at error level.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration. It is consumed once at
// construction and never mutated afterwards; a constructed client is safe
// for reuse across independent call chains.
type Config struct {
	// Token is the static API token sent as "Authorization: token <value>"
	// on every request. Required.
	Token string

	// APIEndpoint overrides the legacy v1 API base URL. Trailing slashes
	// are trimmed.
	APIEndpoint string

	// RestAPIEndpoint overrides the REST API base URL. Trailing slashes
	// are trimmed.
	RestAPIEndpoint string

	// Version is the REST API version date. When empty, a fixed fallback
	// version is sent on REST calls.
	Version string

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// RetryMax is the maximum number of retries for transient server
	// failures (5xx or no response). 4xx responses are never retried.
	RetryMax int

	// RetryWaitMin is the initial backoff between retries.
	RetryWaitMin time.Duration

	// RetryWaitMax is the maximum backoff between retries.
	RetryWaitMax time.Duration

	// SkipTLSVerify disables TLS certificate verification. Intended for
	// local development only.
	SkipTLSVerify bool

	// Debug enables request/response logging when a Logger is provided.
	Debug bool

	// Logger is the structured logger injected into the transport.
	Logger Logger
}

// ResourceKind tags an entity kind for registry dispatch.
type ResourceKind string

// Known resource kinds.
const (
	KindOrganization    ResourceKind = "organization"
	KindProject         ResourceKind = "project"
	KindMember          ResourceKind = "member"
	KindLicense         ResourceKind = "license"
	KindDependency      ResourceKind = "dependency"
	KindIntegration     ResourceKind = "integration"
	KindEntitlement     ResourceKind = "entitlement"
	KindSetting         ResourceKind = "setting"
	KindIgnore          ResourceKind = "ignore"
	KindJiraIssue       ResourceKind = "jira-issue"
	KindDependencyGraph ResourceKind = "dependency-graph"
	KindIssueSet        ResourceKind = "issue-set"
	KindIssuePaths      ResourceKind = "issue-paths"
	KindTag             ResourceKind = "tag"
)

// OrganizationsClient lists the organizations visible to the token.
//
// Get scans the listing for the first exact id match; which entity is
// returned when duplicate ids exist is unspecified.
type OrganizationsClient interface {
	List(ctx context.Context, params url.Values) ([]Organization, error)
	Get(ctx context.Context, id string) (*Organization, error)
	First(ctx context.Context) (*Organization, error)
	Filter(ctx context.Context, match func(Organization) bool) ([]Organization, error)
}

// ProjectsClient manages the projects of an organization. Every project
// returned carries a non-nil Organization back-reference. ListAll fans out
// across all organizations sequentially.
type ProjectsClient interface {
	List(ctx context.Context, org *Organization, opts *ProjectListOptions) ([]Project, error)
	ListAll(ctx context.Context, opts *ProjectListOptions) ([]Project, error)
	Get(ctx context.Context, org *Organization, projectID string) (*Project, error)
	Update(ctx context.Context, org *Organization, projectID string, attributes map[string]any) (*Project, error)
	Delete(ctx context.Context, orgID, projectID string) error
	First(ctx context.Context, org *Organization) (*Project, error)
	Filter(ctx context.Context, org *Organization, opts *ProjectListOptions, match func(Project) bool) ([]Project, error)
}

// MembersClient lists the members of an organization.
type MembersClient interface {
	List(ctx context.Context, orgID string) ([]Member, error)
	Get(ctx context.Context, orgID, id string) (*Member, error)
	First(ctx context.Context, orgID string) (*Member, error)
	Filter(ctx context.Context, orgID string, match func(Member) bool) ([]Member, error)
}

// LicensesClient lists licenses for an organization, optionally narrowed to
// one project.
type LicensesClient interface {
	List(ctx context.Context, orgID, projectID string) ([]License, error)
	Get(ctx context.Context, orgID, projectID, id string) (*License, error)
	First(ctx context.Context, orgID, projectID string) (*License, error)
	Filter(ctx context.Context, orgID, projectID string, match func(License) bool) ([]License, error)
}

// DependenciesClient lists dependencies for an organization, optionally
// narrowed to one project.
type DependenciesClient interface {
	List(ctx context.Context, orgID, projectID string) ([]Dependency, error)
	Get(ctx context.Context, orgID, projectID, id string) (*Dependency, error)
	First(ctx context.Context, orgID, projectID string) (*Dependency, error)
	Filter(ctx context.Context, orgID, projectID string, match func(Dependency) bool) ([]Dependency, error)
}

// IntegrationsClient lists the integrations of an organization and reads
// per-integration settings.
type IntegrationsClient interface {
	List(ctx context.Context, org *Organization) ([]Integration, error)
	Get(ctx context.Context, org *Organization, id string) (*Integration, error)
	First(ctx context.Context, org *Organization) (*Integration, error)
	Filter(ctx context.Context, org *Organization, match func(Integration) bool) ([]Integration, error)
	Settings(ctx context.Context, orgID, integrationID string) (map[string]any, error)
}

// EntitlementsClient returns the entitlement map of an organization. The
// endpoint is map-shaped; get/first/filter semantics do not apply.
type EntitlementsClient interface {
	All(ctx context.Context, orgID string) (map[string]bool, error)
}

// SettingsClient reads and updates project settings. The listing is
// map-shaped. Update accepts snake_case keys from a fixed allow-list and
// converts them to the camelCase form the endpoint expects.
type SettingsClient interface {
	All(ctx context.Context, orgID, projectID string) (map[string]any, error)
	Update(ctx context.Context, orgID, projectID string, settings map[string]any) (bool, error)
}

// IgnoresClient returns the ignore rules of a project, keyed by issue id.
type IgnoresClient interface {
	All(ctx context.Context, orgID, projectID string) (map[string][]any, error)
}

// JiraIssuesClient lists and creates Jira issues linked to project issues.
type JiraIssuesClient interface {
	All(ctx context.Context, orgID, projectID string) (map[string][]any, error)
	Create(ctx context.Context, orgID, projectID, issueID string, fields map[string]any) (JiraIssue, error)
}

// IssuesClient exposes the computed, singleton-shaped issue resources of a
// project.
type IssuesClient interface {
	DependencyGraph(ctx context.Context, orgID, projectID string) (*DependencyGraph, error)
	Aggregated(ctx context.Context, orgID, projectID string, filters *IssueFilters) (*AggregatedIssueSet, error)
	Paths(ctx context.Context, orgID, projectID, issueID string) (*IssuePaths, error)
}

// TagsClient mutates the tags of a project. The boolean result reflects
// response truthiness, not a parsed body.
type TagsClient interface {
	Add(ctx context.Context, orgID, projectID, key, value string) (bool, error)
	Delete(ctx context.Context, orgID, projectID, key, value string) (bool, error)
}

// Client is the typed entry point to the VulnGuard API.
type Client interface {
	Organizations() OrganizationsClient
	Projects() ProjectsClient
	Members() MembersClient
	Licenses() LicensesClient
	Dependencies() DependenciesClient
	Integrations() IntegrationsClient
	Entitlements() EntitlementsClient
	Settings() SettingsClient
	Ignores() IgnoresClient
	JiraIssues() JiraIssuesClient
	Issues() IssuesClient
	Tags() TagsClient

	// Resource dispatches a resource client by kind tag. Unknown kinds
	// return ErrUnknownResource.
	Resource(kind ResourceKind) (any, error)
}
