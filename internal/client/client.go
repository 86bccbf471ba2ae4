// Package client implements the vulnguard.Client interface: per-resource
// clients over the shared transport, plus the kind-dispatch registry.
package client

import (
	"github.com/vulnguard-io/vulnguard-client/internal/constants"
	"github.com/vulnguard-io/vulnguard-client/internal/http"
	"github.com/vulnguard-io/vulnguard-client/pkg/vulnguard"
)

// Client implements the vulnguard.Client interface.
type Client struct {
	httpClient *http.Client
	logger     vulnguard.Logger

	organizations vulnguard.OrganizationsClient
	projects      vulnguard.ProjectsClient
	members       vulnguard.MembersClient
	licenses      vulnguard.LicensesClient
	dependencies  vulnguard.DependenciesClient
	integrations  vulnguard.IntegrationsClient
	entitlements  vulnguard.EntitlementsClient
	settings      vulnguard.SettingsClient
	ignores       vulnguard.IgnoresClient
	jiraIssues    vulnguard.JiraIssuesClient
	issues        vulnguard.IssuesClient
	tags          vulnguard.TagsClient
}

// New creates a new VulnGuard API client from the given configuration.
func New(config *vulnguard.Config) (*Client, error) {
	if config == nil || config.Token == "" {
		return nil, vulnguard.ErrTokenRequired
	}

	apiURL := config.APIEndpoint
	if apiURL == "" {
		apiURL = constants.DefaultAPIEndpoint
	}

	restAPIURL := config.RestAPIEndpoint
	if restAPIURL == "" {
		restAPIURL = constants.DefaultRestAPIEndpoint
	}

	httpClient := http.NewClient(apiURL, restAPIURL, config.Token, createHTTPClientOptions(config)...)

	client := &Client{
		httpClient: httpClient,
		logger:     config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// createHTTPClientOptions builds transport options from config.
func createHTTPClientOptions(config *vulnguard.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.Version != "" {
		httpOpts = append(httpOpts, http.WithVersion(config.Version))
	}

	if config.SkipTLSVerify {
		httpOpts = append(httpOpts, http.WithSkipTLSVerify(true))
	}

	retryMax := config.RetryMax
	if retryMax == 0 {
		retryMax = constants.DefaultRetryMax
	}

	retryWaitMin := constants.DefaultRetryWaitMin
	if config.RetryWaitMin > 0 {
		retryWaitMin = config.RetryWaitMin
	}

	retryWaitMax := constants.DefaultRetryWaitMax
	if config.RetryWaitMax > 0 {
		retryWaitMax = config.RetryWaitMax
	}

	httpOpts = append(httpOpts, http.WithRetryConfig(retryMax, retryWaitMin, retryWaitMax))

	return httpOpts
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.organizations = NewOrganizationsClient(c.httpClient)
	c.projects = NewProjectsClient(c.httpClient, c.organizations)
	c.members = NewMembersClient(c.httpClient)
	c.licenses = NewLicensesClient(c.httpClient)
	c.dependencies = NewDependenciesClient(c.httpClient)
	c.integrations = NewIntegrationsClient(c.httpClient)
	c.entitlements = NewEntitlementsClient(c.httpClient)
	c.settings = NewSettingsClient(c.httpClient)
	c.ignores = NewIgnoresClient(c.httpClient)
	c.jiraIssues = NewJiraIssuesClient(c.httpClient)
	c.issues = NewIssuesClient(c.httpClient)
	c.tags = NewTagsClient(c.httpClient)
}

// Organizations implements vulnguard.Client.Organizations.
func (c *Client) Organizations() vulnguard.OrganizationsClient {
	return c.organizations
}

// Projects implements vulnguard.Client.Projects.
func (c *Client) Projects() vulnguard.ProjectsClient {
	return c.projects
}

// Members implements vulnguard.Client.Members.
func (c *Client) Members() vulnguard.MembersClient {
	return c.members
}

// Licenses implements vulnguard.Client.Licenses.
func (c *Client) Licenses() vulnguard.LicensesClient {
	return c.licenses
}

// Dependencies implements vulnguard.Client.Dependencies.
func (c *Client) Dependencies() vulnguard.DependenciesClient {
	return c.dependencies
}

// Integrations implements vulnguard.Client.Integrations.
func (c *Client) Integrations() vulnguard.IntegrationsClient {
	return c.integrations
}

// Entitlements implements vulnguard.Client.Entitlements.
func (c *Client) Entitlements() vulnguard.EntitlementsClient {
	return c.entitlements
}

// Settings implements vulnguard.Client.Settings.
func (c *Client) Settings() vulnguard.SettingsClient {
	return c.settings
}

// Ignores implements vulnguard.Client.Ignores.
func (c *Client) Ignores() vulnguard.IgnoresClient {
	return c.ignores
}

// JiraIssues implements vulnguard.Client.JiraIssues.
func (c *Client) JiraIssues() vulnguard.JiraIssuesClient {
	return c.jiraIssues
}

// Issues implements vulnguard.Client.Issues.
func (c *Client) Issues() vulnguard.IssuesClient {
	return c.issues
}

// Tags implements vulnguard.Client.Tags.
func (c *Client) Tags() vulnguard.TagsClient {
	return c.tags
}

// loggerAdapter adapts vulnguard.Logger to http.Logger.
type loggerAdapter struct {
	logger vulnguard.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
