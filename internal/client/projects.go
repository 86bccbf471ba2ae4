package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/vulnguard-io/vulnguard-client/internal/constants"
	"github.com/vulnguard-io/vulnguard-client/internal/http"
	"github.com/vulnguard-io/vulnguard-client/pkg/vulnguard"
)

// ProjectsClient implements vulnguard.ProjectsClient.
type ProjectsClient struct {
	httpClient    *http.Client
	organizations vulnguard.OrganizationsClient
}

// NewProjectsClient creates a new projects client.
func NewProjectsClient(httpClient *http.Client, organizations vulnguard.OrganizationsClient) *ProjectsClient {
	return &ProjectsClient{
		httpClient:    httpClient,
		organizations: organizations,
	}
}

// List implements vulnguard.ProjectsClient.List. Tag filters are validated
// before any request is issued. A nil organization fans out across all
// organizations.
func (c *ProjectsClient) List(ctx context.Context, org *vulnguard.Organization, opts *vulnguard.ProjectListOptions) ([]vulnguard.Project, error) {
	if org == nil {
		return c.ListAll(ctx, opts)
	}

	query, err := opts.ToValues()
	if err != nil {
		return nil, err
	}

	applyProjectListDefaults(query)

	path := fmt.Sprintf("orgs/%s/projects", org.ID)

	records, err := vulnguard.CollectPages(ctx, c.httpClient, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects for organization %s: %w", org.ID, err)
	}

	projects := make([]vulnguard.Project, 0, len(records))

	for _, record := range records {
		project, err := projectFromRecord(record)
		if err != nil {
			return nil, err
		}

		project.Organization = org
		projects = append(projects, *project)
	}

	return projects, nil
}

// ListAll implements vulnguard.ProjectsClient.ListAll by concatenating the
// project lists of every organization, sequentially.
func (c *ProjectsClient) ListAll(ctx context.Context, opts *vulnguard.ProjectListOptions) ([]vulnguard.Project, error) {
	orgs, err := c.organizations.List(ctx, nil)
	if err != nil {
		return nil, err
	}

	var projects []vulnguard.Project

	for i := range orgs {
		orgProjects, err := c.List(ctx, &orgs[i], opts)
		if err != nil {
			return nil, err
		}

		projects = append(projects, orgProjects...)
	}

	return projects, nil
}

// Get implements vulnguard.ProjectsClient.Get via the direct REST path.
func (c *ProjectsClient) Get(ctx context.Context, org *vulnguard.Organization, projectID string) (*vulnguard.Project, error) {
	if org == nil {
		return nil, vulnguard.ErrOrganizationRequired
	}

	query := url.Values{}
	applyProjectListDefaults(query)
	query.Del("limit")

	path := fmt.Sprintf("orgs/%s/projects/%s", org.ID, projectID)

	resp, err := c.httpClient.GetRest(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("getting project %s: %w", projectID, err)
	}

	var doc vulnguard.Document

	err = json.Unmarshal(resp.Body, &doc)
	if err != nil {
		return nil, fmt.Errorf("parsing project response: %w", err)
	}

	if doc.Data == nil {
		return nil, fmt.Errorf("project response has no data: %w", vulnguard.ErrMissingResponseField)
	}

	project, err := projectFromRecord(doc.Data)
	if err != nil {
		return nil, err
	}

	project.Organization = org

	return project, nil
}

// Update implements vulnguard.ProjectsClient.Update with a REST PATCH.
func (c *ProjectsClient) Update(ctx context.Context, org *vulnguard.Organization, projectID string, attributes map[string]any) (*vulnguard.Project, error) {
	if org == nil {
		return nil, vulnguard.ErrOrganizationRequired
	}

	body := map[string]any{
		"data": map[string]any{
			"id":         projectID,
			"type":       "project",
			"attributes": attributes,
		},
	}

	path := fmt.Sprintf("orgs/%s/projects/%s", org.ID, projectID)

	resp, err := c.httpClient.Patch(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("updating project %s: %w", projectID, err)
	}

	var doc vulnguard.Document

	err = json.Unmarshal(resp.Body, &doc)
	if err != nil {
		return nil, fmt.Errorf("parsing project response: %w", err)
	}

	if doc.Data == nil {
		return nil, fmt.Errorf("project response has no data: %w", vulnguard.ErrMissingResponseField)
	}

	project, err := projectFromRecord(doc.Data)
	if err != nil {
		return nil, err
	}

	project.Organization = org

	return project, nil
}

// Delete implements vulnguard.ProjectsClient.Delete. It issues the old-style
// path on purpose: the transport bridges it onto the REST surface, keeping
// callers with stored legacy paths working.
func (c *ProjectsClient) Delete(ctx context.Context, orgID, projectID string) error {
	path := fmt.Sprintf("org/%s/project/%s", orgID, projectID)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting project %s: %w", projectID, err)
	}

	return nil
}

// First implements vulnguard.ProjectsClient.First.
func (c *ProjectsClient) First(ctx context.Context, org *vulnguard.Organization) (*vulnguard.Project, error) {
	projects, err := c.List(ctx, org, nil)
	if err != nil {
		return nil, err
	}

	return firstOf(projects)
}

// Filter implements vulnguard.ProjectsClient.Filter. Server-side narrowing
// (tags, origins) goes through opts; match applies exact client-side
// predicates on top.
func (c *ProjectsClient) Filter(ctx context.Context, org *vulnguard.Organization, opts *vulnguard.ProjectListOptions, match func(vulnguard.Project) bool) ([]vulnguard.Project, error) {
	projects, err := c.List(ctx, org, opts)
	if err != nil {
		return nil, err
	}

	return filterItems(projects, match), nil
}

// applyProjectListDefaults sets the listing parameters every project call
// carries unless the caller overrode them.
func applyProjectListDefaults(query url.Values) {
	if !query.Has("limit") {
		query.Set("limit", strconv.Itoa(constants.ProjectPageLimit))
	}

	if !query.Has("meta.latest_issue_counts") {
		query.Set("meta.latest_issue_counts", "true")
	}

	if !query.Has("meta.latest_dependency_total") {
		query.Set("meta.latest_dependency_total", "true")
	}

	if !query.Has("expand") {
		query.Set("expand", "target")
	}
}

// projectFromRecord converts one raw REST project record into a typed
// project.
func projectFromRecord(record json.RawMessage) (*vulnguard.Project, error) {
	var rec struct {
		ID         string `json:"id"`
		Attributes struct {
			Name                string          `json:"name"`
			Created             time.Time       `json:"created"`
			Origin              string          `json:"origin"`
			Type                string          `json:"type"`
			Status              string          `json:"status"`
			ReadOnly            bool            `json:"read_only"`
			TargetReference     string          `json:"target_reference"`
			BusinessCriticality []string        `json:"business_criticality"`
			Environment         []string        `json:"environment"`
			Lifecycle           []string        `json:"lifecycle"`
			Tags                []vulnguard.Tag `json:"tags"`
		} `json:"attributes"`
		Meta struct {
			LatestIssueCounts     vulnguard.SeverityCounts `json:"latest_issue_counts"`
			LatestDependencyTotal struct {
				Total int `json:"total"`
			} `json:"latest_dependency_total"`
		} `json:"meta"`
	}

	err := json.Unmarshal(record, &rec)
	if err != nil {
		return nil, fmt.Errorf("parsing project record: %w", err)
	}

	return &vulnguard.Project{
		ID:                    rec.ID,
		Name:                  rec.Attributes.Name,
		Created:               rec.Attributes.Created,
		Origin:                rec.Attributes.Origin,
		Type:                  rec.Attributes.Type,
		Status:                rec.Attributes.Status,
		ReadOnly:              rec.Attributes.ReadOnly,
		TargetReference:       rec.Attributes.TargetReference,
		BusinessCriticality:   rec.Attributes.BusinessCriticality,
		Environment:           rec.Attributes.Environment,
		Lifecycle:             rec.Attributes.Lifecycle,
		Tags:                  rec.Attributes.Tags,
		IssueCountsBySeverity: rec.Meta.LatestIssueCounts,
		TotalDependencies:     rec.Meta.LatestDependencyTotal.Total,
	}, nil
}
