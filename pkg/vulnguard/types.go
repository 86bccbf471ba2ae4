package vulnguard

import (
	"encoding/json"
	"time"
)

// Document is the REST response envelope. Data holds the raw records of the
// current page; Links carries the pagination cursors.
type Document struct {
	Data  json.RawMessage `json:"data"`
	Links PageLinks       `json:"links"`
}

// PageLinks holds the opaque cursor links of a REST page. Next is absent on
// the final page.
type PageLinks struct {
	Self string `json:"self,omitempty"`
	Next string `json:"next,omitempty"`
}

// RestResource is the generic shape of one REST record.
type RestResource struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Attributes json.RawMessage `json:"attributes"`
}

// Organization represents one organization.
type Organization struct {
	ID    string `json:"id"         yaml:"id"`
	Name  string `json:"name"       yaml:"name"`
	Slug  string `json:"slug"       yaml:"slug"`
	Group string `json:"group_id"   yaml:"group_id"`
	URL   string `json:"url"        yaml:"url"`
}

// SeverityCounts holds issue counts broken down by severity.
type SeverityCounts struct {
	Low      int `json:"low"      yaml:"low"`
	Medium   int `json:"medium"   yaml:"medium"`
	High     int `json:"high"     yaml:"high"`
	Critical int `json:"critical" yaml:"critical"`
}

// Tag is one exact key/value pair attached to a project or used as a listing
// filter.
type Tag struct {
	Key   string `json:"key"   yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Project represents one monitored project. Organization is a non-owning
// back-reference populated by project-scoped listings and gets; it is never
// nil on a project returned from an organization-scoped call.
type Project struct {
	ID                    string         `json:"id"                      yaml:"id"`
	Name                  string         `json:"name"                    yaml:"name"`
	Created               time.Time      `json:"created"                 yaml:"created"`
	Origin                string         `json:"origin"                  yaml:"origin"`
	Type                  string         `json:"type"                    yaml:"type"`
	Status                string         `json:"status"                  yaml:"status"`
	ReadOnly              bool           `json:"read_only"               yaml:"read_only"`
	TargetReference       string         `json:"target_reference"        yaml:"target_reference"`
	BusinessCriticality   []string       `json:"business_criticality"    yaml:"business_criticality"`
	Environment           []string       `json:"environment"             yaml:"environment"`
	Lifecycle             []string       `json:"lifecycle"               yaml:"lifecycle"`
	Tags                  []Tag          `json:"tags"                    yaml:"tags"`
	IssueCountsBySeverity SeverityCounts `json:"issue_counts_by_severity" yaml:"issue_counts_by_severity"`
	TotalDependencies     int            `json:"total_dependencies"      yaml:"total_dependencies"`

	Organization *Organization `json:"-" yaml:"-"`
}

// Member represents one organization member.
type Member struct {
	ID       string `json:"id"       yaml:"id"`
	Username string `json:"username" yaml:"username"`
	Name     string `json:"name"     yaml:"name"`
	Email    string `json:"email"    yaml:"email"`
	Role     string `json:"role"     yaml:"role"`
}

// License represents one license in use across an organization or project.
type License struct {
	ID           string   `json:"id"           yaml:"id"`
	Severity     string   `json:"severity"     yaml:"severity"`
	Instructions string   `json:"instructions" yaml:"instructions"`
	Dependencies []string `json:"dependencies" yaml:"dependencies"`
	Projects     []string `json:"projects"     yaml:"projects"`
}

// Dependency represents one package dependency.
type Dependency struct {
	ID                string   `json:"id"                  yaml:"id"`
	Name              string   `json:"name"                yaml:"name"`
	Version           string   `json:"version"             yaml:"version"`
	Type              string   `json:"type"                yaml:"type"`
	Licenses          []string `json:"licenses"            yaml:"licenses"`
	DependenciesWith  []string `json:"dependencies_with"   yaml:"dependencies_with"`
	IssuesCritical    int      `json:"issues_critical"     yaml:"issues_critical"`
	IssuesHigh        int      `json:"issues_high"         yaml:"issues_high"`
	IssuesMedium      int      `json:"issues_medium"       yaml:"issues_medium"`
	IssuesLow         int      `json:"issues_low"          yaml:"issues_low"`
	ProjectCount      int      `json:"project_count"       yaml:"project_count"`
	LatestVersion     string   `json:"latest_version"      yaml:"latest_version"`
	IsDeprecated      bool     `json:"is_deprecated"       yaml:"is_deprecated"`
	DeprecatedVersion []string `json:"deprecated_versions" yaml:"deprecated_versions"`
}

// DependencyPage is the legacy dependency listing envelope.
type DependencyPage struct {
	Total   int          `json:"total"`
	Results []Dependency `json:"results"`
}

// Integration represents one source-control or container integration
// configured for an organization. The listing endpoint returns a flat
// name-to-id map; each pair becomes one Integration.
type Integration struct {
	Name string `json:"name" yaml:"name"`
	ID   string `json:"id"   yaml:"id"`

	Organization *Organization `json:"-" yaml:"-"`
}

// DependencyGraph is the dependency graph of a single project.
type DependencyGraph struct {
	SchemaVersion string              `json:"schemaVersion" yaml:"schemaVersion"`
	PkgManager    PkgManager          `json:"pkgManager"    yaml:"pkgManager"`
	Pkgs          []Pkg               `json:"pkgs"          yaml:"pkgs"`
	Graph         DependencyGraphRoot `json:"graph"         yaml:"graph"`
}

// PkgManager identifies the package ecosystem of a dependency graph.
type PkgManager struct {
	Name string `json:"name" yaml:"name"`
}

// Pkg is one package node of a dependency graph.
type Pkg struct {
	ID   string  `json:"id"   yaml:"id"`
	Info PkgInfo `json:"info" yaml:"info"`
}

// PkgInfo carries the name and version of a package node.
type PkgInfo struct {
	Name    string `json:"name"    yaml:"name"`
	Version string `json:"version" yaml:"version"`
}

// DependencyGraphRoot is the adjacency list of a dependency graph.
type DependencyGraphRoot struct {
	RootNodeID string      `json:"rootNodeId" yaml:"rootNodeId"`
	Nodes      []GraphNode `json:"nodes"      yaml:"nodes"`
}

// GraphNode is one node of the dependency graph adjacency list.
type GraphNode struct {
	NodeID string     `json:"nodeId" yaml:"nodeId"`
	PkgID  string     `json:"pkgId"  yaml:"pkgId"`
	Deps   []GraphDep `json:"deps"   yaml:"deps"`
}

// GraphDep is one edge of the dependency graph.
type GraphDep struct {
	NodeID string `json:"nodeId" yaml:"nodeId"`
}

// AggregatedIssueSet is the aggregated issue listing of a single project.
type AggregatedIssueSet struct {
	Issues []AggregatedIssue `json:"issues" yaml:"issues"`
}

// AggregatedIssue is one aggregated issue.
type AggregatedIssue struct {
	ID          string         `json:"id"          yaml:"id"`
	IssueType   string         `json:"issueType"   yaml:"issueType"`
	PkgName     string         `json:"pkgName"     yaml:"pkgName"`
	PkgVersions []string       `json:"pkgVersions" yaml:"pkgVersions"`
	IssueData   map[string]any `json:"issueData"   yaml:"issueData"`
	IsIgnored   bool           `json:"isIgnored"   yaml:"isIgnored"`
	IsPatched   bool           `json:"isPatched"   yaml:"isPatched"`
	Priority    map[string]any `json:"priority"    yaml:"priority"`
}

// IssueFilters narrows an aggregated issue listing. Zero-valued fields keep
// the server defaults applied by the client.
type IssueFilters struct {
	Severities               []string
	ExploitMaturity          []string
	Types                    []string
	Ignored                  *bool
	Patched                  *bool
	PriorityScoreMin         *int
	PriorityScoreMax         *int
	IncludeDescription       *bool
	IncludeIntroducedThrough *bool
}

// IssuePaths lists the dependency paths introducing one issue.
type IssuePaths struct {
	SnapshotID string       `json:"snapshotId" yaml:"snapshotId"`
	Paths      [][]PathStep `json:"paths"      yaml:"paths"`
	Total      int          `json:"total"      yaml:"total"`
}

// PathStep is one hop of a dependency path.
type PathStep struct {
	Name    string `json:"name"    yaml:"name"`
	Version string `json:"version" yaml:"version"`
}

// JiraIssue is the unwrapped result of a Jira issue creation.
type JiraIssue map[string]any

// Business criticality values accepted by project listing filters.
const (
	BusinessCriticalityLow      = "low"
	BusinessCriticalityMedium   = "medium"
	BusinessCriticalityHigh     = "high"
	BusinessCriticalityCritical = "critical"
)

// Lifecycle values accepted by project listing filters.
const (
	LifecycleProduction  = "production"
	LifecycleDevelopment = "development"
	LifecycleSandbox     = "sandbox"
)
