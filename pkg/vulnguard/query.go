package vulnguard

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ProjectListOptions narrows a project listing. Zero-valued fields are
// omitted from the query string.
type ProjectListOptions struct {
	TargetID              []string
	TargetReference       string
	TargetFile            string
	TargetRuntime         string
	MetaCount             string
	IDs                   []string
	Names                 []string
	NamesStartWith        []string
	Origins               []string
	Types                 []string
	Expand                []string
	MetaLatestIssueCounts *bool
	MetaLatestDepTotal    *bool
	CLIMonitoredBefore    string
	CLIMonitoredAfter     string
	ImportingUserPublicID string
	Tags                  []Tag
	BusinessCriticality   []string
	Environment           []string
	Lifecycle             []string
	StartingAfter         string
	EndingBefore          string
	Limit                 int
}

// ToValues serializes the options into query parameters. Booleans render as
// lowercase "true"/"false" (the API is case-sensitive), lists are
// comma-joined, and tags serialize as comma-joined "key:value" tokens.
// Malformed tags fail validation before any request is issued.
func (o *ProjectListOptions) ToValues() (url.Values, error) {
	values := url.Values{}
	if o == nil {
		return values, nil
	}

	tags, err := FormatTagFilter(o.Tags)
	if err != nil {
		return nil, err
	}

	if tags != "" {
		values.Set("tags", tags)
	}

	setList := func(key string, items []string) {
		if len(items) > 0 {
			values.Set(key, strings.Join(items, ","))
		}
	}

	setList("target_id", o.TargetID)
	setList("ids", o.IDs)
	setList("names", o.Names)
	setList("names_start_with", o.NamesStartWith)
	setList("origins", o.Origins)
	setList("types", o.Types)
	setList("expand", o.Expand)
	setList("business_criticality", o.BusinessCriticality)
	setList("environment", o.Environment)
	setList("lifecycle", o.Lifecycle)

	setString := func(key, value string) {
		if value != "" {
			values.Set(key, value)
		}
	}

	setString("target_reference", o.TargetReference)
	setString("target_file", o.TargetFile)
	setString("target_runtime", o.TargetRuntime)
	setString("meta.count", o.MetaCount)
	setString("cli_monitored_before", o.CLIMonitoredBefore)
	setString("cli_monitored_after", o.CLIMonitoredAfter)
	setString("importing_user_public_id", o.ImportingUserPublicID)
	setString("starting_after", o.StartingAfter)
	setString("ending_before", o.EndingBefore)

	if o.MetaLatestIssueCounts != nil {
		values.Set("meta.latest_issue_counts", strconv.FormatBool(*o.MetaLatestIssueCounts))
	}

	if o.MetaLatestDepTotal != nil {
		values.Set("meta.latest_dependency_total", strconv.FormatBool(*o.MetaLatestDepTotal))
	}

	if o.Limit > 0 {
		values.Set("limit", strconv.Itoa(o.Limit))
	}

	return values, nil
}

// FormatTagFilter validates a tag filter and serializes it to comma-joined
// "key:value" tokens. Every tag must carry exactly a key and a value.
func FormatTagFilter(tags []Tag) (string, error) {
	if len(tags) == 0 {
		return "", nil
	}

	tokens := make([]string, 0, len(tags))

	for _, tag := range tags {
		if tag.Key == "" || tag.Value == "" {
			return "", fmt.Errorf("tag %q: %w", tag.Key, ErrMalformedTagFilter)
		}

		tokens = append(tokens, tag.Key+":"+tag.Value)
	}

	return strings.Join(tokens, ","), nil
}

// Bool returns a pointer to the given bool, for optional query fields.
func Bool(v bool) *bool {
	return &v
}
