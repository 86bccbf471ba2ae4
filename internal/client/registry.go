package client

import (
	"fmt"

	"github.com/vulnguard-io/vulnguard-client/pkg/vulnguard"
)

// resourceRegistry maps kind tags to accessors on an initialized client.
// Computed resources (dependency graph, issue sets, issue paths) share the
// issues client.
var resourceRegistry = map[vulnguard.ResourceKind]func(*Client) any{
	vulnguard.KindOrganization:    func(c *Client) any { return c.organizations },
	vulnguard.KindProject:         func(c *Client) any { return c.projects },
	vulnguard.KindMember:          func(c *Client) any { return c.members },
	vulnguard.KindLicense:         func(c *Client) any { return c.licenses },
	vulnguard.KindDependency:      func(c *Client) any { return c.dependencies },
	vulnguard.KindIntegration:     func(c *Client) any { return c.integrations },
	vulnguard.KindEntitlement:     func(c *Client) any { return c.entitlements },
	vulnguard.KindSetting:         func(c *Client) any { return c.settings },
	vulnguard.KindIgnore:          func(c *Client) any { return c.ignores },
	vulnguard.KindJiraIssue:       func(c *Client) any { return c.jiraIssues },
	vulnguard.KindDependencyGraph: func(c *Client) any { return c.issues },
	vulnguard.KindIssueSet:        func(c *Client) any { return c.issues },
	vulnguard.KindIssuePaths:      func(c *Client) any { return c.issues },
	vulnguard.KindTag:             func(c *Client) any { return c.tags },
}

// Resource implements vulnguard.Client.Resource.
func (c *Client) Resource(kind vulnguard.ResourceKind) (any, error) {
	accessor, ok := resourceRegistry[kind]
	if !ok {
		return nil, fmt.Errorf("resource kind %q: %w", kind, vulnguard.ErrUnknownResource)
	}

	return accessor(c), nil
}
