package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vulnguard-io/vulnguard-client/pkg/vulnguard"
)

// NewIssuesCommand creates the issues command group.
func NewIssuesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "issues",
		Aliases: []string{"issue"},
		Short:   "Inspect project issues",
		Long:    "List aggregated vulnerability and license issues of a project, and the dependency paths that introduce them",
	}

	cmd.AddCommand(newIssuesListCommand())
	cmd.AddCommand(newIssuesPathsCommand())

	return cmd
}

func newIssuesListCommand() *cobra.Command {
	var (
		orgFlag        string
		projectFlag    string
		severities     []string
		types          []string
		includeIgnored bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List aggregated issues",
		Long:  "List the aggregated issues of a project, grouped by vulnerability",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			org, err := findOrganization(ctx, client, orgFlag)
			if err != nil {
				return err
			}

			filters := &vulnguard.IssueFilters{
				Severities: severities,
				Types:      types,
			}
			if !includeIgnored {
				filters.Ignored = vulnguard.Bool(false)
			}

			issueSet, err := client.Issues().Aggregated(ctx, org.ID, projectFlag, filters)
			if err != nil {
				return err
			}

			return outputIssues(issueSet)
		},
	}

	cmd.Flags().StringVar(&orgFlag, "org", "", "organization id, slug, or name (required)")
	cmd.Flags().StringVar(&projectFlag, "project", "", "project id (required)")
	cmd.Flags().StringSliceVar(&severities, "severity", nil, "severity filter (critical, high, medium, low)")
	cmd.Flags().StringSliceVar(&types, "type", nil, "issue type filter (vuln, license)")
	cmd.Flags().BoolVar(&includeIgnored, "include-ignored", false, "include ignored issues")
	_ = cmd.MarkFlagRequired("org")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func outputIssues(issueSet *vulnguard.AggregatedIssueSet) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(issueSet)
	case OutputFormatYAML:
		return StandardYAMLRenderer(issueSet)
	default:
		return renderIssueTable(issueSet)
	}
}

func renderIssueTable(issueSet *vulnguard.AggregatedIssueSet) error {
	if len(issueSet.Issues) == 0 {
		_, _ = os.Stdout.WriteString("No issues found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Type", "Package", "Severity", "Ignored", "Patched")

	for _, issue := range issueSet.Issues {
		severity := NotAvailable
		if s, ok := issue.IssueData["severity"].(string); ok {
			severity = s
		}

		_ = table.Append(issue.ID, issue.IssueType, issue.PkgName, severity,
			fmt.Sprintf("%t", issue.IsIgnored), fmt.Sprintf("%t", issue.IsPatched))
	}

	_ = table.Render()

	return nil
}

func newIssuesPathsCommand() *cobra.Command {
	var (
		orgFlag     string
		projectFlag string
	)

	cmd := &cobra.Command{
		Use:   "paths ISSUE_ID",
		Short: "Show dependency paths for an issue",
		Long:  "Show the dependency paths that introduce an issue into a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			org, err := findOrganization(ctx, client, orgFlag)
			if err != nil {
				return err
			}

			paths, err := client.Issues().Paths(ctx, org.ID, projectFlag, args[0])
			if err != nil {
				return err
			}

			return outputIssuePaths(paths)
		},
	}

	cmd.Flags().StringVar(&orgFlag, "org", "", "organization id, slug, or name (required)")
	cmd.Flags().StringVar(&projectFlag, "project", "", "project id (required)")
	_ = cmd.MarkFlagRequired("org")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func outputIssuePaths(paths *vulnguard.IssuePaths) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(paths)
	case OutputFormatYAML:
		return StandardYAMLRenderer(paths)
	default:
		if len(paths.Paths) == 0 {
			_, _ = os.Stdout.WriteString("No paths found\n")

			return nil
		}

		for _, path := range paths.Paths {
			for i, step := range path {
				if i > 0 {
					_, _ = os.Stdout.WriteString(" > ")
				}

				_, _ = fmt.Fprintf(os.Stdout, "%s@%s", step.Name, step.Version)
			}

			_, _ = os.Stdout.WriteString("\n")
		}

		return nil
	}
}
