package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vulnguard-io/vulnguard-client/pkg/vulnguard"
)

// NewDependenciesCommand creates the dependencies command group.
func NewDependenciesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "deps",
		Aliases: []string{"dependencies"},
		Short:   "Inspect package dependencies",
		Long:    "List the package dependencies of an organization or a single project",
	}

	cmd.AddCommand(newDepsListCommand())

	return cmd
}

func newDepsListCommand() *cobra.Command {
	var (
		orgFlag     string
		projectFlag string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List dependencies",
		Long:  "List dependencies across an organization, optionally narrowed to one project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if orgFlag == "" {
				return ErrOrgFlagRequired
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			org, err := findOrganization(ctx, client, orgFlag)
			if err != nil {
				return err
			}

			deps, err := client.Dependencies().List(ctx, org.ID, projectFlag)
			if err != nil {
				return err
			}

			return outputDependencies(deps)
		},
	}

	cmd.Flags().StringVar(&orgFlag, "org", "", "organization id, slug, or name (required)")
	cmd.Flags().StringVar(&projectFlag, "project", "", "narrow to one project id")
	_ = cmd.MarkFlagRequired("org")

	return cmd
}

func outputDependencies(deps []vulnguard.Dependency) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(deps)
	case OutputFormatYAML:
		return StandardYAMLRenderer(deps)
	default:
		return renderDependencyTable(deps)
	}
}

func renderDependencyTable(deps []vulnguard.Dependency) error {
	if len(deps) == 0 {
		_, _ = os.Stdout.WriteString("No dependencies found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Version", "Type", "Issues (C/H/M/L)", "Projects", "Licenses")

	for _, dep := range deps {
		issues := fmt.Sprintf("%d/%d/%d/%d", dep.IssuesCritical, dep.IssuesHigh, dep.IssuesMedium, dep.IssuesLow)

		licenses := strings.Join(dep.Licenses, ", ")
		if licenses == "" {
			licenses = NotAvailable
		}

		_ = table.Append(dep.Name, dep.Version, dep.Type, issues,
			strconv.Itoa(dep.ProjectCount), licenses)
	}

	_ = table.Render()

	return nil
}
