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

// NewProjectsCommand creates the projects command group.
func NewProjectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "Manage monitored projects",
		Long:    "List, inspect, tag, and delete the monitored projects of an organization",
	}

	cmd.AddCommand(newProjectsListCommand())
	cmd.AddCommand(newProjectsGetCommand())
	cmd.AddCommand(newProjectsDeleteCommand())
	cmd.AddCommand(newProjectsTagCommand())

	return cmd
}

func newProjectsListCommand() *cobra.Command {
	var (
		orgFlag string
		tags    []string
		origins []string
		types   []string
		allOrgs bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Long:  "List the monitored projects of an organization, or of every organization with --all-orgs",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			opts, err := buildProjectListOptions(tags, origins, types)
			if err != nil {
				return err
			}

			ctx := context.Background()

			var projects []vulnguard.Project

			switch {
			case allOrgs:
				projects, err = client.Projects().ListAll(ctx, opts)
			case orgFlag != "":
				var org *vulnguard.Organization

				org, err = findOrganization(ctx, client, orgFlag)
				if err != nil {
					return err
				}

				projects, err = client.Projects().List(ctx, org, opts)
			default:
				return ErrOrgFlagRequired
			}

			if err != nil {
				return err
			}

			return outputProjects(projects)
		},
	}

	cmd.Flags().StringVar(&orgFlag, "org", "", "organization id, slug, or name")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "tag filter (key=value, repeatable)")
	cmd.Flags().StringSliceVar(&origins, "origin", nil, "origin filter (github, cli, docker-hub, ...)")
	cmd.Flags().StringSliceVar(&types, "type", nil, "project type filter (npm, maven, dockerfile, ...)")
	cmd.Flags().BoolVar(&allOrgs, "all-orgs", false, "list projects across every organization")

	return cmd
}

// buildProjectListOptions converts CLI flags into listing options.
func buildProjectListOptions(rawTags, origins, types []string) (*vulnguard.ProjectListOptions, error) {
	if len(rawTags) == 0 && len(origins) == 0 && len(types) == 0 {
		return nil, nil
	}

	tags, err := parseTagFlags(rawTags)
	if err != nil {
		return nil, err
	}

	return &vulnguard.ProjectListOptions{
		Tags:    tags,
		Origins: origins,
		Types:   types,
	}, nil
}

func outputProjects(projects []vulnguard.Project) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(projects)
	case OutputFormatYAML:
		return StandardYAMLRenderer(projects)
	default:
		return renderProjectTable(projects)
	}
}

func renderProjectTable(projects []vulnguard.Project) error {
	if len(projects) == 0 {
		_, _ = os.Stdout.WriteString("No projects found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "ID", "Org", "Type", "Issues (C/H/M/L)", "Deps")

	for _, project := range projects {
		orgName := NotAvailable
		if project.Organization != nil {
			orgName = project.Organization.Name
		}

		counts := project.IssueCountsBySeverity
		issues := fmt.Sprintf("%d/%d/%d/%d", counts.Critical, counts.High, counts.Medium, counts.Low)

		_ = table.Append(project.Name, project.ID, orgName, project.Type, issues,
			strconv.Itoa(project.TotalDependencies))
	}

	_ = table.Render()

	return nil
}

func newProjectsGetCommand() *cobra.Command {
	var orgFlag string

	cmd := &cobra.Command{
		Use:   "get PROJECT_ID",
		Short: "Get project details",
		Long:  "Get details for a specific project",
		Args:  cobra.ExactArgs(1),
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

			project, err := client.Projects().Get(ctx, org, args[0])
			if err != nil {
				return err
			}

			return outputProjectDetails(project)
		},
	}

	cmd.Flags().StringVar(&orgFlag, "org", "", "organization id, slug, or name (required)")
	_ = cmd.MarkFlagRequired("org")

	return cmd
}

func outputProjectDetails(project *vulnguard.Project) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(project)
	case OutputFormatYAML:
		return StandardYAMLRenderer(project)
	default:
		return renderProjectDetailsTable(project)
	}
}

func renderProjectDetailsTable(project *vulnguard.Project) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("Name", project.Name)
	_ = table.Append("ID", project.ID)
	_ = table.Append("Type", project.Type)
	_ = table.Append("Origin", project.Origin)
	_ = table.Append("Status", project.Status)
	_ = table.Append("Created", project.Created.Format("2006-01-02"))
	_ = table.Append("Dependencies", strconv.Itoa(project.TotalDependencies))

	counts := project.IssueCountsBySeverity
	_ = table.Append("Issues (C/H/M/L)",
		fmt.Sprintf("%d/%d/%d/%d", counts.Critical, counts.High, counts.Medium, counts.Low))

	if len(project.Tags) > 0 {
		pairs := make([]string, 0, len(project.Tags))
		for _, tag := range project.Tags {
			pairs = append(pairs, tag.Key+"="+tag.Value)
		}

		_ = table.Append("Tags", strings.Join(pairs, ", "))
	}

	_ = table.Render()

	return nil
}

func newProjectsDeleteCommand() *cobra.Command {
	var (
		orgFlag string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "delete PROJECT_ID",
		Short: "Delete a project",
		Long:  "Stop monitoring a project and delete it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID := args[0]

			if orgFlag == "" {
				return ErrOrgFlagRequired
			}

			if !force {
				_, _ = fmt.Fprintf(os.Stdout, "Really delete project '%s'? (y/N): ", projectID)

				var response string

				_, _ = fmt.Scanln(&response)
				if response != "y" && response != "Y" {
					_, _ = os.Stdout.WriteString("Cancelled\n")

					return nil
				}
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

			err = client.Projects().Delete(ctx, org.ID, projectID)
			if err != nil {
				return fmt.Errorf("failed to delete project: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Successfully deleted project '%s'\n", projectID)

			return nil
		},
	}

	cmd.Flags().StringVar(&orgFlag, "org", "", "organization id, slug, or name (required)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")
	_ = cmd.MarkFlagRequired("org")

	return cmd
}

func newProjectsTagCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage project tags",
		Long:  "Add and remove exact key/value tags on a project",
	}

	cmd.AddCommand(newProjectsTagMutationCommand("add", "Add a tag to a project"))
	cmd.AddCommand(newProjectsTagMutationCommand("remove", "Remove a tag from a project"))

	return cmd
}

func newProjectsTagMutationCommand(verb, short string) *cobra.Command {
	var orgFlag string

	cmd := &cobra.Command{
		Use:   verb + " PROJECT_ID KEY=VALUE",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID := args[0]

			tags, err := parseTagFlags(args[1:])
			if err != nil {
				return err
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

			tag := tags[0]
			past := "removed"

			if verb == "add" {
				past = "added"
				_, err = client.Tags().Add(ctx, org.ID, projectID, tag.Key, tag.Value)
			} else {
				_, err = client.Tags().Delete(ctx, org.ID, projectID, tag.Key, tag.Value)
			}

			if err != nil {
				return fmt.Errorf("failed to %s tag: %w", verb, err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Tag %s=%s %s on project '%s'\n", tag.Key, tag.Value, past, projectID)

			return nil
		},
	}

	cmd.Flags().StringVar(&orgFlag, "org", "", "organization id, slug, or name (required)")
	_ = cmd.MarkFlagRequired("org")

	return cmd
}
