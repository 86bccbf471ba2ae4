package commands

import (
	"context"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vulnguard-io/vulnguard-client/pkg/vulnguard"
)

// NewOrgsCommand creates the organizations command group.
func NewOrgsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orgs",
		Aliases: []string{"organizations", "org"},
		Short:   "Manage organizations",
		Long:    "List and inspect the organizations visible to the API token",
	}

	cmd.AddCommand(newOrgsListCommand())
	cmd.AddCommand(newOrgsGetCommand())

	return cmd
}

func newOrgsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List organizations",
		Long:  "List all organizations visible to the API token",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			orgs, err := client.Organizations().List(context.Background(), nil)
			if err != nil {
				return err
			}

			return outputOrganizations(orgs)
		},
	}
}

func outputOrganizations(orgs []vulnguard.Organization) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(orgs)
	case OutputFormatYAML:
		return StandardYAMLRenderer(orgs)
	default:
		return renderOrganizationTable(orgs)
	}
}

func renderOrganizationTable(orgs []vulnguard.Organization) error {
	if len(orgs) == 0 {
		_, _ = os.Stdout.WriteString("No organizations found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "ID", "Slug", "Group")

	for _, org := range orgs {
		group := org.Group
		if group == "" {
			group = NotAvailable
		}

		_ = table.Append(org.Name, org.ID, org.Slug, group)
	}

	_ = table.Render()

	return nil
}

func newOrgsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ORG_ID_OR_NAME",
		Short: "Get organization details",
		Long:  "Get details for a specific organization by id, slug, or name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			org, err := findOrganization(context.Background(), client, args[0])
			if err != nil {
				return err
			}

			return outputOrganizationDetails(org)
		},
	}
}

func outputOrganizationDetails(org *vulnguard.Organization) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(org)
	case OutputFormatYAML:
		return StandardYAMLRenderer(org)
	default:
		return renderOrganizationDetailsTable(org)
	}
}

func renderOrganizationDetailsTable(org *vulnguard.Organization) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("Name", org.Name)
	_ = table.Append("ID", org.ID)
	_ = table.Append("Slug", org.Slug)

	if org.Group != "" {
		_ = table.Append("Group", org.Group)
	}

	_ = table.Render()

	return nil
}
