package commands

import (
	"context"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vulnguard-io/vulnguard-client/pkg/vulnguard"
)

// NewLicensesCommand creates the licenses command group.
func NewLicensesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "licenses",
		Aliases: []string{"license"},
		Short:   "Inspect license usage",
		Long:    "List the licenses in use across an organization or a single project",
	}

	cmd.AddCommand(newLicensesListCommand())

	return cmd
}

func newLicensesListCommand() *cobra.Command {
	var (
		orgFlag     string
		projectFlag string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List licenses",
		Long:  "List licenses across an organization, optionally narrowed to one project",
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

			licenses, err := client.Licenses().List(ctx, org.ID, projectFlag)
			if err != nil {
				return err
			}

			return outputLicenses(licenses)
		},
	}

	cmd.Flags().StringVar(&orgFlag, "org", "", "organization id, slug, or name (required)")
	cmd.Flags().StringVar(&projectFlag, "project", "", "narrow to one project id")
	_ = cmd.MarkFlagRequired("org")

	return cmd
}

func outputLicenses(licenses []vulnguard.License) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(licenses)
	case OutputFormatYAML:
		return StandardYAMLRenderer(licenses)
	default:
		return renderLicenseTable(licenses)
	}
}

func renderLicenseTable(licenses []vulnguard.License) error {
	if len(licenses) == 0 {
		_, _ = os.Stdout.WriteString("No licenses found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("License", "Severity", "Dependencies", "Projects")

	for _, license := range licenses {
		severity := license.Severity
		if severity == "" {
			severity = NotAvailable
		}

		_ = table.Append(license.ID, severity,
			strconv.Itoa(len(license.Dependencies)), strconv.Itoa(len(license.Projects)))
	}

	_ = table.Render()

	return nil
}
