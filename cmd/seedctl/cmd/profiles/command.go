// Package profiles provides the column mapping profiles command.
package profiles

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/goseed/internal/cmd/application"
	"github.com/agentstation/goseed/internal/cmd/output"
	"github.com/agentstation/goseed/pkg/errors"
)

// NewCommand creates the profiles resource command.
func NewCommand(app application.Application) *cobra.Command {
	var name string
	listCmd := func(cmd *cobra.Command, _ []string) error {
		client, err := app.Client()
		if err != nil {
			return err
		}
		profiles, err := client.GetColumnMappingProfiles(cmd.Context(), name)
		if err != nil {
			return err
		}
		return output.Render(cmd.OutOrStdout(), app.OutputFormat(), output.Profiles(profiles), profiles)
	}

	cmd := &cobra.Command{
		Use:     "profiles",
		Aliases: []string{"column-mapping-profiles"},
		GroupID: "resources",
		Short:   "Manage column mapping profiles",
		Example: `  seedctl profiles
  seedctl profiles get "Portfolio Manager Defaults"
  seedctl profiles apply "City Import" --file mappings.csv`,
		Args: cobra.NoArgs,
		RunE: listCmd,
	}
	list := &cobra.Command{
		Use:   "list",
		Short: "List profiles",
		Args:  cobra.NoArgs,
		RunE:  listCmd,
	}
	for _, c := range []*cobra.Command{cmd, list} {
		c.Flags().StringVar(&name, "name", "", "only profiles with this name")
	}

	cmd.AddCommand(list, newGetCommand(app), newApplyCommand(app), newDeleteCommand(app))
	return cmd
}

func newGetCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Show the mappings of a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}
			p, err := client.GetColumnMappingProfile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if p == nil {
				return errors.NewNotFoundError("column mapping profile", strconv.Quote(args[0]))
			}
			return output.Render(cmd.OutOrStdout(), app.OutputFormat(), output.Mappings(p.Mappings), p)
		},
	}
}

func newApplyCommand(app application.Application) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "apply NAME --file PATH",
		Short: "Create a profile or replace its mappings from a CSV or YAML file",
		Long: `Apply makes the named profile hold exactly the mappings in the file.
An existing profile keeps its id; its mapping list is replaced as a whole.

CSV files need the columns "Raw Columns", "units", "SEED Table" and
"SEED Columns". YAML files hold a list of from_field, from_units,
to_table_name and to_field entries.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}
			p, err := client.CreateOrUpdateColumnMappingProfileFromFile(cmd.Context(), args[0], file)
			if err != nil {
				return err
			}
			return output.Render(cmd.OutOrStdout(), app.OutputFormat(), output.Mappings(p.Mappings), p)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "mapping file (.csv, .yaml or .yml)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newDeleteCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.NewValidationError("id", args[0], "must be an integer")
			}
			client, err := app.Client()
			if err != nil {
				return err
			}
			if err := client.DeleteColumnMappingProfile(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "profile %d deleted\n", id)
			return nil
		},
	}
}
