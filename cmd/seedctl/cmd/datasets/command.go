// Package datasets provides the datasets resource command.
package datasets

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/goseed/internal/cmd/application"
	"github.com/agentstation/goseed/internal/cmd/output"
	"github.com/agentstation/goseed/pkg/resources"
)

// NewCommand creates the datasets resource command.
func NewCommand(app application.Application) *cobra.Command {
	listCmd := func(cmd *cobra.Command, _ []string) error {
		client, err := app.Client()
		if err != nil {
			return err
		}
		datasets, err := client.GetDatasets(cmd.Context())
		if err != nil {
			return err
		}
		return output.Render(cmd.OutOrStdout(), app.OutputFormat(), output.Datasets(datasets), datasets)
	}

	cmd := &cobra.Command{
		Use:     "datasets",
		GroupID: "resources",
		Short:   "Manage import datasets",
		Args:    cobra.NoArgs,
		RunE:    listCmd,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List datasets",
			Args:  cobra.NoArgs,
			RunE:  listCmd,
		},
		&cobra.Command{
			Use:   "ensure NAME",
			Short: "Get the dataset with a name, creating it when missing",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := app.Client()
				if err != nil {
					return err
				}
				d, err := client.GetOrCreateDataset(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return output.Render(cmd.OutOrStdout(), app.OutputFormat(), output.Datasets([]resources.Dataset{*d}), d)
			},
		},
	)
	return cmd
}
