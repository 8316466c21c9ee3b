// Package labels provides the labels resource command.
package labels

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/goseed/internal/cmd/application"
	"github.com/agentstation/goseed/internal/cmd/output"
)

// NewCommand creates the labels resource command.
func NewCommand(app application.Application) *cobra.Command {
	var names []string
	listCmd := func(cmd *cobra.Command, _ []string) error {
		client, err := app.Client()
		if err != nil {
			return err
		}
		labels, err := client.GetLabels(cmd.Context(), names...)
		if err != nil {
			return err
		}
		return output.Render(cmd.OutOrStdout(), app.OutputFormat(), output.Labels(labels), labels)
	}

	cmd := &cobra.Command{
		Use:     "labels",
		GroupID: "resources",
		Short:   "List labels",
		Example: `  seedctl labels
  seedctl labels --name Compliant --name Violation`,
		Args: cobra.NoArgs,
		RunE: listCmd,
	}
	list := &cobra.Command{
		Use:   "list",
		Short: "List labels",
		Args:  cobra.NoArgs,
		RunE:  listCmd,
	}
	for _, c := range []*cobra.Command{cmd, list} {
		c.Flags().StringArrayVar(&names, "name", nil, "only labels with this name (repeatable)")
	}
	cmd.AddCommand(list)
	return cmd
}
