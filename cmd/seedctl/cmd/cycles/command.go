// Package cycles provides the cycles resource command and subcommands.
package cycles

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/goseed"
	"github.com/agentstation/goseed/internal/cmd/application"
	"github.com/agentstation/goseed/internal/cmd/output"
	"github.com/agentstation/goseed/pkg/errors"
	"github.com/agentstation/goseed/pkg/resources"
)

// NewCommand creates the cycles resource command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cycles",
		GroupID: "resources",
		Short:   "Manage reporting cycles",
		Example: `  seedctl cycles                                   # List cycles
  seedctl cycles get "2023 Benchmarking"           # Show one cycle
  seedctl cycles ensure "2023 Benchmarking" --start 2023-01-01 --end 2023-12-31
  seedctl cycles delete 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return list(cmd, app)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List cycles",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return list(cmd, app)
			},
		},
		&cobra.Command{
			Use:   "get NAME",
			Short: "Show the cycle with a name",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := app.Client()
				if err != nil {
					return err
				}
				resp, err := client.GetCycleByName(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return render(cmd, app, resp.Cycles)
			},
		},
		newCreateCommand(app),
		newEnsureCommand(app),
		newDeleteCommand(app),
	)
	return cmd
}

func newCreateCommand(app application.Application) *cobra.Command {
	var start, end string
	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a cycle, even if one with the name exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, e, err := parseDates(start, end)
			if err != nil {
				return err
			}
			if s == nil || e == nil {
				return errors.NewValidationError("start", nil, "--start and --end are required")
			}
			client, err := app.Client()
			if err != nil {
				return err
			}
			resp, err := client.CreateCycle(cmd.Context(), args[0], *s, *e)
			if err != nil {
				return err
			}
			return render(cmd, app, resp.Cycles)
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "first day of the cycle (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "last day of the cycle (YYYY-MM-DD)")
	return cmd
}

func newEnsureCommand(app application.Application) *cobra.Command {
	var (
		start, end string
		setActive  bool
	)
	cmd := &cobra.Command{
		Use:   "ensure NAME",
		Short: "Get the cycle with a name, creating it when missing",
		Long: `Ensure looks the cycle up by name and creates it from --start and --end
when there is none. The dates are ignored when the cycle exists. When
several cycles share the name the first one listed is used and a warning
is logged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, e, err := parseDates(start, end)
			if err != nil {
				return err
			}
			client, err := app.Client()
			if err != nil {
				return err
			}
			var opts []goseed.CycleOption
			if setActive {
				opts = append(opts, goseed.SetActive())
			}
			resp, err := client.GetOrCreateCycle(cmd.Context(), args[0], s, e, opts...)
			if err != nil {
				return err
			}
			if id, ok := client.CycleID(); ok {
				app.Logger().Info().Int("cycle_id", id).Msg("Active cycle")
			}
			return render(cmd, app, resp.Cycles)
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "first day of the cycle when it is created (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "last day of the cycle when it is created (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&setActive, "set-active", false, "make the cycle the client's active cycle")
	return cmd
}

func newDeleteCommand(app application.Application) *cobra.Command {
	var ignoreMissing bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a cycle",
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
			err = client.DeleteCycle(cmd.Context(), id)
			if err != nil && !(ignoreMissing && errors.IsNotFound(err)) {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cycle %d deleted\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVar(&ignoreMissing, "ignore-missing", false, "succeed when the cycle does not exist")
	return cmd
}

func list(cmd *cobra.Command, app application.Application) error {
	client, err := app.Client()
	if err != nil {
		return err
	}
	resp, err := client.GetCycles(cmd.Context())
	if err != nil {
		return err
	}
	return output.Render(cmd.OutOrStdout(), app.OutputFormat(), output.Cycles(resp.Cycles), resp.Cycles)
}

func render(cmd *cobra.Command, app application.Application, c resources.Cycle) error {
	return output.Render(cmd.OutOrStdout(), app.OutputFormat(), output.Cycles([]resources.Cycle{c}), c)
}

// parseDates parses the optional date flags; an empty flag stays nil.
func parseDates(start, end string) (*resources.Date, *resources.Date, error) {
	var s, e *resources.Date
	if start != "" {
		d, err := resources.ParseDate(start)
		if err != nil {
			return nil, nil, errors.NewValidationError("start", start, err.Error())
		}
		s = &d
	}
	if end != "" {
		d, err := resources.ParseDate(end)
		if err != nil {
			return nil, nil, errors.NewValidationError("end", end, err.Error())
		}
		e = &d
	}
	return s, e, nil
}
