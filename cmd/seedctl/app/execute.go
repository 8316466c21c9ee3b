package app

import (
	"context"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/goseed/cmd/seedctl/cmd/cycles"
	"github.com/agentstation/goseed/cmd/seedctl/cmd/datasets"
	"github.com/agentstation/goseed/cmd/seedctl/cmd/labels"
	"github.com/agentstation/goseed/cmd/seedctl/cmd/profiles"
	"github.com/agentstation/goseed/internal/cmd/output"
	"github.com/agentstation/goseed/pkg/errors"
)

// Execute runs the seedctl CLI application with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "seedctl",
		Short:   "Reconcile cycles, datasets and mapping profiles on a SEED service",
		Version: a.version,
		Long: `seedctl talks to a SEED building-energy data service.

Connection settings come from a seed-config.json file (--connection) or
SEED_BASE_URL, SEED_USERNAME and SEED_API_KEY. Every command works on one
organization (--org).`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	if a.out != nil {
		rootCmd.SetOut(a.out)
	}
	rootCmd.AddGroup(&cobra.Group{ID: "resources", Title: "Resource Commands:"})

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.seedctl.yaml)")
	flags.StringVar(&a.config.Connection, "connection", a.config.Connection, "service connection file (seed-config.json)")
	flags.IntVar(&a.config.OrganizationID, "org", a.config.OrganizationID, "organization id")
	flags.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringP("format", "o", "", "output format: table, json, yaml")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("seedctl {{.Version}}\n")

	rootCmd.AddCommand(
		cycles.NewCommand(a),
		datasets.NewCommand(a),
		profiles.NewCommand(a),
		labels.NewCommand(a),
		a.newVersionCommand(),
	)
	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	// a named config file replaces the defaults; flags set on the command
	// line still win
	if a.config.ConfigFile != "" && cmd.Flags().Changed("config") {
		loaded, err := LoadConfig(a.config.ConfigFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("connection") {
			loaded.Connection = a.config.Connection
		}
		if cmd.Flags().Changed("org") {
			loaded.OrganizationID = a.config.OrganizationID
		}
		a.config = loaded
	}

	a.config.UpdateFromFlags(
		mustGetBool(cmd, "verbose"),
		mustGetBool(cmd, "quiet"),
		mustGetBool(cmd, "no-color"),
		mustGetString(cmd, "format"),
		mustGetString(cmd, "log-level"),
	)
	if _, err := output.ParseFormat(a.config.Format); err != nil {
		return err
	}

	logger := NewLogger(a.config)
	a.logger = &logger
	return nil
}

func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			_, _ = w.Write([]byte("seedctl " + a.version + "\n"))
			if a.config.Verbose {
				_, _ = w.Write([]byte("  commit:   " + a.commit + "\n"))
				_, _ = w.Write([]byte("  built:    " + a.date + "\n"))
				_, _ = w.Write([]byte("  built by: " + a.builtBy + "\n"))
				_, _ = w.Write([]byte("  go:       " + runtime.Version() + "\n"))
			}
		},
	}
}

// ExitOnError prints err and exits with the status errors.ExitCode picks.
func ExitOnError(err error) {
	if err == nil {
		return
	}
	_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
	var apiErr *errors.APIError
	if errors.As(err, &apiErr) && apiErr.Temporary() {
		_, _ = os.Stderr.WriteString("The service may be busy; try again later.\n")
	}
	os.Exit(errors.ExitCode(err))
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
