// Package application defines what seedctl commands need from the
// application, so commands can be tested against a Mock.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            client, err := app.Client()
//	            if err != nil {
//	                return err
//	            }
//	            labels, err := client.GetLabels(cmd.Context())
//	            // ... render labels
//	        },
//	    }
//	}
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/goseed"
)

// Application is the contract between the seedctl app and its commands.
type Application interface {
	// Client returns the service client, creating it on first use.
	Client() (goseed.Client, error)

	// Logger returns the configured logger.
	Logger() *zerolog.Logger

	// OutputFormat returns the requested output format.
	OutputFormat() string

	Version() string
	Commit() string
	Date() string
	BuiltBy() string
}
