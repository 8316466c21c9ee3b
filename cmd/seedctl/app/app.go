// Package app provides the application context and dependency management
// for the seedctl CLI: configuration, logging and the lazily created
// service client.
package app

import (
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/goseed"
	"github.com/agentstation/goseed/internal/cmd/application"
	"github.com/agentstation/goseed/pkg/errors"
	"github.com/agentstation/goseed/pkg/logging"
)

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)

// App represents the seedctl application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
	out    io.Writer

	// client is created on first use, so commands like version work
	// without a connection.
	mu     sync.Mutex
	client goseed.Client
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// Version returns the version information.
func (a *App) Version() string { return a.version }

// Commit returns the git commit hash.
func (a *App) Commit() string { return a.commit }

// Date returns the build date.
func (a *App) Date() string { return a.date }

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string { return a.builtBy }

// Config returns the application configuration.
func (a *App) Config() *Config { return a.config }

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger { return a.logger }

// OutputFormat returns the requested output format.
func (a *App) OutputFormat() string { return a.config.Format }

// Client returns the service client, creating it on first use from the
// connection file and organization id in the configuration.
func (a *App) Client() (goseed.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.client != nil {
		return a.client, nil
	}

	conn, err := a.config.LoadConnection()
	if err != nil {
		return nil, err
	}
	a.logger.Debug().
		Str("url", conn.URL()).
		Str("username", conn.Username).
		Str("api_key", logging.Redact(conn.APIKey)).
		Msg("Connecting")

	client, err := goseed.New(a.config.OrganizationID,
		goseed.WithConnection(*conn),
		goseed.WithLogger(a.logger),
	)
	if err != nil {
		return nil, errors.WrapResource("create", "client", "", err)
	}
	a.client = client
	return client, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		if logger == nil {
			return errors.NewValidationError("logger", nil, "must not be nil")
		}
		a.logger = logger
		return nil
	}
}

// WithOutput sends command output to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(a *App) error {
		a.out = w
		return nil
	}
}

// WithClient sets a ready-made client (useful for testing).
func WithClient(client goseed.Client) Option {
	return func(a *App) error {
		a.client = client
		return nil
	}
}
