package goseed

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/goseed/internal/config"
	"github.com/agentstation/goseed/internal/transport"
	"github.com/agentstation/goseed/pkg/errors"
	"github.com/agentstation/goseed/pkg/logging"
)

// Option is a function that configures a Client.
type Option func(*options) error

// options holds the client configuration.
type options struct {
	gateway             Gateway
	connection          *config.Connection
	logger              *zerolog.Logger
	timeout             time.Duration
	ambiguousMatchHooks []AmbiguousMatchHook
}

// defaults returns the default options.
func defaults() *options {
	return &options{
		logger: logging.Default(),
	}
}

// apply applies the given options. A connection is turned into an HTTP
// gateway only when no gateway was given explicitly.
func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	if o.gateway == nil && o.connection != nil {
		gw, err := newHTTPGateway(*o.connection, o.timeout, o.logger)
		if err != nil {
			return nil, err
		}
		o.gateway = gw
	}
	return o, nil
}

// WithGateway sets the gateway used for remote calls.
func WithGateway(gw Gateway) Option {
	return func(o *options) error {
		if gw == nil {
			return errors.NewValidationError("gateway", nil, "cannot be nil")
		}
		o.gateway = gw
		return nil
	}
}

// Connection holds the service address and credentials.
type Connection = config.Connection

// LoadConnection reads connection settings from a JSON or YAML file and
// SEED_* environment variables. An empty path reads the environment only.
func LoadConnection(path string) (*Connection, error) {
	return config.Load(path)
}

// WithConnection builds an HTTP gateway from connection settings, using
// basic authentication with the username and API key.
func WithConnection(conn Connection) Option {
	return func(o *options) error {
		if err := conn.Validate(); err != nil {
			return err
		}
		o.connection = &conn
		return nil
	}
}

// WithTimeout overrides the per-request timeout of a connection.
func WithTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d < 0 {
			return errors.NewValidationError("timeout", d, "cannot be negative")
		}
		o.timeout = d
		return nil
	}
}

// WithLogger sets the logger for reconciliation decisions.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger != nil {
			o.logger = logger
		}
		return nil
	}
}

// WithAmbiguousMatchHook registers fn to be called whenever a lookup by
// name finds more than one record.
func WithAmbiguousMatchHook(fn AmbiguousMatchHook) Option {
	return func(o *options) error {
		if fn != nil {
			o.ambiguousMatchHooks = append(o.ambiguousMatchHooks, fn)
		}
		return nil
	}
}

func newHTTPGateway(conn config.Connection, timeout time.Duration, logger *zerolog.Logger) (*transport.Client, error) {
	if timeout == 0 {
		timeout = conn.Timeout
	}
	return transport.New(conn.URL(),
		&transport.BasicAuth{Username: conn.Username, APIKey: conn.APIKey},
		transport.WithTimeout(timeout),
		transport.WithLogger(logger),
	)
}
