package application

import (
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/agentstation/goseed"
	"github.com/agentstation/goseed/pkg/errors"
)

// Mock is an Application with fixed values for command tests. The zero
// value renders JSON, discards logs and has no client.
//
//	mock := &application.Mock{SeedClient: client}
//	cmd := labels.NewCommand(mock)
type Mock struct {
	// SeedClient is returned by Client unless ClientErr is set.
	SeedClient goseed.Client
	ClientErr  error

	// Format defaults to "json".
	Format string
	Log    *zerolog.Logger

	clientCalls atomic.Int32
}

// Client returns SeedClient, or ClientErr when it is set.
func (m *Mock) Client() (goseed.Client, error) {
	m.clientCalls.Add(1)
	switch {
	case m.ClientErr != nil:
		return nil, m.ClientErr
	case m.SeedClient == nil:
		return nil, errors.NewConfigError("client", "mock has no client", nil)
	}
	return m.SeedClient, nil
}

// ClientCalls reports how many times a command asked for the client.
func (m *Mock) ClientCalls() int { return int(m.clientCalls.Load()) }

func (m *Mock) Logger() *zerolog.Logger {
	if m.Log == nil {
		nop := zerolog.Nop()
		m.Log = &nop
	}
	return m.Log
}

func (m *Mock) OutputFormat() string {
	if m.Format == "" {
		return "json"
	}
	return m.Format
}

func (m *Mock) Version() string { return "test" }
func (m *Mock) Commit() string  { return "none" }
func (m *Mock) Date() string    { return "unknown" }
func (m *Mock) BuiltBy() string { return "test" }

var _ Application = (*Mock)(nil)
