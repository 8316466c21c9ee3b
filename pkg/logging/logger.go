// Package logging provides structured logging for goseed using zerolog.
// Terminals get human-readable console output; pipes and files get JSON.
//
// Reconcilers log their decisions at debug level and ambiguous name
// lookups at warn level. A logger scoped with fields travels in the
// context so the transport's request logs carry the same operation:
//
//	ctx, log := logging.Scope(ctx, base, logging.Operation("get_or_create_cycle"))
//	log.Debug().Msg("Listing cycles")
//	gateway.List(ctx, ...) // request logs include "operation"
package logging

import (
	"os"
	"sync/atomic"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// defaultLogger is the process-wide fallback logger.
var defaultLogger atomic.Pointer[zerolog.Logger]

func init() {
	logger := NewLoggerFromConfig(ConfigFromEnv())
	defaultLogger.Store(&logger)
}

// Default returns the process-wide logger used when no logger is given.
func Default() *zerolog.Logger {
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger.Store(&logger)
}

// Redact hides all but the last four characters of a credential.
func Redact(secret string) string {
	const shown = 4
	if len(secret) <= shown {
		return "****"
	}
	return "****" + secret[len(secret)-shown:]
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
