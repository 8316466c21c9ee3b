// Package errors defines the error types returned by goseed.
//
// Local problems (bad arguments, unreadable mapping files, incomplete
// configuration) are reported before any request is sent and match
// ErrInvalidInput. Problems reported by the service arrive as *APIError and
// match a sentinel chosen from the HTTP status. Use the Is helpers rather
// than comparing types:
//
//	if errors.IsNotFound(err) {
//		// the cycle was already gone
//	}
package errors

import (
	"context"
	"errors"
)

// Standard library helpers, re-exported so callers need one import.
var (
	New = errors.New
	Is  = errors.Is
	As  = errors.As
)

// Sentinels matched by errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrRateLimited        = errors.New("rate limited")
)

// IsNotFound reports whether err means the record does not exist.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsValidationError reports whether err was raised locally before any
// request was sent.
func IsValidationError(err error) bool { return errors.Is(err, ErrInvalidInput) }

// IsUnauthorized reports whether credentials were missing or rejected.
func IsUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }

// IsRateLimited reports whether the service throttled the request.
func IsRateLimited(err error) bool { return errors.Is(err, ErrRateLimited) }

// IsServiceUnavailable reports whether the service failed with a 5xx status
// or could not be reached.
func IsServiceUnavailable(err error) bool { return errors.Is(err, ErrServiceUnavailable) }

// IsCanceled reports whether err stems from a canceled or expired context.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsAPIError reports whether err came from a service response.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// Exit codes returned by ExitCode.
const (
	ExitFailure      = 1
	ExitInvalid      = 2
	ExitUnauthorized = 3
	ExitNotFound     = 4
	ExitUnavailable  = 5
)

// ExitCode maps err to a process exit status. A nil error maps to 0.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case IsValidationError(err):
		return ExitInvalid
	case IsUnauthorized(err):
		return ExitUnauthorized
	case IsNotFound(err):
		return ExitNotFound
	case IsServiceUnavailable(err), IsRateLimited(err):
		return ExitUnavailable
	}
	return ExitFailure
}

// WrapIO wraps err as an *IOError. It returns nil when err is nil.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapResource wraps err as a *ResourceError. It returns nil when err is nil.
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

// WrapParse wraps err as a *ParseError. It returns nil when err is nil.
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
