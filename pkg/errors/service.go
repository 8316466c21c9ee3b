package errors

import (
	"fmt"
	"net/http"
)

// APIError is a failed exchange with the service: either a non-2xx
// response (StatusCode set) or a request that never got one (Err set).
type APIError struct {
	Service    string
	StatusCode int
	Endpoint   string
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	where := e.Service
	if e.Endpoint != "" {
		where += " " + e.Endpoint
	}
	if e.StatusCode == 0 {
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", where, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %s", where, e.Message)
	}
	return fmt.Sprintf("%s returned %d %s: %s", where, e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// Is maps the response status onto the package sentinels. A request that
// never reached the service counts as unavailable.
func (e *APIError) Is(target error) bool {
	switch {
	case e.StatusCode == 0:
		return e.Err != nil && target == ErrServiceUnavailable
	case e.StatusCode == http.StatusNotFound:
		return target == ErrNotFound
	case e.StatusCode == http.StatusUnauthorized, e.StatusCode == http.StatusForbidden:
		return target == ErrUnauthorized
	case e.StatusCode == http.StatusTooManyRequests:
		return target == ErrRateLimited
	case e.StatusCode >= http.StatusInternalServerError:
		return target == ErrServiceUnavailable
	}
	return false
}

// Temporary reports whether repeating the request later may succeed.
func (e *APIError) Temporary() bool {
	return e.Is(ErrServiceUnavailable) || e.Is(ErrRateLimited)
}

// NewAPIError creates an APIError for a response with statusCode.
func NewAPIError(service string, statusCode int, message string) *APIError {
	return &APIError{Service: service, StatusCode: statusCode, Message: message}
}

// AuthenticationError means credentials could not be applied to a request.
type AuthenticationError struct {
	Method  string
	Message string
	Err     error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("%s auth: %s", e.Method, e.Message)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

func (e *AuthenticationError) Is(target error) bool { return target == ErrUnauthorized }

// NewAuthenticationError creates an AuthenticationError.
func NewAuthenticationError(method, message string, err error) *AuthenticationError {
	return &AuthenticationError{Method: method, Message: message, Err: err}
}
