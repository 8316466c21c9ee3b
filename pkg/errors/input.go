package errors

import (
	"fmt"
	"strings"
)

// ValidationError is an argument rejected before any request is sent.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError creates a ValidationError for field.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ParseError is a mapping or config file that could not be decoded.
// Line is 1-based and zero when unknown.
type ParseError struct {
	Format  string
	File    string
	Line    int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("cannot parse ")
	b.WriteString(e.Format)
	if e.File != "" {
		b.WriteString(" file ")
		b.WriteString(e.File)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " (line %d)", e.Line)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is makes a malformed file count as invalid input.
func (e *ParseError) Is(target error) bool { return target == ErrInvalidInput }

// NewParseError creates a ParseError without line information.
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// IOError is a local read or write failure.
type IOError struct {
	Operation string
	Path      string
	Err       error
}

func (e *IOError) Error() string {
	target := e.Path
	if target == "" {
		target = "stream"
	}
	return fmt.Sprintf("cannot %s %s: %v", e.Operation, target, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// NewIOError creates an IOError.
func NewIOError(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Err: err}
}

// ConfigError is a connection or CLI setting that is missing or malformed.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

func (e *ConfigError) Error() string {
	if e.Component == "" {
		return "bad configuration: " + e.Message
	}
	return fmt.Sprintf("bad %s configuration: %s", e.Component, e.Message)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError creates a ConfigError.
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}
