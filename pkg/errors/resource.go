package errors

import "fmt"

// NotFoundError is a lookup by name or id that matched nothing.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s %s", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ResourceError attaches the failed operation and record to err.
type ResourceError struct {
	Operation string
	Resource  string
	ID        string
	Err       error
}

func (e *ResourceError) Error() string {
	target := e.Resource
	if e.ID != "" {
		target += " " + e.ID
	}
	return fmt.Sprintf("%s %s: %v", e.Operation, target, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// NewResourceError creates a ResourceError.
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	return &ResourceError{Operation: operation, Resource: resource, ID: id, Err: err}
}
