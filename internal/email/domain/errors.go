package domain

import "fmt"

// UpstreamError reports a failure of the mailbox or AI collaborator.
// Detail carries whatever the provider returned, unmodified.
type UpstreamError struct {
	Op     string
	Detail any
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op + ": upstream failure"
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ValidationError is a malformed request. It is never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// StateError means the request refers to session state that does not exist.
type StateError struct {
	Message string
}

func (e *StateError) Error() string { return e.Message }

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
