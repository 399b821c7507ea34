package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check for these with errors.Is(); the API layer maps them to HTTP
// status codes.
var (
	// ErrNotOwned indicates a resource is owned by a different user than the
	// one making the request. API layer should map this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrMemoryNotFound indicates that the memory does not exist.
	ErrMemoryNotFound = errors.New("memory not found")

	// ErrEntryNotFound indicates that the gratitude entry does not exist.
	ErrEntryNotFound = errors.New("gratitude entry not found")

	// ErrNoEntries indicates the user has no gratitude entries yet, so
	// nothing can be surfaced. API layer should map this to HTTP 404 with a
	// hint to upload a memory first.
	ErrNoEntries = errors.New("no gratitude entries available")

	// ErrNoSurfaceToday indicates no surface exists yet for the requested
	// date (e.g. marking viewed before the daily pick ran).
	ErrNoSurfaceToday = errors.New("no gratitude surfaced for this date")

	// ErrVoiceNotFound indicates that no sender voice mapping exists.
	ErrVoiceNotFound = errors.New("sender voice not found")

	// ErrSpeechUnavailable indicates speech synthesis is not configured.
	// API layer should map this to HTTP 503 Service Unavailable.
	ErrSpeechUnavailable = errors.New("speech synthesis is not configured")
)

// sentinels lists the errors that pass through ServiceError wrapping
// untouched so callers can match them with errors.Is.
var sentinels = []error{
	ErrNotOwned,
	ErrMemoryNotFound,
	ErrEntryNotFound,
	ErrNoEntries,
	ErrNoSurfaceToday,
	ErrVoiceNotFound,
	ErrSpeechUnavailable,
}

// ServiceError wraps unexpected errors from a service operation with
// context about what failed.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "create_memory").
	Operation string
	// Message is a human-readable description of the error.
	Message string
	// Err is the underlying error that caused the failure.
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// WrapError wraps an unexpected error in a ServiceError. Known sentinel
// errors are returned directly so callers can match them.
func WrapError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	for _, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}

	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
