package types

import (
	"fmt"
)

// Error taxonomy for the Million client library.
//
// Every failure surfaces as exactly one of four kinds, matched with
// errors.As(). The library performs no internal retries and no silent
// recovery; each kind carries enough context for the caller to pick a
// fallback:
//
//   - ValidationError: malformed caller input; fix the call, never retry as-is
//   - NetworkError: transport failure, timeout, or unparsable body; retryable
//   - ServiceError: non-2xx status or malformed success envelope; inspect code
//   - AssignmentNotFoundError: tracking without a prior matching fetch
//
// A ValidationError or AssignmentNotFoundError is always raised before any
// network activity.

// ValidationError reports malformed or out-of-range caller input.
type ValidationError struct {
	// Field is the name of the offending input.
	Field string

	// Message explains the constraint that was violated.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NetworkError reports a transport-level failure: connection refused, DNS
// failure, reset, timeout, or a response body that does not parse as the
// expected envelope.
type NetworkError struct {
	// Message describes the failure.
	Message string

	// Cause is the underlying transport error, if any.
	Cause error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("network error: %s: %v", e.Message, e.Cause)
	}

	return fmt.Sprintf("network error: %s", e.Message)
}

// Unwrap exposes the underlying cause to errors.Is/errors.As.
func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// ServiceError reports a non-2xx response, or a 2xx response whose envelope
// violates the success/data contract.
type ServiceError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Message is the server-provided error string, or a generic description
	// when the payload lacks one.
	Message string
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("service error (status %d): %s", e.StatusCode, e.Message)
}

// AssignmentNotFoundError reports that an outcome was tracked for an identity
// with no cached assignment and no explicit assignment ID. It is raised
// purely from local cache state, before any network activity.
type AssignmentNotFoundError struct {
	ExperimentID string
	UserID       string
	SessionID    string
}

// Error implements the error interface.
func (e *AssignmentNotFoundError) Error() string {
	return fmt.Sprintf(
		"no assignment found for experiment %q (user %q, session %q): fetch a prompt first or supply an explicit assignment ID",
		e.ExperimentID, e.UserID, e.SessionID,
	)
}
