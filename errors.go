package recs

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common operations.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("recs: record not found")

	// ErrNoConnString is returned when the process-wide client is used
	// before a connection string has been configured.
	ErrNoConnString = errors.New("recs: no connection string configured")
)

// NotFoundError represents an error when a record is not found.
type NotFoundError struct {
	label string
	id    any // Optional: the ID that was searched for
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	if e.id != nil {
		return fmt.Sprintf("recs: %s not found (id=%v)", e.label, e.id)
	}
	return fmt.Sprintf("recs: %s not found", e.label)
}

// Is reports whether the target error matches NotFoundError.
// This allows errors.Is(notFoundErr, ErrNotFound) to return true.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Label returns the record type label.
func (e *NotFoundError) Label() string {
	return e.label
}

// ID returns the ID that was searched for, if available.
func (e *NotFoundError) ID() any {
	return e.id
}

// NewNotFoundError returns a new NotFoundError for the given record type.
func NewNotFoundError(label string) *NotFoundError {
	return &NotFoundError{label: label}
}

// NewNotFoundErrorWithID returns a new NotFoundError with the ID that was searched for.
func NewNotFoundErrorWithID(label string, id any) *NotFoundError {
	return &NotFoundError{label: label, id: id}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}

// ConfigurationError reports an invalid or incomplete setup: a missing
// connection string, a record type without an identifier field, or a
// schema whose descriptors failed validation.
type ConfigurationError struct {
	Reason string
	err    error // optional sentinel, reachable through errors.Is
}

// Error returns the error string.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("recs: configuration: %s", e.Reason)
}

// Unwrap returns the wrapped sentinel error, if any.
func (e *ConfigurationError) Unwrap() error {
	return e.err
}

// NewConfigurationError returns a new ConfigurationError.
func NewConfigurationError(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// newNoConnStringError returns the ConfigurationError for a missing
// connection string. It matches ErrNoConnString under errors.Is.
func newNoConnStringError(reason string) *ConfigurationError {
	return &ConfigurationError{Reason: reason, err: ErrNoConnString}
}

// IsConfiguration returns true if the error is a ConfigurationError.
func IsConfiguration(err error) bool {
	if err == nil {
		return false
	}
	var e *ConfigurationError
	return errors.As(err, &e)
}

// ConnectionStateError reports an operation attempted on a nil, closed,
// or otherwise non-ready connection lease.
type ConnectionStateError struct {
	State string // e.g. "nil", "closed", "released"
}

// Error returns the error string.
func (e *ConnectionStateError) Error() string {
	return fmt.Sprintf("recs: connection is %s", e.State)
}

// IsConnectionState returns true if the error is a ConnectionStateError.
func IsConnectionState(err error) bool {
	if err == nil {
		return false
	}
	var e *ConnectionStateError
	return errors.As(err, &e)
}

// UnsupportedTypeError reports a field type outside the closed set of
// persistable types. It is raised at definition time (for example when
// loading a record definition file), never during row processing.
type UnsupportedTypeError struct {
	Field string
	Type  string
}

// Error returns the error string.
func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("recs: field %q has unsupported type %q", e.Field, e.Type)
}

// IsUnsupportedType returns true if the error is an UnsupportedTypeError.
func IsUnsupportedType(err error) bool {
	if err == nil {
		return false
	}
	var e *UnsupportedTypeError
	return errors.As(err, &e)
}

// MutationError wraps a database error with the record type and operation
// that produced it. The underlying error is reachable through Unwrap, so
// driver-level matching (errors.As on *pq.Error, for example) still works.
type MutationError struct {
	Label string // Record type being mutated
	Op    string // Operation (e.g. "insert", "update", "delete")
	Err   error  // Underlying error
}

// Error returns the error string.
func (e *MutationError) Error() string {
	return fmt.Sprintf("recs: %s %s: %v", e.Op, e.Label, e.Err)
}

// Unwrap returns the underlying error.
func (e *MutationError) Unwrap() error {
	return e.Err
}

// NewMutationError returns a new MutationError.
func NewMutationError(label, op string, err error) *MutationError {
	return &MutationError{Label: label, Op: op, Err: err}
}

// IsMutationError returns true if the error is a MutationError.
func IsMutationError(err error) bool {
	if err == nil {
		return false
	}
	var e *MutationError
	return errors.As(err, &e)
}
