// Package apperr carries the error taxonomy shared by every service:
// field-level validation maps, not-found, conflict, and the two access
// failures. Controllers translate these to HTTP status codes; services
// never touch HTTP.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated means no actor could be resolved from the request.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden means the actor's role is not in the operation's required set.
	ErrForbidden = errors.New("forbidden")
)

// FieldErrors maps a field name to one or more human-readable messages.
// It is returned to the caller for re-display and never aborts the request.
type FieldErrors map[string][]string

func (fe FieldErrors) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(fe))
}

// Add appends a message for a field.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// OrNil returns fe as an error, or nil when no field failed.
func (fe FieldErrors) OrNil() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// NotFoundError reports a missing entity by id.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with ID %d", e.Resource, e.ID)
}

// NotFound builds a NotFoundError.
func NotFound(resource string, id uint) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError reports an operation rejected because of current state,
// e.g. a second correct answer for a question or hard-deleting a
// non-fired employee.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// Conflict builds a ConflictError.
func Conflict(format string, args ...any) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

// AsFieldErrors extracts a FieldErrors from err, if present.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
