// Package apperr defines the typed errors surfaced by the interview services.
// Handlers map them to HTTP statuses with errors.As; services return them
// directly or wrapped with %w.
package apperr

import "fmt"

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func Validation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError reports an unknown entity ID.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func NotFound(entity string, id int64) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConflictError reports a lost race or an already-consumed record: a sibling
// slot confirmed first, or a request accepted twice. Callers should refresh
// and retry from current state.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return "conflict: " + e.Reason
}

func Conflict(reason string) *ConflictError {
	return &ConflictError{Reason: reason}
}

// AuthorizationError reports an action attempted by a role that may not
// perform it.
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string {
	return "not authorized: " + e.Reason
}

func Unauthorized(reason string) *AuthorizationError {
	return &AuthorizationError{Reason: reason}
}

// StateError reports an action that is invalid in the owner's current state,
// e.g. any slot command on an owner whose outcome is already recorded.
type StateError struct {
	Reason string
}

func (e *StateError) Error() string {
	return "invalid state: " + e.Reason
}

func InvalidState(reason string) *StateError {
	return &StateError{Reason: reason}
}
