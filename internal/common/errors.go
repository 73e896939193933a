// Package common defines shared constants and sentinel errors used across
// the server and client tiers of taskhub. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrConflict       = errors.New("concurrent modification")

	// Input errors.
	ErrValidation = errors.New("validation error")
	ErrParse      = fmt.Errorf("%w: malformed value", ErrValidation)
	ErrIDMismatch = fmt.Errorf("%w: body id does not match path id", ErrValidation)

	// Account errors.
	ErrUserNotFound = fmt.Errorf("user %w", ErrorNotFound)
	ErrEmailTaken   = errors.New("email already registered")

	// Task domain lookups.
	ErrTaskNotFound    = fmt.Errorf("task %w", ErrorNotFound)
	ErrSubtaskNotFound = fmt.Errorf("subtask %w", ErrorNotFound)
	ErrLabelNotFound   = fmt.Errorf("label %w", ErrorNotFound)

	// Task/label association errors.
	ErrInvalidTaskOrLabel   = errors.New("invalid task or label")
	ErrLabelAlreadyAttached = errors.New("label already attached to task")
	ErrLabelNotAttached     = errors.New("label not attached to task")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// Signing key errors; raised at construction so nothing signs with an empty key.
	ErrSigningKeyMissing  = errors.New("signing key is not configured")
	ErrSigningKeyTooShort = errors.New("signing key is too short")

	// Client tier: the API could not be reached or timed out.
	ErrUpstream = errors.New("upstream unavailable")
)

// ValidationError describes a rejected input field. It matches ErrValidation
// via errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError is a shorthand for &ValidationError{...}.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
