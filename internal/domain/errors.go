package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")
)

// Construction errors raised by entity factories and value-object parsers.
// They are never retried; the caller surfaces them before anything is sent
// to the backend.
var (
	ErrInvalidOrganType   = errors.New("invalid organ type")
	ErrMissingParentRef   = errors.New("missing parent reference")
	ErrInvalidParentRef   = errors.New("invalid parent reference")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidImageStatus = errors.New("invalid image status")
	ErrInvalidUserStatus  = errors.New("invalid user status")
	ErrInvalidUserRole    = errors.New("invalid user role")
	ErrInvalidTimestamp   = errors.New("invalid timestamp")
)

// ErrAnnotationOrphaned reports a dirty-annotation save where the delete
// succeeded but the follow-up create failed. The annotation is gone from the
// committed collection and parked in the orphan map for recovery; callers
// must not confuse this with an ordinary failed update, where the old record
// is still present.
var ErrAnnotationOrphaned = errors.New("annotation orphaned: deleted but not recreated")

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s — %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
