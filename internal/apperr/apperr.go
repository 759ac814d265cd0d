// Package apperr holds the error taxonomy shared by repositories, services
// and handlers. Callers wrap one of the sentinels with %w and handlers match
// them with errors.Is to pick a status code.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound means the referenced id does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrValidation means the input is malformed or semantically invalid.
	ErrValidation = errors.New("validation failed")
	// ErrRoleDenied means the principal's role may not perform the operation.
	ErrRoleDenied = errors.New("role not permitted")
	// ErrForbidden means the role is allowed but the resource belongs to someone else.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict means the write collides with existing state.
	ErrConflict = errors.New("conflict")
	// ErrUnauthenticated means no valid identity accompanies the request.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// NotFound wraps ErrNotFound with a formatted message.
func NotFound(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// Validation wraps ErrValidation with a formatted message.
func Validation(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrValidation)
}

// RoleDenied wraps ErrRoleDenied with a formatted message.
func RoleDenied(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrRoleDenied)
}

// Forbidden wraps ErrForbidden with a formatted message.
func Forbidden(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrForbidden)
}

// Conflict wraps ErrConflict with a formatted message.
func Conflict(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrConflict)
}

// Message returns the human readable part of err, without the sentinel suffix.
func Message(err error) string {
	msg := err.Error()
	for _, s := range []error{ErrNotFound, ErrValidation, ErrRoleDenied, ErrForbidden, ErrConflict, ErrUnauthenticated} {
		if suffix := ": " + s.Error(); strings.HasSuffix(msg, suffix) {
			return strings.TrimSuffix(msg, suffix)
		}
	}
	return msg
}

// FieldError is a validation failure with one reason per input field.
type FieldError struct {
	Fields map[string]string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid fields: %v", e.Fields)
}

// Unwrap lets errors.Is(err, ErrValidation) match.
func (e *FieldError) Unwrap() error { return ErrValidation }
