package domain

import (
	"errors"
	"strings"
)

// ErrorKind classifies a failure so the transport boundary can pick a status code.
type ErrorKind string

const (
	KindValidation   ErrorKind = "VALIDATION_ERROR"
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindConflict     ErrorKind = "CONFLICT"
	KindUnauthorized ErrorKind = "UNAUTHORIZED"
	KindForbidden    ErrorKind = "FORBIDDEN"
)

// FieldViolation describes a single invalid field in an input payload.
type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Error is the typed failure raised by the services and carried unmodified to
// the boundary.
type Error struct {
	Kind       ErrorKind
	Message    string
	Violations []FieldViolation
	Err        error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = strings.ToLower(strings.ReplaceAll(string(e.Kind), "_", " "))
	}
	if len(e.Violations) > 0 {
		parts := make([]string, 0, len(e.Violations))
		for _, v := range e.Violations {
			parts = append(parts, v.Field+": "+v.Reason)
		}
		msg += " (" + strings.Join(parts, "; ") + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrValidation   = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrNotFound     = &Error{Kind: KindNotFound, Message: "not found"}
	ErrConflict     = &Error{Kind: KindConflict, Message: "conflict"}
	ErrUnauthorized = &Error{Kind: KindUnauthorized, Message: "unauthorized"}
	ErrForbidden    = &Error{Kind: KindForbidden, Message: "access forbidden"}

	ErrInvalidCredentials = &Error{Kind: KindUnauthorized, Message: "invalid email or password"}
	ErrUserBlocked        = &Error{Kind: KindForbidden, Message: "user is blocked"}
	ErrUserExists         = &Error{Kind: KindConflict, Message: "user already exists"}
	ErrClientNotFound     = &Error{Kind: KindNotFound, Message: "client not found"}
)

// NewValidationError builds a VALIDATION_ERROR carrying every violation found.
func NewValidationError(violations ...FieldViolation) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Violations: violations}
}

// NewNotFoundError builds a NOT_FOUND error with a custom message.
func NewNotFoundError(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// NewConflictError wraps a storage uniqueness failure.
func NewConflictError(msg string, cause error) *Error {
	return &Error{Kind: KindConflict, Message: msg, Err: cause}
}

// KindOf returns the classification of err, or "" for generic (I/O) failures.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
