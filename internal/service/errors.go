package service

import (
	"errors"
)

// Error kinds. Handlers match these with errors.Is to pick a status code.
var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrPermissionDenied = errors.New("permission denied")
	ErrValidation       = errors.New("validation error")
)

// Error carries an error kind plus a client-facing detail message.
type Error struct {
	Kind   error
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Detail
}

// Unwrap exposes the kind for errors.Is
func (e *Error) Unwrap() error {
	return e.Kind
}

// NotFound builds a not-found error with the given detail
func NotFound(detail string) error {
	return &Error{Kind: ErrNotFound, Detail: detail}
}

// Conflict builds a conflict error with the given detail
func Conflict(detail string) error {
	return &Error{Kind: ErrConflict, Detail: detail}
}

// PermissionDenied builds a permission error with the given detail
func PermissionDenied(detail string) error {
	return &Error{Kind: ErrPermissionDenied, Detail: detail}
}

// Invalid builds a validation error with the given detail
func Invalid(detail string) error {
	return &Error{Kind: ErrValidation, Detail: detail}
}

// Detail extracts the client-facing message from an error, if it has one
func Detail(err error) (string, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Detail, true
	}
	return "", false
}
