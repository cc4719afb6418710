package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel kinds for the domain error taxonomy. Handlers map them to HTTP
// statuses with errors.Is; everything else is treated as internal.
var (
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
)

type Error struct {
	kind    error
	message string
}

func (e *Error) Error() string { return e.message }

func (e *Error) Unwrap() error { return e.kind }

func NotFound(format string, args ...interface{}) error {
	return &Error{kind: ErrNotFound, message: fmt.Sprintf(format, args...)}
}

func BadRequest(format string, args ...interface{}) error {
	return &Error{kind: ErrBadRequest, message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...interface{}) error {
	return &Error{kind: ErrForbidden, message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) error {
	return &Error{kind: ErrConflict, message: fmt.Sprintf(format, args...)}
}
