package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies a failure the way callers need to react to it.
type Kind string

const (
	KindValidation   Kind = "validation"   // missing or malformed input
	KindPrecondition Kind = "precondition" // state does not allow the operation
	KindNotFound     Kind = "not_found"
	KindPermission   Kind = "permission"
	KindInternal     Kind = "internal"
)

// AppError carries an HTTP status code, a user-facing message and an optional cause.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404)
	Kind    Kind   // Failure class
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches two AppErrors by kind and message, so wrapped copies of a
// sentinel still compare equal with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kindForCode(code),
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kindForCode(code),
		Message: message,
		Err:     err,
	}
}

// Validation reports a missing or invalid field.
func Validation(message string) *AppError {
	return New(http.StatusBadRequest, message)
}

// Precondition reports an operation refused because of the current state.
func Precondition(message string) *AppError {
	return New(http.StatusConflict, message)
}

// NotFound reports a referenced record that does not exist.
func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message)
}

// Permission reports an operation the caller is not allowed to perform.
func Permission(message string) *AppError {
	return New(http.StatusForbidden, message)
}

// KindOf returns the kind of err, or KindInternal when err is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func kindForCode(code int) Kind {
	switch code {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return KindValidation
	case http.StatusConflict:
		return KindPrecondition
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindPermission
	default:
		return KindInternal
	}
}
