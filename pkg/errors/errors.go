package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is an API failure carrying its HTTP status and a stable code for
// the {success:false, message, code} body.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches another *Error by code, so clones and wraps of a predefined
// error satisfy errors.Is against it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Sentinels rendered by response.Error. Handlers and services Clone them
// with a user-facing message, e.g. "Student ID already exists".
var (
	// ErrInvalidCredentials is a rejected admin, instructor or student login.
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid credentials")
	// ErrNotFound is an unknown account or course id.
	ErrNotFound = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	// ErrForbidden is a bearer token without the admin role on admin routes.
	ErrForbidden = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	// ErrUnauthorized is a missing or bad admin header pair or token.
	ErrUnauthorized = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	// ErrConflict is a duplicate idNumber within students or instructors.
	ErrConflict = New("CONFLICT", http.StatusConflict, "conflict")
	// ErrValidation covers blank required fields, bad schedule times and
	// unknown instructors.
	ErrValidation = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal   = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	// ErrCacheMiss never reaches clients; the dashboard recomputes on it.
	ErrCacheMiss = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// FromError normalises any error into an *Error. Unknown errors become
// ErrInternal with the cause attached.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone copies err with a request-specific message, leaving the sentinel intact.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
