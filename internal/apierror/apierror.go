// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import "net/http"

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Validation error", Fields: fields}
}

// Error couples a client-safe detail message with the HTTP status it maps to.
// Services return *Error for every expected failure; anything else reaching
// the handler boundary is treated as internal, logged, and masked.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string { return e.Detail }

func InvalidCredentials(msg string) *Error { return &Error{http.StatusUnauthorized, msg} }
func InvalidToken(msg string) *Error       { return &Error{http.StatusUnauthorized, msg} }
func AccessDenied(msg string) *Error       { return &Error{http.StatusForbidden, msg} }
func NotFound(msg string) *Error           { return &Error{http.StatusNotFound, msg} }
func Conflict(msg string) *Error           { return &Error{http.StatusConflict, msg} }
func Validation(msg string) *Error         { return &Error{http.StatusBadRequest, msg} }
func Unavailable(msg string) *Error        { return &Error{http.StatusServiceUnavailable, msg} }

// Upstream preserves the status code returned by another service so the
// caller sees the auth service's own response rather than a re-mapped one.
func Upstream(status int, msg string) *Error { return &Error{status, msg} }
