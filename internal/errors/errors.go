// Package errors defines the error kinds the meeting layer raises and the
// transport status each maps to. Handlers translate kinds to HTTP codes; the
// services themselves never touch net/http.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Kind identifies a class of failure.
type Kind string

const (
	KindAuthentication   Kind = "authentication_required"
	KindNotFound         Kind = "not_found"
	KindInvalidReference Kind = "invalid_reference"
	KindValidation       Kind = "validation_failed"
	KindConflict         Kind = "conflict"
	KindConstruction     Kind = "construction_failure"
	KindRateLimit        Kind = "rate_limit_exceeded"
)

// Error is a service error with a transport mapping.
type Error struct {
	Kind       Kind
	Message    string
	HTTPStatus int
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// AuthenticationRequired reports a missing or invalid caller identity.
func AuthenticationRequired() *Error {
	return &Error{
		Kind:       KindAuthentication,
		Message:    "authentication required",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NotFound reports an entity that does not exist or is not owned by the
// current account. The two cases are deliberately indistinguishable so
// callers cannot probe for other tenants' data.
func NotFound(resource string) *Error {
	return &Error{
		Kind:       KindNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// InvalidReference reports a foreign reference that does not resolve
// entirely to entities owned by the current account.
func InvalidReference(message string) *Error {
	return &Error{
		Kind:       KindInvalidReference,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// Validation reports a malformed request payload.
func Validation(err error) *Error {
	return &Error{
		Kind:       KindValidation,
		Message:    "invalid request",
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
}

// Conflict reports a uniqueness violation.
func Conflict(message string) *Error {
	return &Error{
		Kind:       KindConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// ConstructionFailure reports that the service locator could not produce a
// requested service through any configured resolver.
func ConstructionFailure(err error) *Error {
	return &Error{
		Kind:       KindConstruction,
		Message:    "service construction failed",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// RateLimitExceeded reports that the caller exhausted its request budget.
func RateLimitExceeded(limit int, window string) *Error {
	return &Error{
		Kind:       KindRateLimit,
		Message:    fmt.Sprintf("rate limit of %d per %s exceeded", limit, window),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// StatusOf returns the HTTP status for err, defaulting to 500 for errors
// that carry no transport mapping.
func StatusOf(err error) int {
	var svcErr *Error
	if stderrors.As(err, &svcErr) {
		return svcErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// KindOf returns the kind of err, or the empty Kind for untyped errors.
func KindOf(err error) Kind {
	var svcErr *Error
	if stderrors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return ""
}
