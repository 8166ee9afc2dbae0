// Package apperr defines the error taxonomy surfaced by the JSON API.
//
// Stores and policies return these (or sentinel errors that handlers map to
// these); the features/errors package turns them into HTTP responses.
// Internal errors carry their cause for logging only; the cause is never
// written to the client.
package apperr

import (
	"errors"
	"net/http"
	"strings"
)

// Kind classifies an Error and selects its HTTP status.
type Kind string

const (
	KindValidation   Kind = "validation_error"
	KindConflict     Kind = "conflict"
	KindNotFound     Kind = "not_found"
	KindForbidden    Kind = "forbidden"
	KindUnauthorized Kind = "unauthorized"
	KindRateLimited  Kind = "rate_limited"
	KindInternal     Kind = "server_error"
)

// GenericMessage is the only text an internal error ever shows a client.
const GenericMessage = "Server error"

// FieldError describes one invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is an API-facing error.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error // cause; logged, not surfaced
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status returns the HTTP status code for the error kind.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Validation reports a malformed or missing request field. When fields are
// given and msg is empty, the message is the joined field messages.
func Validation(msg string, fields ...FieldError) *Error {
	if msg == "" && len(fields) > 0 {
		parts := make([]string, 0, len(fields))
		for _, f := range fields {
			parts = append(parts, f.Message)
		}
		msg = strings.Join(parts, "; ")
	}
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

// Field is shorthand for a single-field validation error.
func Field(field, msg string) *Error {
	return Validation(msg, FieldError{Field: field, Message: msg})
}

// Conflict reports a request that collides with existing state
// (duplicate membership, self-join, duplicate account).
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// NotFound reports a missing activity, task, membership, or user.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Forbidden reports a failed authorization check.
func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// Unauthorized reports a missing or invalid bearer token or bad credentials.
func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

// RateLimited reports a throttled credential attempt.
func RateLimited(msg string) *Error {
	return &Error{Kind: KindRateLimited, Message: msg}
}

// Internal wraps an infrastructure fault.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: GenericMessage, Err: err}
}

// As returns err as an *Error, wrapping anything unrecognized as Internal.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
