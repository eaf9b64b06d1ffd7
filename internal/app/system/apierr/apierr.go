// Package apierr defines the error taxonomy every handler speaks and the
// single place errors become HTTP responses.
//
// Stores return sentinel errors; features wrap them into an *Error with a
// stable machine-checkable Kind and a client-safe message, then hand them
// to Write. Internal diagnostic detail (driver errors, connection strings)
// stays in the logs and never reaches the response body.
package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure for clients. Kinds are part of the API
// contract; new ones may be added but existing values never change.
type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindUnauthorized      Kind = "unauthorized"
	KindForbidden         Kind = "forbidden"
	KindValidationFailed  Kind = "validation_failed"
	KindConflict          Kind = "conflict"
	KindDependencyFailure Kind = "dependency_failure"
	KindInternal          Kind = "internal_error"
)

// Error is a failure with a client-facing kind and message, optionally
// wrapping the underlying cause for logging.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an *Error with the given kind and client-safe message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap is New plus an underlying cause preserved for logs.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Status maps a kind to its HTTP status code.
func Status(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindValidationFailed:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindDependencyFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// body is the wire shape of every error response.
type body struct {
	Error struct {
		Kind    Kind   `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

// Write renders err as JSON. Non-*Error values are masked as a generic
// internal error so unexpected failures cannot leak detail.
func Write(w http.ResponseWriter, err error) {
	var e *Error
	if !errors.As(err, &e) {
		e = New(KindInternal, "An unexpected error occurred.")
	}

	var b body
	b.Error.Kind = e.Kind
	b.Error.Message = e.Message

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(Status(e.Kind))
	_ = json.NewEncoder(w).Encode(b)
}
