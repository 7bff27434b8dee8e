// Package apperr defines the closed set of error kinds the services return
// and the HTTP status each kind maps to.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindDependency Kind = iota
	KindValidation
	KindAuth
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "dependency"
	}
}

// HTTPStatus maps a kind to the response status. Duplicate email answers 400
// like any other bad signup payload.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ServerErrorMessage is the only text a client sees for dependency failures.
const ServerErrorMessage = "Server error. Please try again later."

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) error { return &Error{Kind: KindValidation, Message: msg} }

func Auth(msg string) error { return &Error{Kind: KindAuth, Message: msg} }

func NotFound(msg string) error { return &Error{Kind: KindNotFound, Message: msg} }

func Conflict(msg string) error { return &Error{Kind: KindConflict, Message: msg} }

// Dependency wraps a store or provider failure. msg is what the client sees.
func Dependency(msg string, err error) error {
	if msg == "" {
		msg = ServerErrorMessage
	}
	return &Error{Kind: KindDependency, Message: msg, Err: err}
}

// KindOf reports the kind of err. Errors outside this package are dependency failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindDependency
}

// PublicMessage is the text safe to put in a response body.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return ServerErrorMessage
}
