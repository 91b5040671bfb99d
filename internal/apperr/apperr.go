// Package apperr defines the error taxonomy shared by services and the
// HTTP layer: every failure a handler can see carries a kind that maps
// onto a response status.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	// KindInternal covers persistence failures and anything unclassified.
	KindInternal Kind = iota
	// KindInvalid is missing or malformed input.
	KindInvalid
	// KindNotFound is an unresolvable product, order, category or user.
	KindNotFound
	// KindUnauthorized is a missing or unverifiable credential.
	KindUnauthorized
	// KindForbidden is a wrong owner or insufficient role.
	KindForbidden
	// KindConflict is a business-rule clash such as insufficient stock
	// or a duplicate email. Reported as 400 to callers.
	KindConflict
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a classified error with a caller-facing message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap classifies an underlying error, keeping it available to errors.Is.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Invalid is shorthand for a validation error.
func Invalid(message string) *Error { return New(KindInvalid, message) }

// NotFound is shorthand for an unresolvable-entity error.
func NotFound(message string) *Error { return New(KindNotFound, message) }

// Forbidden is shorthand for an ownership/role error.
func Forbidden(message string) *Error { return New(KindForbidden, message) }

// Conflict is shorthand for a business-rule clash.
func Conflict(message string) *Error { return New(KindConflict, message) }

// KindOf extracts the kind of err, defaulting to KindInternal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Status maps an error onto its HTTP response status. Conflicts map to
// 400 like plain validation failures.
func Status(err error) int {
	switch KindOf(err) {
	case KindInvalid, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the caller-facing message for err. Internal failures
// are masked unless debug is set.
func Message(err error, debug bool) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Kind != KindInternal {
		return ae.Message
	}
	if debug {
		return err.Error()
	}
	return "internal server error"
}
