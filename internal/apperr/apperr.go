// Package apperr defines the error taxonomy shared by every handler.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure by the collaborator (or check) that produced it.
type Kind string

const (
	KindValidation   Kind = "VALIDATION"
	KindStorageRead  Kind = "STORAGE_READ"
	KindStorageWrite Kind = "STORAGE_WRITE"
	KindTableRead    Kind = "TABLE_READ"
	KindTableWrite   Kind = "TABLE_WRITE"
	KindDecode       Kind = "DECODE"
	KindBadCommand   Kind = "UNRECOGNIZED_COMMAND"
)

// Error carries a kind, a human-readable message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Cause }

// New creates an error of the given kind with no cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// Validation reports a missing or empty required field, detected before any
// external call is made.
func Validation(msg string) *Error { return New(KindValidation, msg) }

// BadCommand reports a queue command name outside the recognized set.
func BadCommand(msg string) *Error { return New(KindBadCommand, msg) }

// KindOf returns the kind of err, or "" when err carries no kind.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

// IsKind reports whether err (or anything it wraps) has the given kind.
func IsKind(err error, kind Kind) bool { return KindOf(err) == kind }
