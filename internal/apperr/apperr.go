// Package apperr defines the error kinds shared by the shop and community
// services. Handlers map kinds to transport status codes; services decide
// the kind at the point where a failure is first understood.
package apperr

import "errors"

type Kind int

const (
	// KindNotFound: a referenced user, article, category, order, challenge
	// or post does not exist.
	KindNotFound Kind = iota + 1
	// KindPrecondition: the caller must fix its input or state before
	// retrying (missing address, empty cart, invalid quantity).
	KindPrecondition
	// KindConflict: the current state forbids the operation; retryable only
	// after the state changes (insufficient stock, bad status transition).
	KindConflict
	// KindInternal: a violated system invariant.
	KindInternal
	// KindUnavailable: a downstream transport refused the operation.
	KindUnavailable
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind carried by err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
