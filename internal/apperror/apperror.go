// Package apperror defines the error kinds surfaced by the API and the sentinel
// errors each layer returns. Mapping kinds to transport status codes happens at
// the HTTP boundary only.
package apperror

import (
	"errors"
	"fmt"
)

// Kind categorises an error for the caller.
type Kind int

const (
	// KindDependency covers database and model failures. It is also the kind
	// reported for errors that carry no kind at all.
	KindDependency Kind = iota
	KindValidation
	KindAuth
	KindConflict
	KindNotFound
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindUnavailable:
		return "unavailable"
	default:
		return "dependency"
	}
}

// Error is an error with a kind, a stable code and a client-facing message.
// Two Errors match under errors.Is when their codes are equal, so a sentinel
// still matches after Wrap attaches a cause.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

// New builds a sentinel error.
func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Newf builds an ad-hoc error of the given kind, typically for input validation.
func Newf(kind Kind, code, format string, args ...any) *Error {
	return &Error{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns a copy of sentinel carrying cause.
func Wrap(sentinel *Error, cause error) *Error {
	return &Error{
		Kind:    sentinel.Kind,
		Code:    sentinel.Code,
		Message: sentinel.Message,
		Err:     cause,
	}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindDependency
}

// Message returns the client-safe message for err. Dependency errors never
// expose their detail.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != KindDependency {
		return appErr.Message
	}
	return "internal server error"
}
