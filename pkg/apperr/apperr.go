package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for handlers and monitoring
type Kind string

const (
	KindValidation  Kind = "validation"
	KindNotFound    Kind = "not_found"
	KindDatabase    Kind = "database"
	KindCalculation Kind = "calculation"
)

// Error is a typed application error, optionally wrapping a cause
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

// Unwrap exposes the wrapped cause for errors.Is/As chains
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches two apperr values by kind and message so package-level
// sentinels keep working with errors.Is after wrapping
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Msg == t.Msg
}

// Validation builds a caller-input error; never retried automatically
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Msg: msg}
}

// NotFound builds an error for a missing referenced record
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

// Database wraps a failed storage call; safe to retry at the caller's discretion
func Database(msg string, err error) *Error {
	return &Error{Kind: KindDatabase, Msg: msg, Err: err}
}

// Calculation flags an invariant violation detected during computation
func Calculation(msg string) *Error {
	return &Error{Kind: KindCalculation, Msg: msg}
}

// KindOf returns the kind of err, or "" when err carries no kind
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
