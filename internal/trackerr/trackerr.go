// Package trackerr defines the error taxonomy shared by the ingestion and
// reporting paths. Callers branch on the error kind, never on message text.
package trackerr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation covers malformed submissions and reference dates.
	// Recoverable at the boundary; maps to a client-visible rejection.
	KindValidation
	// KindStorage covers connectivity and query/write failures. Never
	// retried here; the current operation aborts.
	KindStorage
	// KindFormat covers empty or malformed report data.
	KindFormat
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindStorage:
		return "storage"
	case KindFormat:
		return "format"
	}
	return "unknown"
}

// Error carries a kind alongside an optional wrapped cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Validation builds a KindValidation error.
func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// Storage builds a KindStorage error wrapping cause.
func Storage(cause error, format string, args ...any) error {
	return &Error{Kind: KindStorage, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// Format builds a KindFormat error.
func Format(format string, args ...any) error {
	return &Error{Kind: KindFormat, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, unwrapping as needed.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }

func IsStorage(err error) bool { return KindOf(err) == KindStorage }

func IsFormat(err error) bool { return KindOf(err) == KindFormat }
