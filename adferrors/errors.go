package adferrors

import (
	"errors"
	"fmt"
)

// Kind represents the category of an error.
type Kind string

const (
	// KindInvalidInput marks a contract violation by the caller, such as a
	// negative sample size or an unsorted table.
	KindInvalidInput Kind = "invalid_input"
	// KindData marks a transfer document that cannot be decoded at all.
	KindData Kind = "data"
	// KindConfig marks an invalid configuration.
	KindConfig Kind = "config"
	// KindFile marks a file that cannot be opened or read.
	KindFile Kind = "file"
)

// Error is a categorized error with optional context.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Cause   error
	Details map[string]interface{}
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	msg += ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail adds a key-value detail to the error.
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates an error of the given kind.
func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// Newf creates an error of the given kind with a formatted message.
func Newf(kind Kind, op, format string, args ...interface{}) *Error {
	return New(kind, op, fmt.Sprintf(format, args...))
}

// Wrap wraps err with a kind and message. It returns nil if err is nil.
func Wrap(err error, kind Kind, op, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Message: message, Cause: err}
}

// InvalidInput is shorthand for New(KindInvalidInput, op, message).
func InvalidInput(op, message string) *Error {
	return New(KindInvalidInput, op, message)
}

// IsKind reports whether any error in err's chain is an *Error of kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if !errors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Cause
	}
	return false
}

// IsInvalidInput reports whether err is a contract violation.
func IsInvalidInput(err error) bool {
	return IsKind(err, KindInvalidInput)
}
