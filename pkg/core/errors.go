package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an error signal raised by the multiply slots.
type ErrorKind int

// Error kinds.
const (
	// TypeError: an operand lacks the capability the operation needs.
	TypeError ErrorKind = iota
	// OverflowError: a converted multiplier does not fit the count representation.
	OverflowError
)

// String returns the host-language exception name.
func (k ErrorKind) String() string {
	switch k {
	case TypeError:
		return "TypeError"
	case OverflowError:
		return "OverflowError"
	default:
		return "Error"
	}
}

// Error is a typed error signal. A failing operation returns exactly one and
// never a usable value alongside it.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Message
}

// NewTypeError returns a TypeError with a formatted message.
func NewTypeError(format string, args ...any) error {
	return &Error{Kind: TypeError, Message: fmt.Sprintf(format, args...)}
}

// NewOverflowError returns an OverflowError with a formatted message.
func NewOverflowError(format string, args ...any) error {
	return &Error{Kind: OverflowError, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is, or wraps, an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
