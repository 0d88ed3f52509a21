package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure raised by the domain wraps exactly one of these,
// so callers classify with errors.Is and read the message for the details.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidState    = errors.New("invalid state")
	ErrNotFound        = errors.New("not found")
)

// Error is a domain failure. Kind is one of the sentinels above (or an error
// wrapping one), Message names the violated field or rule.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the kind to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Kind
}

// NewError builds an *Error of the given kind with a formatted message.
func NewError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func invalidArgument(format string, args ...any) error {
	return NewError(ErrInvalidArgument, format, args...)
}

func invalidState(format string, args ...any) error {
	return NewError(ErrInvalidState, format, args...)
}
