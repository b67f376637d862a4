package validation

import "errors"

// Error kinds. Every error returned by this package wraps exactly one of them.
var (
	ErrInvalidDate       = errors.New("invalid date")
	ErrNotANumber        = errors.New("not a number")
	ErrNonPositiveAmount = errors.New("amount not positive")
	ErrEmptyText         = errors.New("empty text")
	ErrTextTooLong       = errors.New("text too long")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrUnknownMenuChoice = errors.New("unknown menu choice")
)

// Error is a validation failure with a message meant for the user.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func fail(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

// IsValidationError reports whether err is a validation failure of any kind.
func IsValidationError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
