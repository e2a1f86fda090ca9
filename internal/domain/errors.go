package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a missing entity reference; operations abort before
	// any mutation when they hit it.
	ErrNotFound = errors.New("not found")
	// ErrAuthRequired marks a selection or booking attempt without a
	// signed-in identity. It is intercepted before any state transition.
	ErrAuthRequired = errors.New("authentication required")
)

// ValidationError reports invalid input. No state mutation occurs.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// InvariantError reports an attempt to break a ledger invariant, such as
// refunding an already-refunded booking or transitioning out of a terminal
// status. The ledger rejects these even when the caller should have
// prevented them.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string { return e.Msg }

func Invariantf(format string, args ...any) error {
	return &InvariantError{Msg: fmt.Sprintf(format, args...)}
}

func IsInvariant(err error) bool {
	var ie *InvariantError
	return errors.As(err, &ie)
}
