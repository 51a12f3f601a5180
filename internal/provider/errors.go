package provider

import (
	"context"
	"errors"
	"fmt"
)

// Error kinds shared by every provider. Match them with errors.Is.
var (
	ErrUnavailable  = errors.New("provider unavailable")
	ErrInvalidInput = errors.New("invalid input")
	ErrTimeout      = errors.New("provider timed out")
	ErrRateLimited  = errors.New("rate limited")
)

// Error is a classified provider failure.
type Error struct {
	Op   string // e.g. "transcribe", "prices"
	Kind error  // one of the Err* kinds
	Err  error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Errorf builds a classified error.
func Errorf(op string, kind error, format string, args ...any) error {
	return &Error{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
}

// Classify maps an arbitrary error onto the provider taxonomy. Errors that are
// already classified are returned unchanged; deadline errors become
// ErrTimeout; everything else is treated as ErrUnavailable.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range []error{ErrUnavailable, ErrInvalidInput, ErrTimeout, ErrRateLimited} {
		if errors.Is(err, kind) {
			return err
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Op: op, Kind: ErrTimeout, Err: err}
	}
	return &Error{Op: op, Kind: ErrUnavailable, Err: err}
}

// Retryable reports whether an automatic retry may help.
func Retryable(err error) bool {
	return errors.Is(err, ErrUnavailable) || errors.Is(err, ErrRateLimited)
}

// UserMessage turns a provider error into the inline text a view shows.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return "That input could not be used. Please try a different one."
	case errors.Is(err, ErrTimeout):
		return "The service took too long to respond. Press retry to try again."
	case errors.Is(err, ErrRateLimited):
		return "Too many requests right now. Please wait a moment and retry."
	case errors.Is(err, ErrUnavailable):
		return "The service is unavailable right now. Please try again later."
	default:
		return err.Error()
	}
}
