package analyzer

import (
	"errors"
	"fmt"
)

// Kind classifies analysis failures.
type Kind string

const (
	KindRateLimited      Kind = "rate_limited"
	KindRequestFailed    Kind = "request_failed"
	KindValidationFailed Kind = "validation_failed"
	KindRetriesExhausted Kind = "retries_exhausted"
	KindCanceled         Kind = "canceled"
)

// FailureMessage is shown to end users instead of the underlying error.
const FailureMessage = "Subtitle analysis failed. Please try again later."

// Error is returned by Analyze for every failure.
type Error struct {
	Kind     Kind
	Attempts int
	Err      error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("analysis %s after %d attempt(s)", e.Kind, e.Attempts)
	}
	return fmt.Sprintf("analysis %s after %d attempt(s): %v", e.Kind, e.Attempts, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the failure kind of err, or "" when err is not an analysis error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

// Message converts err to the fixed user-facing text.
func Message(err error) string {
	if err == nil {
		return ""
	}
	return FailureMessage
}
