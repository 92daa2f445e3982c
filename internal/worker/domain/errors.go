package domain

import "errors"

var (
	// ErrInvalidEvent is returned when an event is malformed or misses
	// required fields. Such events are dropped, never requeued.
	ErrInvalidEvent = errors.New("invalid notification event")
)

// RetryableError wraps transient errors that should trigger a requeue
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return "retryable error: " + e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// NewRetryableError creates a new retryable error
func NewRetryableError(err error) error {
	return &RetryableError{Err: err}
}
