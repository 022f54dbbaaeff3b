package shared

import (
	"errors"
	"fmt"
)

// Request decoding errors.
var (
	// ErrInvalidJSON is returned when a request body is not well-formed JSON.
	ErrInvalidJSON = errors.New("invalid JSON body")

	// ErrBodyTooLarge is returned when a request body exceeds the configured limit.
	ErrBodyTooLarge = errors.New("request body too large")
)

// StatusError tags an error with the HTTP status and client-facing message
// it should produce when it reaches the response boundary.
type StatusError struct {
	Status  int
	Message string
	Err     error
}

// NewStatusError creates a StatusError.
func NewStatusError(status int, message string, err error) *StatusError {
	return &StatusError{Status: status, Message: message, Err: err}
}

// Error implements the error interface for StatusError.
func (e *StatusError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("status %d: %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("status %d: %s", e.Status, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StatusError) Unwrap() error {
	return e.Err
}
