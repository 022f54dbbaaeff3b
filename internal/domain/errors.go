// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when an input fails validation.
	// It is wrapped by ValidationError so callers can use errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when a task identifier is malformed,
	// not a whole number, or not strictly positive.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidTaskStatus is returned when a status is not one of the
	// enumerated TaskStatus values.
	ErrInvalidTaskStatus = errors.New("invalid task status")

	// ErrEmptyTaskTitle is returned when a task title is empty.
	ErrEmptyTaskTitle = errors.New("task title cannot be empty")
)
