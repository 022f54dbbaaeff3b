package domain

import (
	"strconv"
	"time"
)

// TaskStatus represents the progress state of a task.
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// TaskStatuses returns the allowed status values in their canonical order.
func TaskStatuses() []TaskStatus {
	return []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted}
}

// Valid reports whether s is one of the enumerated status values.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// Task is the single persisted entity of the API.
// Description is nil when the client did not supply one.
type Task struct {
	ID          int64
	Title       string
	Description *string
	Status      TaskStatus
	IsDeleted   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the invariants a persisted task must hold.
func (t *Task) Validate() error {
	if err := ValidateTaskID(t.ID); err != nil {
		return err
	}
	if t.Title == "" {
		return ErrEmptyTaskTitle
	}
	if !t.Status.Valid() {
		return ErrInvalidTaskStatus
	}
	return nil
}

// ParseTaskID parses a path identifier. Only base-10 integers strictly
// greater than zero are accepted; anything else returns ErrInvalidID.
func ParseTaskID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, ErrInvalidID
	}
	if err := ValidateTaskID(id); err != nil {
		return 0, err
	}
	return id, nil
}

// ValidateTaskID returns ErrInvalidID unless id is strictly positive.
func ValidateTaskID(id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}
	return nil
}
