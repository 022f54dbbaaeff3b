package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/task-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
//
// Every read and mutation only sees rows whose is_deleted flag is false.
// A soft-deleted task is therefore reported as ErrTaskNotFound by GetByID,
// UpdateStatus and SoftDelete alike.
type TaskStore interface {
	// Create inserts a task with the given title and optional description and
	// returns the persisted row. Storage assigns the id, the timestamps, the
	// default status and is_deleted = false.
	Create(ctx context.Context, title string, description *string) (*domain.Task, error)

	// List returns all non-deleted tasks, newest first.
	// It returns an empty slice, never nil, when there are no tasks.
	List(ctx context.Context) ([]*domain.Task, error)

	// GetByID returns the non-deleted task with the given id.
	// Returns ErrTaskNotFound if no such row exists.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// UpdateStatus sets the status of a non-deleted task and returns the
	// updated row. Returns ErrTaskNotFound if no row matched.
	UpdateStatus(ctx context.Context, id int64, status domain.TaskStatus) (*domain.Task, error)

	// SoftDelete flags a non-deleted task as deleted and returns the row as
	// it was at deletion. Returns ErrTaskNotFound if no row matched.
	SoftDelete(ctx context.Context, id int64) (*domain.Task, error)

	// Ping performs a trivial round-trip to verify storage is reachable.
	Ping(ctx context.Context) error

	// WithTx returns a TaskStore that runs its statements in tx.
	WithTx(tx *sql.Tx) TaskStore
}
