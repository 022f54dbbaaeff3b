package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
)

// Statements use $n placeholders and RETURNING, which both pgx and SQLite
// (3.35+) accept unchanged.
const (
	taskColumns = `id, title, description, status, is_deleted, created_at, updated_at`

	insertTaskQuery = `
		INSERT INTO tasks (title, description)
		VALUES ($1, $2)
		RETURNING ` + taskColumns

	listTasksQuery = `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE is_deleted = FALSE
		ORDER BY created_at DESC, id DESC`

	getTaskQuery = `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE id = $1 AND is_deleted = FALSE`

	updateTaskStatusQuery = `
		UPDATE tasks
		SET status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND is_deleted = FALSE
		RETURNING ` + taskColumns

	softDeleteTaskQuery = `
		UPDATE tasks
		SET is_deleted = TRUE, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND is_deleted = FALSE
		RETURNING ` + taskColumns

	pingQuery = `SELECT 1`
)

// TaskStore implements the store.TaskStore interface on top of database/sql.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTaskStore creates a new SQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewTaskStore(db store.DBTX, logger *slog.Logger) *TaskStore {
	if db == nil {
		// ALLOW-PANIC: a store without a connection cannot serve any request
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task        domain.Task
		description sql.NullString
		status      string
		createdAt   timestamp
		updatedAt   timestamp
	)

	if err := row.Scan(
		&task.ID,
		&task.Title,
		&description,
		&status,
		&task.IsDeleted,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	if description.Valid {
		d := description.String
		task.Description = &d
	}
	task.Status = domain.TaskStatus(status)
	task.CreatedAt = createdAt.Time
	task.UpdatedAt = updatedAt.Time

	return &task, nil
}

// Create implements store.TaskStore.Create
// A nil description is stored as NULL.
func (s *TaskStore) Create(ctx context.Context, title string, description *string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var desc sql.NullString
	if description != nil {
		desc = sql.NullString{String: *description, Valid: true}
	}

	task, err := scanTask(s.db.QueryRowContext(ctx, insertTaskQuery, title, desc))
	if err != nil {
		mapped := MapError(err)
		if IsConstraintViolation(err) {
			log.Warn("task rejected by database constraint",
				slog.String("error", err.Error()))
		} else {
			log.Error("failed to create task",
				slog.String("error", err.Error()))
		}
		return nil, store.NewStoreError("task", "create", "failed to insert task", mapped)
	}

	log.Info("task created successfully",
		slog.Int64("task_id", task.ID),
		slog.String("status", string(task.Status)))
	return task, nil
}

// List implements store.TaskStore.List
func (s *TaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("listing tasks")

	rows, err := s.db.QueryContext(ctx, listTasksQuery)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "failed to query tasks", MapError(err))
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("task", "list", "failed to scan task", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "failed to iterate tasks", MapError(err))
	}

	log.Debug("tasks listed successfully", slog.Int("count", len(tasks)))
	return tasks, nil
}

// GetByID implements store.TaskStore.GetByID
// Returns store.ErrTaskNotFound if the task does not exist or is deleted.
func (s *TaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving task by ID", slog.Int64("task_id", id))

	task, err := scanTask(s.db.QueryRowContext(ctx, getTaskQuery, id))
	if err != nil {
		return nil, s.singleRowError(log, "get", id, err)
	}

	log.Debug("task retrieved successfully",
		slog.Int64("task_id", id),
		slog.String("status", string(task.Status)))
	return task, nil
}

// UpdateStatus implements store.TaskStore.UpdateStatus
// Returns store.ErrTaskNotFound if no non-deleted task matched.
func (s *TaskStore) UpdateStatus(
	ctx context.Context,
	id int64,
	status domain.TaskStatus,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("updating task status",
		slog.Int64("task_id", id),
		slog.String("status", string(status)))

	task, err := scanTask(s.db.QueryRowContext(ctx, updateTaskStatusQuery, string(status), id))
	if err != nil {
		return nil, s.singleRowError(log, "update_status", id, err)
	}

	log.Info("task status updated successfully",
		slog.Int64("task_id", id),
		slog.String("status", string(task.Status)))
	return task, nil
}

// SoftDelete implements store.TaskStore.SoftDelete
// Returns store.ErrTaskNotFound if no non-deleted task matched.
func (s *TaskStore) SoftDelete(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("soft deleting task", slog.Int64("task_id", id))

	task, err := scanTask(s.db.QueryRowContext(ctx, softDeleteTaskQuery, id))
	if err != nil {
		return nil, s.singleRowError(log, "delete", id, err)
	}

	log.Info("task deleted successfully", slog.Int64("task_id", id))
	return task, nil
}

// Ping implements store.TaskStore.Ping
func (s *TaskStore) Ping(ctx context.Context) error {
	var one int
	if err := s.db.QueryRowContext(ctx, pingQuery).Scan(&one); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("database ping failed",
			slog.String("error", err.Error()))
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// WithTx implements store.TaskStore.WithTx
// It returns a new TaskStore instance that uses the provided transaction.
func (s *TaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &TaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// singleRowError turns a failed single-row statement into ErrTaskNotFound or
// a StoreError and logs it at the matching level.
func (s *TaskStore) singleRowError(log *slog.Logger, op string, id int64, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("task not found",
			slog.String("operation", op),
			slog.Int64("task_id", id))
		return store.ErrTaskNotFound
	}

	log.Error("task statement failed",
		slog.String("operation", op),
		slog.String("error", err.Error()),
		slog.Int64("task_id", id))
	return store.NewStoreError("task", op, "statement failed", MapError(err))
}
