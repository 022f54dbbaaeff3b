package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
)

// TaskService provides task-related operations
type TaskService interface {
	// CreateTask validates input and persists a new task
	CreateTask(ctx context.Context, input domain.CreateTaskInput) (*domain.Task, error)

	// ListTasks returns every non-deleted task, newest first. The result is
	// never nil.
	ListTasks(ctx context.Context) ([]*domain.Task, error)

	// GetTask retrieves a task by its ID
	GetTask(ctx context.Context, id int64) (*domain.Task, error)

	// UpdateTaskStatus validates input and changes a task's status
	UpdateTaskStatus(
		ctx context.Context,
		id int64,
		input domain.UpdateTaskStatusInput,
	) (*domain.Task, error)

	// DeleteTask soft-deletes a task and returns it as it was at deletion
	DeleteTask(ctx context.Context, id int64) (*domain.Task, error)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService
// It returns an error if the task store is nil.
func NewTaskService(taskStore store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if taskStore == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "taskStore cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", "task_service")),
	}, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	input domain.CreateTaskInput,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := input.Validate(); err != nil {
		log.Debug("create task input rejected", slog.String("error", err.Error()))
		return nil, err
	}

	task, err := s.taskStore.Create(ctx, *input.Title, input.Description)
	if err != nil {
		log.Error("failed to create task", slog.String("error", err.Error()))
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	log.Debug("task created", slog.Int64("task_id", task.ID))
	return task, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasks, err := s.taskStore.List(ctx)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, NewTaskServiceError("list_tasks", "failed to retrieve tasks", err)
	}

	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return tasks, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidateTaskID(id); err != nil {
		return nil, err
	}

	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return nil, s.storeFailure(log, "get_task", "failed to retrieve task", id, err)
	}

	return task, nil
}

// UpdateTaskStatus implements TaskService.UpdateTaskStatus
func (s *taskServiceImpl) UpdateTaskStatus(
	ctx context.Context,
	id int64,
	input domain.UpdateTaskStatusInput,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidateTaskID(id); err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		log.Debug("update task status input rejected",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, err
	}

	task, err := s.taskStore.UpdateStatus(ctx, id, input.TaskStatus())
	if err != nil {
		return nil, s.storeFailure(log, "update_task_status", "failed to update task status", id, err)
	}

	log.Debug("task status updated",
		slog.Int64("task_id", id),
		slog.String("status", string(task.Status)))
	return task, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidateTaskID(id); err != nil {
		return nil, err
	}

	task, err := s.taskStore.SoftDelete(ctx, id)
	if err != nil {
		return nil, s.storeFailure(log, "delete_task", "failed to delete task", id, err)
	}

	log.Debug("task deleted", slog.Int64("task_id", id))
	return task, nil
}

// storeFailure logs a failed storage call and converts it to a service error.
// Not found is expected traffic and only logged at debug.
func (s *taskServiceImpl) storeFailure(
	log *slog.Logger,
	operation, message string,
	id int64,
	err error,
) error {
	serviceErr := NewTaskServiceError(operation, message, err)
	if serviceErr == ErrTaskNotFound {
		log.Debug("task not found",
			slog.String("operation", operation),
			slog.Int64("task_id", id))
		return serviceErr
	}

	log.Error("task storage call failed",
		slog.String("operation", operation),
		slog.Int64("task_id", id),
		slog.String("error", err.Error()))
	return serviceErr
}
