package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/service"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if taskService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskService cannot be nil for TaskHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// CreateTask handles POST /tasks requests
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var input domain.CreateTaskInput
	if err := shared.DecodeJSON(r, &input); err != nil {
		log.Debug("could not decode create task body", slog.String("error", err.Error()))
		HandleAPIError(w, r, err)
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), input)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Info("task created", slog.Int64("task_id", task.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, CreatedTaskResponse{
		Status: true,
		Data:   taskToResponse(task),
	})
}

// ListTasks handles GET /tasks requests
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListTasks(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskListEnvelope{
		Success: true,
		Data:    tasksToResponse(tasks),
	})
}

// GetTask handles GET /tasks/{id} requests
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathTaskID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	task, err := h.taskService.GetTask(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskEnvelope{
		Success: true,
		Data:    taskToResponse(task),
	})
}

// UpdateTaskStatus handles PATCH /tasks/{id} requests
// The id is checked before the body is read.
func (h *TaskHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathTaskID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var input domain.UpdateTaskStatusInput
	if err := shared.DecodeJSON(r, &input); err != nil {
		log.Debug("could not decode update task body",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		HandleAPIError(w, r, err, withValidationSuccessFlag())
		return
	}

	task, err := h.taskService.UpdateTaskStatus(r.Context(), id, input)
	if err != nil {
		HandleAPIError(w, r, err, withValidationSuccessFlag())
		return
	}

	log.Info("task status updated",
		slog.Int64("task_id", task.ID),
		slog.String("status", string(task.Status)))
	shared.RespondWithJSON(w, r, http.StatusOK, TaskEnvelope{
		Success: true,
		Data:    taskToResponse(task),
	})
}

// DeleteTask handles DELETE /tasks/{id} requests
// The response carries the task as it was at deletion.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathTaskID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	task, err := h.taskService.DeleteTask(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Info("task deleted", slog.Int64("task_id", task.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, TaskEnvelope{
		Success: true,
		Data:    taskToResponse(task),
	})
}
