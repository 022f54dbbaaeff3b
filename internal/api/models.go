package api

import (
	"strconv"
	"time"

	"github.com/phrazzld/task-api/internal/domain"
)

// TaskResponse is the wire form of a task. The id is a decimal string and
// is_deleted is never exposed.
type TaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreatedTaskResponse is the envelope returned by POST /tasks.
type CreatedTaskResponse struct {
	Status bool         `json:"status"`
	Data   TaskResponse `json:"data"`
}

// TaskEnvelope wraps a single task on the read and mutation routes.
type TaskEnvelope struct {
	Success bool         `json:"success"`
	Data    TaskResponse `json:"data"`
}

// TaskListEnvelope wraps the task list.
type TaskListEnvelope struct {
	Success bool           `json:"success"`
	Data    []TaskResponse `json:"data"`
}

// NotFoundResponse is returned when a well-formed id matches no task.
type NotFoundResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// ValidationErrorResponse carries field-level issues. Success is only set
// on routes whose error envelope includes the flag.
type ValidationErrorResponse struct {
	Success *bool                    `json:"success,omitempty"`
	Error   string                   `json:"error"`
	Details []domain.ValidationIssue `json:"details"`
	TraceID string                   `json:"trace_id,omitempty"`
}

// HealthResponse is the body of GET /health. Uptime is only reported when
// healthy and Error only when not.
type HealthResponse struct {
	Status    string   `json:"status"`
	Error     string   `json:"error,omitempty"`
	Timestamp string   `json:"timestamp"`
	Uptime    *float64 `json:"uptime,omitempty"`
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          strconv.FormatInt(task.ID, 10),
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskToResponse(task))
	}
	return out
}
