package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/task-api/internal/domain"
)

// MockTaskService implements service.TaskService for handler tests
type MockTaskService struct {
	CreateTaskFn       func(ctx context.Context, input domain.CreateTaskInput) (*domain.Task, error)
	ListTasksFn        func(ctx context.Context) ([]*domain.Task, error)
	GetTaskFn          func(ctx context.Context, id int64) (*domain.Task, error)
	UpdateTaskStatusFn func(ctx context.Context, id int64, input domain.UpdateTaskStatusInput) (*domain.Task, error)
	DeleteTaskFn       func(ctx context.Context, id int64) (*domain.Task, error)

	// Default response values
	Task  *domain.Task
	Tasks []*domain.Task
	Err   error

	mu    sync.Mutex
	calls int
	ids   []int64
}

func (m *MockTaskService) record(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if id != 0 {
		m.ids = append(m.ids, id)
	}
}

// CallCount returns how many service methods were invoked in total.
func (m *MockTaskService) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// IDs returns the task ids passed to id-taking methods, in call order.
func (m *MockTaskService) IDs() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int64(nil), m.ids...)
}

// CreateTask implements service.TaskService
func (m *MockTaskService) CreateTask(ctx context.Context, input domain.CreateTaskInput) (*domain.Task, error) {
	m.record(0)
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, input)
	}
	return m.Task, m.Err
}

// ListTasks implements service.TaskService
func (m *MockTaskService) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	m.record(0)
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx)
	}
	return m.Tasks, m.Err
}

// GetTask implements service.TaskService
func (m *MockTaskService) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	m.record(id)
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, id)
	}
	return m.Task, m.Err
}

// UpdateTaskStatus implements service.TaskService
func (m *MockTaskService) UpdateTaskStatus(
	ctx context.Context,
	id int64,
	input domain.UpdateTaskStatusInput,
) (*domain.Task, error) {
	m.record(id)
	if m.UpdateTaskStatusFn != nil {
		return m.UpdateTaskStatusFn(ctx, id, input)
	}
	return m.Task, m.Err
}

// DeleteTask implements service.TaskService
func (m *MockTaskService) DeleteTask(ctx context.Context, id int64) (*domain.Task, error) {
	m.record(id)
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id)
	}
	return m.Task, m.Err
}
