package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockTaskStore is a testify mock of store.TaskStore
type mockTaskStore struct {
	mock.Mock
}

func (m *mockTaskStore) Create(ctx context.Context, title string, description *string) (*domain.Task, error) {
	args := m.Called(ctx, title, description)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

func (m *mockTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	args := m.Called(ctx)
	tasks, _ := args.Get(0).([]*domain.Task)
	return tasks, args.Error(1)
}

func (m *mockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	args := m.Called(ctx, id)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

func (m *mockTaskStore) UpdateStatus(
	ctx context.Context,
	id int64,
	status domain.TaskStatus,
) (*domain.Task, error) {
	args := m.Called(ctx, id, status)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

func (m *mockTaskStore) SoftDelete(ctx context.Context, id int64) (*domain.Task, error) {
	args := m.Called(ctx, id)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

func (m *mockTaskStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockTaskStore) WithTx(_ *sql.Tx) store.TaskStore {
	return m
}

func strPtr(s string) *string { return &s }

func newTestTask(id int64, status domain.TaskStatus) *domain.Task {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return &domain.Task{
		ID:        id,
		Title:     "Test Task",
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newService(t *testing.T, s store.TaskStore) TaskService {
	t.Helper()
	svc, err := NewTaskService(s, nil)
	require.NoError(t, err)
	return svc
}

func TestNewTaskService(t *testing.T) {
	svc, err := NewTaskService(nil, nil)
	assert.Nil(t, svc)

	var serviceErr *TaskServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, "create_service", serviceErr.Operation)
}

func TestCreateTask(t *testing.T) {
	ctx := context.Background()

	t.Run("persists valid input", func(t *testing.T) {
		m := &mockTaskStore{}
		desc := strPtr("Test Description")
		expected := newTestTask(1, domain.TaskStatusPending)
		expected.Description = desc
		m.On("Create", ctx, "Test Task", desc).Return(expected, nil)

		task, err := newService(t, m).CreateTask(ctx, domain.CreateTaskInput{
			Title:       strPtr("Test Task"),
			Description: desc,
		})

		require.NoError(t, err)
		assert.Equal(t, expected, task)
		m.AssertExpectations(t)
	})

	t.Run("omitted description stays nil", func(t *testing.T) {
		m := &mockTaskStore{}
		m.On("Create", ctx, "Test Task", (*string)(nil)).Return(newTestTask(2, domain.TaskStatusPending), nil)

		task, err := newService(t, m).CreateTask(ctx, domain.CreateTaskInput{Title: strPtr("Test Task")})

		require.NoError(t, err)
		assert.Nil(t, task.Description)
		m.AssertExpectations(t)
	})

	t.Run("missing title never reaches storage", func(t *testing.T) {
		m := &mockTaskStore{}

		_, err := newService(t, m).CreateTask(ctx, domain.CreateTaskInput{Description: strPtr("x")})

		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Len(t, validationErr.Issues, 1)
		assert.Equal(t, domain.IssueInvalidType, validationErr.Issues[0].Code)
		assert.Equal(t, []string{"title"}, validationErr.Issues[0].Path)
		m.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty title never reaches storage", func(t *testing.T) {
		m := &mockTaskStore{}

		_, err := newService(t, m).CreateTask(ctx, domain.CreateTaskInput{Title: strPtr("")})

		assert.ErrorIs(t, err, domain.ErrValidation)
		m.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("storage fault is wrapped", func(t *testing.T) {
		m := &mockTaskStore{}
		dbErr := errors.New("connection refused")
		m.On("Create", ctx, "Test Task", (*string)(nil)).Return(nil, dbErr)

		_, err := newService(t, m).CreateTask(ctx, domain.CreateTaskInput{Title: strPtr("Test Task")})

		var serviceErr *TaskServiceError
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, "create_task", serviceErr.Operation)
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestListTasks(t *testing.T) {
	ctx := context.Background()

	t.Run("returns stored tasks", func(t *testing.T) {
		m := &mockTaskStore{}
		tasks := []*domain.Task{newTestTask(2, domain.TaskStatusPending), newTestTask(1, domain.TaskStatusCompleted)}
		m.On("List", ctx).Return(tasks, nil)

		result, err := newService(t, m).ListTasks(ctx)

		require.NoError(t, err)
		assert.Equal(t, tasks, result)
	})

	t.Run("nil from storage becomes empty slice", func(t *testing.T) {
		m := &mockTaskStore{}
		m.On("List", ctx).Return(nil, nil)

		result, err := newService(t, m).ListTasks(ctx)

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Empty(t, result)
	})

	t.Run("storage fault is wrapped", func(t *testing.T) {
		m := &mockTaskStore{}
		m.On("List", ctx).Return(nil, errors.New("boom"))

		_, err := newService(t, m).ListTasks(ctx)

		var serviceErr *TaskServiceError
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, "list_tasks", serviceErr.Operation)
	})
}

func TestGetTask(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		m := &mockTaskStore{}
		expected := newTestTask(1, domain.TaskStatusPending)
		m.On("GetByID", ctx, int64(1)).Return(expected, nil)

		task, err := newService(t, m).GetTask(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, expected, task)
	})

	t.Run("not found maps to service sentinel", func(t *testing.T) {
		m := &mockTaskStore{}
		m.On("GetByID", ctx, int64(999)).Return(nil, store.ErrTaskNotFound)

		_, err := newService(t, m).GetTask(ctx, 999)

		assert.Equal(t, ErrTaskNotFound, err)
	})

	t.Run("invalid id never reaches storage", func(t *testing.T) {
		m := &mockTaskStore{}

		for _, id := range []int64{0, -1} {
			_, err := newService(t, m).GetTask(ctx, id)
			assert.ErrorIs(t, err, domain.ErrInvalidID)
		}
		m.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestUpdateTaskStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("updates status", func(t *testing.T) {
		m := &mockTaskStore{}
		expected := newTestTask(1, domain.TaskStatusCompleted)
		m.On("UpdateStatus", ctx, int64(1), domain.TaskStatusCompleted).Return(expected, nil)

		task, err := newService(t, m).UpdateTaskStatus(ctx, 1, domain.UpdateTaskStatusInput{
			Status: strPtr("completed"),
		})

		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusCompleted, task.Status)
		m.AssertExpectations(t)
	})

	t.Run("invalid status never reaches storage", func(t *testing.T) {
		m := &mockTaskStore{}

		for _, status := range []*string{nil, strPtr(""), strPtr("done"), strPtr("Completed")} {
			_, err := newService(t, m).UpdateTaskStatus(ctx, 1, domain.UpdateTaskStatusInput{Status: status})
			assert.ErrorIs(t, err, domain.ErrValidation)
		}
		m.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid id checked before payload", func(t *testing.T) {
		m := &mockTaskStore{}

		_, err := newService(t, m).UpdateTaskStatus(ctx, 0, domain.UpdateTaskStatusInput{})

		assert.ErrorIs(t, err, domain.ErrInvalidID)
	})

	t.Run("not found", func(t *testing.T) {
		m := &mockTaskStore{}
		m.On("UpdateStatus", ctx, int64(5), domain.TaskStatusPending).Return(nil, store.ErrTaskNotFound)

		_, err := newService(t, m).UpdateTaskStatus(ctx, 5, domain.UpdateTaskStatusInput{
			Status: strPtr("pending"),
		})

		assert.ErrorIs(t, err, ErrTaskNotFound)
	})
}

func TestDeleteTask(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes task", func(t *testing.T) {
		m := &mockTaskStore{}
		expected := newTestTask(1, domain.TaskStatusPending)
		expected.IsDeleted = true
		m.On("SoftDelete", ctx, int64(1)).Return(expected, nil)

		task, err := newService(t, m).DeleteTask(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, expected, task)
	})

	t.Run("already deleted reports not found", func(t *testing.T) {
		m := &mockTaskStore{}
		m.On("SoftDelete", ctx, int64(1)).Return(nil, store.ErrTaskNotFound)

		_, err := newService(t, m).DeleteTask(ctx, 1)

		assert.ErrorIs(t, err, ErrTaskNotFound)
	})

	t.Run("storage fault is wrapped", func(t *testing.T) {
		m := &mockTaskStore{}
		m.On("SoftDelete", ctx, int64(1)).Return(nil, store.NewStoreError("task", "delete", "statement failed", errors.New("timeout")))

		_, err := newService(t, m).DeleteTask(ctx, 1)

		var serviceErr *TaskServiceError
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, "delete_task", serviceErr.Operation)
		assert.NotErrorIs(t, err, ErrTaskNotFound)
	})
}
