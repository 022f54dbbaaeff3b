package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	// Custom behavior functions
	CreateFn       func(ctx context.Context, title string, description *string) (*domain.Task, error)
	ListFn         func(ctx context.Context) ([]*domain.Task, error)
	GetByIDFn      func(ctx context.Context, id int64) (*domain.Task, error)
	UpdateStatusFn func(ctx context.Context, id int64, status domain.TaskStatus) (*domain.Task, error)
	SoftDeleteFn   func(ctx context.Context, id int64) (*domain.Task, error)
	PingFn         func(ctx context.Context) error

	// Default response values
	Task  *domain.Task
	Tasks []*domain.Task
	Err   error

	mu    sync.Mutex
	calls map[string]int
}

var _ store.TaskStore = (*MockTaskStore)(nil)

func (m *MockTaskStore) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[method]++
}

// Calls returns how many times method was invoked.
func (m *MockTaskStore) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

// TotalCalls returns the number of calls across all methods except Ping.
func (m *MockTaskStore) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for method, n := range m.calls {
		if method != "Ping" {
			total += n
		}
	}
	return total
}

// Create implements store.TaskStore
func (m *MockTaskStore) Create(ctx context.Context, title string, description *string) (*domain.Task, error) {
	m.record("Create")
	if m.CreateFn != nil {
		return m.CreateFn(ctx, title, description)
	}
	return m.Task, m.Err
}

// List implements store.TaskStore
func (m *MockTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	m.record("List")
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return m.Tasks, m.Err
}

// GetByID implements store.TaskStore
func (m *MockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	m.record("GetByID")
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.Task, m.Err
}

// UpdateStatus implements store.TaskStore
func (m *MockTaskStore) UpdateStatus(
	ctx context.Context,
	id int64,
	status domain.TaskStatus,
) (*domain.Task, error) {
	m.record("UpdateStatus")
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, status)
	}
	return m.Task, m.Err
}

// SoftDelete implements store.TaskStore
func (m *MockTaskStore) SoftDelete(ctx context.Context, id int64) (*domain.Task, error) {
	m.record("SoftDelete")
	if m.SoftDeleteFn != nil {
		return m.SoftDeleteFn(ctx, id)
	}
	return m.Task, m.Err
}

// Ping implements store.TaskStore
func (m *MockTaskStore) Ping(ctx context.Context) error {
	m.record("Ping")
	if m.PingFn != nil {
		return m.PingFn(ctx)
	}
	return m.Err
}

// WithTx implements store.TaskStore; the mock ignores the transaction.
func (m *MockTaskStore) WithTx(_ *sql.Tx) store.TaskStore {
	return m
}
