package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/mocks"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleTask(id int64, status domain.TaskStatus) *domain.Task {
	description := "Milk, eggs"
	return &domain.Task{
		ID:          id,
		Title:       "Buy groceries",
		Description: &description,
		Status:      status,
		CreatedAt:   fixedTime,
		UpdatedAt:   fixedTime,
	}
}

// newTaskRouter mounts the handler the same way the server does so that
// chi URL parameters are populated.
func newTaskRouter(svc service.TaskService) http.Handler {
	h := NewTaskHandler(svc, testLogger())
	r := chi.NewRouter()
	r.Route("/tasks", func(r chi.Router) {
		r.Post("/", h.CreateTask)
		r.Get("/", h.ListTasks)
		r.Get("/{id}", h.GetTask)
		r.Patch("/{id}", h.UpdateTaskStatus)
		r.Delete("/{id}", h.DeleteTask)
	})
	return r
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "body: %s", rec.Body.String())
	return body
}

func TestNewTaskHandler_PanicsOnNilDependencies(t *testing.T) {
	assert.Panics(t, func() { NewTaskHandler(nil, testLogger()) })
	assert.Panics(t, func() { NewTaskHandler(&mocks.MockTaskService{}, nil) })
}

func TestTaskHandler_CreateTask(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &mocks.MockTaskService{
			CreateTaskFn: func(ctx context.Context, input domain.CreateTaskInput) (*domain.Task, error) {
				require.NotNil(t, input.Title)
				assert.Equal(t, "Buy groceries", *input.Title)
				require.NotNil(t, input.Description)
				assert.Equal(t, "Milk, eggs", *input.Description)
				return sampleTask(1, domain.TaskStatusPending), nil
			},
		}

		rec := doRequest(t, newTaskRouter(svc), http.MethodPost, "/tasks",
			`{"title":"Buy groceries","description":"Milk, eggs"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		body := decodeBody(t, rec)
		assert.Equal(t, true, body["status"])
		_, hasSuccess := body["success"]
		assert.False(t, hasSuccess)

		data := body["data"].(map[string]interface{})
		assert.Equal(t, "1", data["id"])
		assert.Equal(t, "Buy groceries", data["title"])
		assert.Equal(t, "Milk, eggs", data["description"])
		assert.Equal(t, "pending", data["status"])
		assert.Equal(t, "2025-04-01T12:00:00Z", data["created_at"])
		_, hasDeleted := data["is_deleted"]
		assert.False(t, hasDeleted)
	})

	t.Run("absent description is null", func(t *testing.T) {
		svc := &mocks.MockTaskService{
			CreateTaskFn: func(ctx context.Context, input domain.CreateTaskInput) (*domain.Task, error) {
				assert.Nil(t, input.Description)
				task := sampleTask(2, domain.TaskStatusPending)
				task.Description = nil
				return task, nil
			},
		}

		rec := doRequest(t, newTaskRouter(svc), http.MethodPost, "/tasks", `{"title":"Write report"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		data := decodeBody(t, rec)["data"].(map[string]interface{})
		description, present := data["description"]
		assert.True(t, present)
		assert.Nil(t, description)
	})

	t.Run("validation error from service", func(t *testing.T) {
		svc := &mocks.MockTaskService{
			CreateTaskFn: func(ctx context.Context, input domain.CreateTaskInput) (*domain.Task, error) {
				return nil, input.Validate()
			},
		}

		rec := doRequest(t, newTaskRouter(svc), http.MethodPost, "/tasks", `{"title":""}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Validation error", body["error"])
		_, hasSuccess := body["success"]
		assert.False(t, hasSuccess, "create validation errors carry no success flag")

		details := body["details"].([]interface{})
		require.Len(t, details, 1)
		issue := details[0].(map[string]interface{})
		assert.Equal(t, domain.IssueTooSmall, issue["code"])
		assert.Equal(t, []interface{}{"title"}, issue["path"])
	})

	t.Run("missing body reports missing title", func(t *testing.T) {
		svc := &mocks.MockTaskService{
			CreateTaskFn: func(ctx context.Context, input domain.CreateTaskInput) (*domain.Task, error) {
				assert.Nil(t, input.Title)
				return nil, input.Validate()
			},
		}

		rec := doRequest(t, newTaskRouter(svc), http.MethodPost, "/tasks", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Validation error", decodeBody(t, rec)["error"])
	})

	t.Run("wrong field type", func(t *testing.T) {
		svc := &mocks.MockTaskService{}

		rec := doRequest(t, newTaskRouter(svc), http.MethodPost, "/tasks", `{"title":42}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Validation error", body["error"])
		details := body["details"].([]interface{})
		require.Len(t, details, 1)
		assert.Equal(t, domain.IssueInvalidType, details[0].(map[string]interface{})["code"])
		assert.Equal(t, 0, svc.CallCount())
	})

	t.Run("malformed json", func(t *testing.T) {
		svc := &mocks.MockTaskService{}

		rec := doRequest(t, newTaskRouter(svc), http.MethodPost, "/tasks", `{"title":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, MsgInvalidJSON, decodeBody(t, rec)["error"])
		assert.Equal(t, 0, svc.CallCount())
	})

	t.Run("storage failure does not leak details", func(t *testing.T) {
		svc := &mocks.MockTaskService{
			Err: service.NewTaskServiceError("create_task", "failed to save task",
				errors.New("pq: connection refused at 10.0.0.5:5432")),
		}

		rec := doRequest(t, newTaskRouter(svc), http.MethodPost, "/tasks", `{"title":"x"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, MsgInternalServerError, decodeBody(t, rec)["error"])
		assert.NotContains(t, rec.Body.String(), "10.0.0.5")
	})
}

func TestTaskHandler_ListTasks(t *testing.T) {
	t.Run("returns tasks in service order", func(t *testing.T) {
		svc := &mocks.MockTaskService{
			Tasks: []*domain.Task{
				sampleTask(2, domain.TaskStatusCompleted),
				sampleTask(1, domain.TaskStatusPending),
			},
		}

		rec := doRequest(t, newTaskRouter(svc), http.MethodGet, "/tasks", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		var body TaskListEnvelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Success)
		require.Len(t, body.Data, 2)
		assert.Equal(t, "2", body.Data[0].ID)
		assert.Equal(t, "1", body.Data[1].ID)
	})

	t.Run("empty list is an array", func(t *testing.T) {
		svc := &mocks.MockTaskService{Tasks: []*domain.Task{}}

		rec := doRequest(t, newTaskRouter(svc), http.MethodGet, "/tasks", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"data":[]}`, rec.Body.String())
	})

	t.Run("storage failure", func(t *testing.T) {
		svc := &mocks.MockTaskService{Err: errors.New("boom")}

		rec := doRequest(t, newTaskRouter(svc), http.MethodGet, "/tasks", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestTaskHandler_GetTask(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		svc            *mocks.MockTaskService
		expectedStatus int
		expectedError  string
		expectCall     bool
	}{
		{
			name:           "found",
			path:           "/tasks/7",
			svc:            &mocks.MockTaskService{Task: sampleTask(7, domain.TaskStatusPending)},
			expectedStatus: http.StatusOK,
			expectCall:     true,
		},
		{
			name:           "not found",
			path:           "/tasks/999",
			svc:            &mocks.MockTaskService{Err: service.ErrTaskNotFound},
			expectedStatus: http.StatusNotFound,
			expectedError:  MsgTaskNotFound,
			expectCall:     true,
		},
		{
			name:           "non numeric id",
			path:           "/tasks/abc",
			svc:            &mocks.MockTaskService{},
			expectedStatus: http.StatusBadRequest,
			expectedError:  MsgInvalidID,
		},
		{
			name:           "zero id",
			path:           "/tasks/0",
			svc:            &mocks.MockTaskService{},
			expectedStatus: http.StatusBadRequest,
			expectedError:  MsgInvalidID,
		},
		{
			name:           "negative id",
			path:           "/tasks/-3",
			svc:            &mocks.MockTaskService{},
			expectedStatus: http.StatusBadRequest,
			expectedError:  MsgInvalidID,
		},
		{
			name:           "fractional id",
			path:           "/tasks/1.5",
			svc:            &mocks.MockTaskService{},
			expectedStatus: http.StatusBadRequest,
			expectedError:  MsgInvalidID,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, newTaskRouter(tc.svc), http.MethodGet, tc.path, "")

			assert.Equal(t, tc.expectedStatus, rec.Code)
			body := decodeBody(t, rec)
			if tc.expectedError != "" {
				assert.Equal(t, tc.expectedError, body["error"])
			} else {
				assert.Equal(t, true, body["success"])
				data := body["data"].(map[string]interface{})
				assert.Equal(t, "7", data["id"])
			}
			if tc.expectCall {
				assert.Equal(t, 1, tc.svc.CallCount())
			} else {
				assert.Equal(t, 0, tc.svc.CallCount(), "service must not be called for a bad id")
			}
		})
	}
}

func TestTaskHandler_GetTask_NotFoundEnvelope(t *testing.T) {
	svc := &mocks.MockTaskService{Err: service.ErrTaskNotFound}

	rec := doRequest(t, newTaskRouter(svc), http.MethodGet, "/tasks/5", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Task not found"}`, rec.Body.String())
}

func TestTaskHandler_UpdateTaskStatus(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		svc := &mocks.MockTaskService{
			UpdateTaskStatusFn: func(
				ctx context.Context,
				id int64,
				input domain.UpdateTaskStatusInput,
			) (*domain.Task, error) {
				require.NoError(t, input.Validate())
				task := sampleTask(id, input.TaskStatus())
				task.UpdatedAt = fixedTime.Add(time.Minute)
				return task, nil
			},
		}

		rec := doRequest(t, newTaskRouter(svc), http.MethodPatch, "/tasks/3", `{"status":"completed"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		var body TaskEnvelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, "3", body.Data.ID)
		assert.Equal(t, "completed", body.Data.Status)
		assert.True(t, body.Data.UpdatedAt.After(body.Data.CreatedAt))
		assert.Equal(t, []int64{3}, svc.IDs())
	})

	t.Run("invalid status carries success flag", func(t *testing.T) {
		svc := &mocks.MockTaskService{
			UpdateTaskStatusFn: func(
				ctx context.Context,
				id int64,
				input domain.UpdateTaskStatusInput,
			) (*domain.Task, error) {
				return nil, input.Validate()
			},
		}

		rec := doRequest(t, newTaskRouter(svc), http.MethodPatch, "/tasks/3", `{"status":"done"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Validation error", body["error"])
		details := body["details"].([]interface{})
		require.Len(t, details, 1)
		issue := details[0].(map[string]interface{})
		assert.Equal(t, domain.IssueInvalidEnumValue, issue["code"])
		assert.Equal(t, []interface{}{"status"}, issue["path"])
	})

	t.Run("bad id is checked before the body", func(t *testing.T) {
		svc := &mocks.MockTaskService{}

		rec := doRequest(t, newTaskRouter(svc), http.MethodPatch, "/tasks/abc", `{"status":"done"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Invalid id"}`, rec.Body.String())
		assert.Equal(t, 0, svc.CallCount())
	})

	t.Run("wrong status type", func(t *testing.T) {
		svc := &mocks.MockTaskService{}

		rec := doRequest(t, newTaskRouter(svc), http.MethodPatch, "/tasks/3", `{"status":true}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Validation error", body["error"])
		assert.Equal(t, 0, svc.CallCount())
	})

	t.Run("not found", func(t *testing.T) {
		svc := &mocks.MockTaskService{Err: service.ErrTaskNotFound}

		rec := doRequest(t, newTaskRouter(svc), http.MethodPatch, "/tasks/42", `{"status":"pending"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"success":false,"error":"Task not found"}`, rec.Body.String())
	})
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	t.Run("returns the deleted task", func(t *testing.T) {
		svc := &mocks.MockTaskService{Task: sampleTask(9, domain.TaskStatusInProgress)}

		rec := doRequest(t, newTaskRouter(svc), http.MethodDelete, "/tasks/9", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		var body TaskEnvelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, "9", body.Data.ID)
		assert.Equal(t, "in-progress", body.Data.Status)
		assert.Equal(t, []int64{9}, svc.IDs())
	})

	t.Run("already deleted", func(t *testing.T) {
		svc := &mocks.MockTaskService{Err: service.ErrTaskNotFound}

		rec := doRequest(t, newTaskRouter(svc), http.MethodDelete, "/tasks/9", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		svc := &mocks.MockTaskService{}

		rec := doRequest(t, newTaskRouter(svc), http.MethodDelete, "/tasks/1e3", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, 0, svc.CallCount())
	})
}

func TestTaskHandler_CreateTask_TrailingWhitespace(t *testing.T) {
	svc := &mocks.MockTaskService{Task: sampleTask(1, domain.TaskStatusPending)}
	req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewBufferString(`{"title":"a"} `))
	rec := httptest.NewRecorder()

	newTaskRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}
