// Package mocks provides centralized mock implementations for testing.
//
// Mocks use function fields for custom behaviour, fall back to default
// response values when a function is not set, and record every call so tests
// can assert that a collaborator was (or was not) reached:
//
//	taskStore := &mocks.MockTaskStore{
//	    GetByIDFn: func(ctx context.Context, id int64) (*domain.Task, error) {
//	        return nil, store.ErrTaskNotFound
//	    },
//	}
//
//	// ... exercise the code under test ...
//
//	assert.Equal(t, 1, taskStore.Calls("GetByID"))
package mocks
