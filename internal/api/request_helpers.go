package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-api/internal/domain"
)

// taskIDParam is the chi URL parameter holding the task id.
const taskIDParam = "id"

// getPathTaskID extracts and validates the task id from the URL path.
// It returns domain.ErrInvalidID for anything that is not a positive
// base-10 integer.
func getPathTaskID(r *http.Request) (int64, error) {
	return domain.ParseTaskID(chi.URLParam(r, taskIDParam))
}
