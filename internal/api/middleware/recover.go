package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
)

// InternalServerErrorMessage is the body sent for untagged faults.
const InternalServerErrorMessage = "Internal Server Error"

// Recoverer turns a panic in a downstream handler into a JSON error
// response. A panic carrying a *shared.StatusError answers with that status
// and message; anything else is a 500.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				// ALLOW-PANIC: net/http uses this sentinel to abort the response
				panic(rec)
			}

			err, ok := rec.(error)
			if !ok {
				err = fmt.Errorf("panic: %v", rec)
			}

			logger.FromContext(r.Context()).Error("recovered from panic",
				slog.String("error", redact.Error(err)),
				slog.String("stack", redact.String(string(debug.Stack()))))

			var statusErr *shared.StatusError
			if errors.As(err, &statusErr) {
				shared.RespondWithErrorAndLog(w, r, statusErr.Status, statusErr.Message, err)
				return
			}

			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, InternalServerErrorMessage, err)
		}()

		next.ServeHTTP(w, r)
	})
}
