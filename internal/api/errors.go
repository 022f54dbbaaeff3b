package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/store"
)

// Client-facing error messages.
const (
	MsgInvalidID           = "Invalid id"
	MsgValidationError     = "Validation error"
	MsgTaskNotFound        = "Task not found"
	MsgInvalidJSON         = "Invalid JSON body"
	MsgBodyTooLarge        = "Request body too large"
	MsgNotFound            = "Not found"
	MsgInternalServerError = "Internal Server Error"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var statusErr *shared.StatusError

	switch {
	case err == nil:
		return http.StatusInternalServerError

	case errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, shared.ErrInvalidJSON):
		return http.StatusBadRequest

	case errors.Is(err, shared.ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge

	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.As(err, &statusErr):
		return statusErr.Status

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	var statusErr *shared.StatusError

	switch {
	case err == nil:
		return MsgInternalServerError
	case errors.Is(err, domain.ErrInvalidID):
		return MsgInvalidID
	case errors.Is(err, domain.ErrValidation):
		return MsgValidationError
	case errors.Is(err, shared.ErrInvalidJSON):
		return MsgInvalidJSON
	case errors.Is(err, shared.ErrBodyTooLarge):
		return MsgBodyTooLarge
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrNotFound):
		return MsgTaskNotFound
	case errors.As(err, &statusErr) && statusErr.Message != "":
		return statusErr.Message
	default:
		return MsgInternalServerError
	}
}

// errorOption customizes HandleAPIError.
type errorOption func(*errorOptions)

type errorOptions struct {
	validationSuccessFlag bool
}

// withValidationSuccessFlag adds "success": false to validation error bodies.
func withValidationSuccessFlag() errorOption {
	return func(o *errorOptions) {
		o.validationSuccessFlag = true
	}
}

// HandleAPIError writes the response for err. Validation failures and
// not-found get their dedicated envelopes; everything else becomes a plain
// {"error": ...} body with a safe message and is logged.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, opts ...errorOption) {
	options := errorOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		resp := ValidationErrorResponse{
			Error:   MsgValidationError,
			Details: validationErr.Issues,
			TraceID: shared.GetTraceID(r.Context()),
		}
		if options.validationSuccessFlag {
			success := false
			resp.Success = &success
		}
		if resp.Details == nil {
			resp.Details = []domain.ValidationIssue{}
		}
		shared.RespondWithJSON(w, r, http.StatusBadRequest, resp)
		return
	}

	status := MapErrorToStatusCode(err)
	if status == http.StatusNotFound {
		shared.RespondWithJSON(w, r, status, NotFoundResponse{
			Success: false,
			Error:   MsgTaskNotFound,
			TraceID: shared.GetTraceID(r.Context()),
		})
		return
	}

	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
}

// NotFoundHandler answers unmatched routes and unsupported methods.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusNotFound, MsgNotFound)
}
