package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/platform/logger"
)

// Access gate response messages.
const (
	MsgServerConfigError  = "Server configuration error"
	MsgAuthHeaderRequired = "Authorization header is required"
	MsgInvalidAPIKey      = "Invalid API key"
	bearerPrefix          = "Bearer "
)

// APIKeyMiddleware guards routes with a single shared API key.
type APIKeyMiddleware struct {
	apiKey string
	logger *slog.Logger
}

// NewAPIKeyMiddleware creates a new APIKeyMiddleware for the configured key.
// An empty key is accepted here; every guarded request is then answered with
// a server configuration error.
func NewAPIKeyMiddleware(apiKey string, logger *slog.Logger) *APIKeyMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &APIKeyMiddleware{
		apiKey: apiKey,
		logger: logger.With(slog.String("component", "api_key_auth")),
	}
}

// Authenticate accepts "Authorization: Bearer <key>" or "Authorization: <key>"
// and compares the key in constant time.
func (m *APIKeyMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContextOrDefault(r.Context(), m.logger)

		if m.apiKey == "" {
			log.Error("API key is not configured; rejecting request",
				slog.String("path", r.URL.Path))
			shared.RespondWithError(w, r, http.StatusInternalServerError, MsgServerConfigError)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, MsgAuthHeaderRequired)
			return
		}

		provided := strings.TrimPrefix(authHeader, bearerPrefix)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(m.apiKey)) != 1 {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, MsgInvalidAPIKey, nil,
				shared.WithElevatedLogLevel())
			return
		}

		next.ServeHTTP(w, r)
	})
}
