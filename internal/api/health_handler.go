package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
)

// Health probe values.
const (
	HealthStatusHealthy   = "healthy"
	HealthStatusUnhealthy = "unhealthy"
	MsgDatabaseDown       = "Database connection failed"

	// healthTimestampLayout is RFC 3339 in UTC with millisecond precision.
	healthTimestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

// DefaultHealthTimeout bounds the database round-trip of one probe.
const DefaultHealthTimeout = 2 * time.Second

// Pinger is the subset of storage the health probe needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler answers GET /health.
type HealthHandler struct {
	pinger    Pinger
	timeout   time.Duration
	startedAt time.Time
	now       func() time.Time
	logger    *slog.Logger
}

// NewHealthHandler creates a HealthHandler. Uptime is measured from startedAt.
// A non-positive timeout falls back to DefaultHealthTimeout.
func NewHealthHandler(
	pinger Pinger,
	timeout time.Duration,
	startedAt time.Time,
	logger *slog.Logger,
) *HealthHandler {
	if pinger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("pinger cannot be nil for HealthHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = DefaultHealthTimeout
	}

	return &HealthHandler{
		pinger:    pinger,
		timeout:   timeout,
		startedAt: startedAt,
		now:       time.Now,
		logger:    logger.With(slog.String("component", "health_handler")),
	}
}

// ServeHTTP implements http.Handler
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	now := h.now()
	timestamp := now.UTC().Format(healthTimestampLayout)

	if err := h.pinger.Ping(ctx); err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Error("health check failed",
			slog.String("error", redact.Error(err)))
		shared.RespondWithJSON(w, r, http.StatusServiceUnavailable, HealthResponse{
			Status:    HealthStatusUnhealthy,
			Error:     MsgDatabaseDown,
			Timestamp: timestamp,
		})
		return
	}

	uptime := now.Sub(h.startedAt).Seconds()
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:    HealthStatusHealthy,
		Timestamp: timestamp,
		Uptime:    &uptime,
	})
}
