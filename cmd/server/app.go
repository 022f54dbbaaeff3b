package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/database"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config    *config.Config
	logger    *slog.Logger
	db        *sql.DB
	startedAt time.Time

	taskStore   store.TaskStore
	taskService service.TaskService
}

// newApplication wires the store, service and handlers on top of an open
// connection pool.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	return newApplicationWithStore(cfg, logger, db, database.NewTaskStore(db, logger))
}

// newApplicationWithStore builds the application around an existing store.
// db may be nil when the store is not SQL-backed.
func newApplicationWithStore(
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
	taskStore store.TaskStore,
) (*application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	taskService, err := service.NewTaskService(taskStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	return &application{
		config:      cfg,
		logger:      logger,
		db:          db,
		startedAt:   time.Now(),
		taskStore:   taskStore,
		taskService: taskService,
	}, nil
}

// Run serves HTTP until a shutdown signal arrives or the server fails, then
// releases resources. It returns the process exit code.
func (app *application) Run(ctx context.Context) int {
	return app.startHTTPServer(ctx, app.setupRouter())
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		closeDatabase(app.db, app.logger)
	}
	app.logger.Info("application shutdown completed")
}
