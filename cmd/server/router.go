package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/task-api/internal/api"
	apiMiddleware "github.com/phrazzld/task-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.RequestLogger)
	r.Use(apiMiddleware.Recoverer)
	r.Use(middleware.RequestSize(app.config.Server.MaxBodyBytes))
	r.Use(middleware.SetHeader("X-Content-Type-Options", "nosniff"))
	r.Use(middleware.SetHeader("X-Frame-Options", "DENY"))

	r.NotFound(api.NotFoundHandler)
	r.MethodNotAllowed(api.NotFoundHandler)

	healthHandler := api.NewHealthHandler(
		app.taskStore,
		time.Duration(app.config.Server.HealthTimeoutSeconds)*time.Second,
		app.startedAt,
		app.logger,
	)
	r.Method(http.MethodGet, "/health", healthHandler)

	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	authMiddleware := apiMiddleware.NewAPIKeyMiddleware(app.config.Auth.APIKey, app.logger)

	taskRoutes := func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Post("/", taskHandler.CreateTask)
		r.Get("/", taskHandler.ListTasks)
		r.Get("/{id}", taskHandler.GetTask)
		r.Patch("/{id}", taskHandler.UpdateTaskStatus)
		r.Delete("/{id}", taskHandler.DeleteTask)
	}

	r.Route("/tasks", taskRoutes)
	r.Route("/api/tasks", taskRoutes)

	return r
}
