package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
)

// startHTTPServer serves router until SIGINT/SIGTERM or a listener failure,
// then drains in-flight requests within the configured shutdown timeout.
// It returns the process exit code.
func (app *application) startHTTPServer(ctx context.Context, router http.Handler) int {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(app.config.Server.ReadHeaderTimeoutSeconds) * time.Second,
	}
	shutdownTimeout := time.Duration(app.config.Server.ShutdownTimeoutSeconds) * time.Second

	serverErr := make(chan error, 1)
	go func() {
		app.logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		ctx,
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			// One operation so the pool is only closed after requests drain.
			"http-server": func(ctx context.Context) error {
				app.logger.Info("shutting down server")
				defer app.cleanup()
				return server.Shutdown(ctx)
			},
		},
	)

	select {
	case err := <-serverErr:
		app.logger.Error("server failed", slog.String("error", err.Error()))
		app.cleanup()
		return 1
	case exitCode := <-wait:
		app.logger.Info("server shutdown completed", slog.Int("exit_code", exitCode))
		return exitCode
	}
}
