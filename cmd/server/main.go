// Package main implements the entry point for the task API server, a small
// REST service for creating, listing, updating and soft-deleting tasks.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/database"
	"github.com/phrazzld/task-api/internal/platform/logger"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr))
}

// run parses flags, loads configuration and either runs a migration command
// or serves HTTP until shutdown. It returns the process exit code.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("task-api", flag.ContinueOnError)
	fs.SetOutput(stderr)
	migrateCmd := fs.String("migrate", "",
		"run a migration command and exit ("+strings.Join(database.MigrationCommands(), "|")+")")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadAppConfig()
	if err != nil {
		fmt.Fprintf(stderr, "failed to load configuration: %v\n", err)
		return 1
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		fmt.Fprintf(stderr, "failed to set up logger: %v\n", err)
		return 1
	}
	logConfigSummary(log, cfg)

	db, err := setupAppDatabase(ctx, cfg, log)
	if err != nil {
		log.Error("failed to connect to database", slog.String("error", err.Error()))
		return 1
	}

	if *migrateCmd != "" {
		defer closeDatabase(db, log)
		if err := database.Migrate(ctx, db, cfg.Database.Driver, *migrateCmd, log); err != nil {
			log.Error("migration failed", slog.String("error", err.Error()))
			return 1
		}
		return 0
	}

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db, cfg.Database.Driver, database.MigrateUp, log); err != nil {
			log.Error("automatic migration failed", slog.String("error", err.Error()))
			closeDatabase(db, log)
			return 1
		}
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		log.Error("failed to initialize application", slog.String("error", err.Error()))
		closeDatabase(db, log)
		return 1
	}

	return app.Run(ctx)
}

// logConfigSummary logs the effective configuration without secrets.
func logConfigSummary(log *slog.Logger, cfg *config.Config) {
	log.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver))

	if cfg.Auth.APIKey == "" {
		log.Warn("no API key configured; task routes will answer 500 until one is set")
	}
}
