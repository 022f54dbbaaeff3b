package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	// Register the "pgx" database/sql driver
	_ "github.com/jackc/pgx/v5/stdlib"
	// Register the "sqlite3" database/sql driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/phrazzld/task-api/internal/config"
)

// Driver names as registered with database/sql.
const (
	pgxDriverName    = "pgx"
	sqliteDriverName = "sqlite3"
)

// SQLDriverName returns the database/sql driver registered for a configured
// driver, or an error if the driver is not supported.
func SQLDriverName(driver string) (string, error) {
	switch driver {
	case config.DriverPostgres:
		return pgxDriverName, nil
	case config.DriverSQLite:
		return sqliteDriverName, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Open creates the connection pool described by cfg, applies the pool limits
// and verifies connectivity with a ping bounded by ctx.
//
// SQLite pools are capped at a single connection that is never recycled,
// since an in-memory database lives and dies with its connection.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(slog.String("component", "database"), slog.String("driver", cfg.Driver))

	driverName, err := SQLDriverName(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	maxOpen, maxIdle := cfg.MaxOpenConns, cfg.MaxIdleConns
	lifetime := time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute
	if cfg.Driver == config.DriverSQLite {
		maxOpen, maxIdle, lifetime = 1, 1, 0
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(lifetime)

	if err := db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("failed to close database connection after ping failure",
				slog.String("error", closeErr.Error()))
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connection established",
		slog.Int("max_open_conns", maxOpen),
		slog.Int("max_idle_conns", maxIdle))

	return db, nil
}
