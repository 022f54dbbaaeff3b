package testdb

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/task-api/internal/ciutil"
	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/database"
	"github.com/stretchr/testify/require"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

// IsIntegrationTestEnvironment returns true if a PostgreSQL test database is
// configured.
func IsIntegrationTestEnvironment() bool {
	return GetTestDatabaseURL() != ""
}

// GetTestDatabaseURL returns the database URL for tests.
// It checks DATABASE_URL and TASKS_TEST_DB_URL environment variables
// in that order, returning the first non-empty value.
func GetTestDatabaseURL() string {
	return ciutil.GetEnvWithFallbacks(
		[]string{ciutil.EnvDatabaseURL, ciutil.EnvTestDBURL},
		"",
		slog.Default(),
	)
}

// GetTestDBWithT returns a migrated PostgreSQL connection for testing.
// Without a configured database URL the test is skipped locally and fails
// in CI, where integration tests are expected to run.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		if ciutil.IsCI() {
			t.Fatal("DATABASE_URL or TASKS_TEST_DB_URL must be set in CI")
		}
		t.Skip("DATABASE_URL or TASKS_TEST_DB_URL not set - skipping integration test")
	}

	return open(t, config.DatabaseConfig{
		Driver:                 config.DriverPostgres,
		URL:                    dbURL,
		MaxOpenConns:           10,
		MaxIdleConns:           5,
		ConnMaxLifetimeMinutes: 5,
	})
}

// OpenSQLite returns a private in-memory SQLite database with the schema
// applied. The test is skipped when the binary was built without cgo.
func OpenSQLite(t *testing.T) *sql.DB {
	t.Helper()

	return open(t, config.DatabaseConfig{
		Driver: config.DriverSQLite,
		URL:    ":memory:",
	})
}

func open(t *testing.T, cfg config.DatabaseConfig) *sql.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	logger := slog.Default().With(slog.String("test", t.Name()))

	db, err := database.Open(ctx, cfg, logger)
	if err != nil && cfg.Driver == config.DriverSQLite && strings.Contains(err.Error(), "cgo") {
		t.Skipf("sqlite unavailable: %v", err)
	}
	require.NoError(t, err, "Failed to open test database")

	t.Cleanup(func() {
		CleanupDB(t, db)
	})

	err = database.Migrate(ctx, db, cfg.Driver, database.MigrateUp, logger)
	require.NoError(t, err, "Failed to run migrations")

	return db
}

// CleanupDB properly closes a database connection, logging any errors.
func CleanupDB(t *testing.T, db *sql.DB) {
	t.Helper()
	if db == nil {
		return
	}

	if err := db.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		t.Logf("Warning: failed to close database connection: %v", err)
	}
}
