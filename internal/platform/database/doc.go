// Package database provides the SQL implementations of the storage interfaces
// defined in the internal/store package. The same statements run against
// PostgreSQL (through the pgx stdlib driver) and SQLite (through go-sqlite3);
// schema changes ship as embedded goose migrations for both dialects.
package database
