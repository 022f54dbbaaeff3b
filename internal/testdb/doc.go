// Package testdb provides utilities specifically for database testing.
//
// OpenSQLite gives each test a private in-memory database with the schema
// applied; it needs a cgo-enabled build and skips the test otherwise.
// GetTestDBWithT connects to the PostgreSQL instance named by DATABASE_URL
// (or TASKS_TEST_DB_URL), migrates it and skips when neither is set. WithTx
// runs a test body inside a transaction that is always rolled back, so tests
// against a shared database do not see each other's rows.
package testdb
