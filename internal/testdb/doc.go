// Package testdb provides helpers for integration tests that need a real
// PostgreSQL database.
//
// Tests call GetTestDB to obtain a migrated connection; it skips the test
// when no database URL is configured, so integration tests are inert in
// environments without a server. Migrations run once per test process.
// WithTx wraps a test in a rolled-back transaction for isolation.
package testdb
