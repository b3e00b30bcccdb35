// Package postgres provides the PostgreSQL implementations of the data
// storage interfaces defined in the internal/store package. It owns the
// retrying session Connector, the embedded schema migrations, and the
// mapping between domain entities and database records.
package postgres
