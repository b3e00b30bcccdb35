// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying storage mechanism from the
// application's core logic: services depend on SessionSource, Session
// and the entity stores they expose, never on a concrete database
// driver. The postgres platform package provides the production
// implementations.
package store
