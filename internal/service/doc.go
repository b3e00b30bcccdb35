// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and the storage
// interfaces (defined in internal/store) to fulfill application features.
//
// Services receive dependencies through constructor injection and own the
// acquire-use-release cycle for database sessions: every operation acquires
// its own session from a store.SessionSource, uses it, and releases it before
// returning, so no connection state is shared between requests.
//
// The service layer depends on domain entities and storage interfaces, never
// on specific infrastructure implementations.
package service
