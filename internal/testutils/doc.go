// Package testutils provides shared assertion helpers for tests.
//
// The leakage assertions verify that errors and HTTP response bodies never
// expose database driver details, SQL fragments, or connection credentials
// to clients.
package testutils
