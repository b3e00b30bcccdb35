package testutils

import (
	"strings"
	"testing"
)

// Database specific terms that should never reach users. Error messages and
// response bodies containing any of these leak internal implementation detail.
var sensitiveTerms = []string{
	// PostgreSQL specific
	"postgres", "postgresql", "pq:", "pg:", "pgx:",
	"23505", "23503", "23502", "23514", // PostgreSQL error codes
	"duplicate key", "violates unique constraint",
	"violates foreign key constraint",
	"violates not-null constraint",
	"constraint", "column",

	// SQL specific
	"sql:", "sql.ErrNoRows", "database/sql",
	"syntax error", "SELECT ", "INSERT ",

	// Connection details
	"dial tcp", "connection refused", "password",

	// Internal details
	"position:", "line:", "file:", "detail:", "hint:",
	"internal query:", "where:", "schema",
}

// AssertNoErrorLeakage checks that the error does not leak internal database
// details. This is particularly important for testing error handling to
// ensure sensitive implementation details are not exposed to users.
func AssertNoErrorLeakage(t *testing.T, err error) {
	t.Helper()

	if err == nil {
		return
	}

	errMsg := err.Error()

	for _, term := range sensitiveTerms {
		if strings.Contains(errMsg, term) {
			t.Errorf("Error message leaks internal detail: %q. Full error: %q", term, errMsg)
		}
	}

	// Long error messages tend to carry driver diagnostics
	if len(errMsg) >= 200 {
		t.Errorf("Error message is suspiciously long which may indicate leakage of internal details: %q", errMsg)
	}
}

// AssertSafeResponseBody checks that an HTTP error response body does not
// leak internal database details. Bodies are expected to carry only the
// sanitized user-facing message.
func AssertSafeResponseBody(t *testing.T, body string) {
	t.Helper()

	for _, term := range sensitiveTerms {
		if strings.Contains(body, term) {
			t.Errorf("Response body leaks internal detail: %q. Full body: %q", term, body)
		}
	}
}
