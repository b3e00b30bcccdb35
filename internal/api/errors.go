package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/kestrelworks/tasklist-api/internal/domain"
	"github.com/kestrelworks/tasklist-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var connErr *store.ConnectionError

	switch {
	// Validation errors
	case errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrEmptyTask),
		errors.Is(err, domain.ErrNameTooLong),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// The database could not be reached, so the request may succeed on retry
	case errors.As(err, &connErr):
		return http.StatusServiceUnavailable

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var connErr *store.ConnectionError

	switch {
	case errors.Is(err, domain.ErrEmptyName):
		return "Todo name cannot be empty"

	case errors.Is(err, domain.ErrEmptyTask):
		return "Todo task cannot be empty"

	case errors.Is(err, domain.ErrNameTooLong):
		return fmt.Sprintf("Todo name exceeds the %d character limit", domain.MaxNameLength)

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid todo data"

	case errors.Is(err, store.ErrNotFound):
		return "Todo not found"

	case errors.As(err, &connErr):
		return "Service temporarily unavailable"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Check if this is likely a validation error message
	if strings.Contains(errMsg, "Field validation") {
		// Extract the field name and validation tag
		// Example format: "Key: 'CreateTodoRequest.Name' Error:Field validation for 'Name' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	// Fall back to a generic validation error message
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}
