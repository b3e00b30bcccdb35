// Package api handles incoming HTTP requests, request validation, and
// response formatting. It acts as an adapter between external clients and
// the internal application services, translating HTTP concerns to business
// operations.
//
// The package serves two surfaces over the same service layer: HTML pages
// for browsers (the task list and its add form) and a JSON API. Errors are
// mapped to status codes and sanitized messages here; raw error details
// never reach a response body.
package api
