package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kestrelworks/tasklist-api/internal/api"
	apimiddleware "github.com/kestrelworks/tasklist-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. It accepts the application dependencies to create handlers
// and register routes. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apimiddleware.NewTraceMiddleware(app.logger))

	// Create handlers using the application's services
	pageHandler := api.NewPageHandler(app.todoService, app.renderer, app.logger)
	todoHandler := api.NewTodoHandler(app.todoService, app.logger)
	healthHandler := api.NewHealthHandler(app.healthChecker, app.logger)

	// Browser-facing pages
	r.Get("/", pageHandler.Index)
	r.Post("/add", pageHandler.AddTodo)

	// Health check endpoint for orchestrators
	r.Get("/health", healthHandler.Check)

	// JSON API
	r.Route("/api", func(r chi.Router) {
		r.Get("/todos", todoHandler.ListTodos)
		r.Post("/todos", todoHandler.CreateTodo)
	})

	return r
}
