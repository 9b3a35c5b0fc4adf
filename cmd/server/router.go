package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"taskboard/internal/api"
	apimiddleware "taskboard/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)
	projectHandler := api.NewProjectHandler(app.projectStore, app.notifier, app.logger)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	tagHandler := api.NewTagHandler(app.tagStore, app.logger)
	commentHandler := api.NewCommentHandler(app.commentStore, app.taskService, app.notifier, app.logger)
	analyticsHandler := api.NewAnalyticsHandler(app.analyticsService, app.logger)
	wsHandler := api.NewWSHandler(app.registry, app.jwtService, app.logger)
	healthHandler := api.NewHealthHandler(app.db, app.rdb)

	r.Route("/api/v1", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(app.authMiddleware.Authenticate)

			r.Get("/users", userHandler.ListUsers)
			r.Get("/users/me", userHandler.GetProfile)
			r.Patch("/users/me", userHandler.UpdateProfile)
			r.Delete("/users/me", userHandler.DeleteAccount)
			r.Get("/users/{id}", userHandler.GetUser)

			r.Get("/projects", projectHandler.ListProjects)
			r.Post("/projects", projectHandler.CreateProject)
			r.Get("/projects/{id}", projectHandler.GetProject)
			r.Patch("/projects/{id}", projectHandler.UpdateProject)
			r.Delete("/projects/{id}", projectHandler.DeleteProject)

			r.Get("/tasks", taskHandler.ListTasks)
			r.Post("/tasks", taskHandler.CreateTask)
			r.Get("/tasks/{id}", taskHandler.GetTask)
			r.Patch("/tasks/{id}", taskHandler.UpdateTask)
			r.Delete("/tasks/{id}", taskHandler.DeleteTask)

			r.Get("/tasks/{id}/comments", commentHandler.ListComments)
			r.Post("/tasks/{id}/comments", commentHandler.CreateComment)
			r.Delete("/comments/{id}", commentHandler.DeleteComment)

			r.Get("/tags", tagHandler.ListTags)
			r.Post("/tags", tagHandler.CreateTag)
			r.Delete("/tags/{id}", tagHandler.DeleteTag)

			r.Get("/analytics/dashboard", analyticsHandler.Dashboard)
			r.Get("/analytics/productivity", analyticsHandler.Productivity)
		})
	})

	// Live updates authenticate via query parameter inside the handler.
	r.Get("/ws", wsHandler.Serve)

	r.Get("/health", healthHandler.Health)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
