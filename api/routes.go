package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes mounts the public and protected endpoint groups.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Get("/projects/{projectID}", handlers.projectHandler.getProject())

		r.Post("/users", handlers.userHandler.register())
		r.Post("/users/login", handlers.userHandler.login())
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)

		r.Post("/projects", handlers.projectHandler.createProject())
		r.Put("/projects/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/projects/{projectID}", handlers.projectHandler.deleteProject())

		r.Get("/users", handlers.userHandler.getAllUsers())
		r.Get("/users/{userID}", handlers.userHandler.getUser())
		r.Put("/users/update", handlers.userHandler.updateUser())
		r.Delete("/users/delete", handlers.userHandler.deleteUser())
	})
}
