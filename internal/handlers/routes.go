// Package handlers implements the JSON REST handlers for ProjectBoard.
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/avissapr/projectboard/internal/logging"
	"github.com/avissapr/projectboard/internal/services"
)

// RegisterRoutes wires every API route onto the app. Kept here so the
// server and the handler tests run the identical route table.
func RegisterRoutes(app *fiber.App, notifier *services.NotificationService, logger *logging.Logger) {
	userHandler := NewUserHandler(logger)
	projectHandler := NewProjectHandler(notifier, logger)
	taskHandler := NewTaskHandler(notifier, logger)
	itemHandler := NewItemHandler(notifier, logger)

	app.Get("/health", Health)

	app.Get("/users", userHandler.List)
	app.Post("/users", userHandler.Create)
	app.Get("/users/:id", userHandler.Get)
	app.Put("/users/:id", userHandler.Update)
	app.Delete("/users/:id", userHandler.Delete)

	app.Get("/projects/user/:userId", projectHandler.ListForUser)
	app.Post("/projects", projectHandler.Create)
	app.Get("/projects/:id", projectHandler.Get)
	app.Put("/projects/:id", projectHandler.Update)
	app.Delete("/projects/:id", projectHandler.Delete)
	app.Post("/projects/:id/close", projectHandler.Close)
	app.Get("/projects/:id/members", projectHandler.ListMembers)
	app.Post("/projects/:id/members", projectHandler.AddMember)
	app.Delete("/projects/:id/members/:userId", projectHandler.RemoveMember)

	app.Get("/tasks/project/:projectId", taskHandler.ListForProject)
	app.Post("/tasks", taskHandler.Create)
	app.Get("/tasks/:id", taskHandler.Get)
	app.Put("/tasks/:id", taskHandler.Update)
	app.Delete("/tasks/:id", taskHandler.Delete)

	app.Get("/items/task/:taskId", itemHandler.ListForTask)
	app.Post("/items", itemHandler.Create)
	app.Get("/items/:id", itemHandler.Get)
	app.Put("/items/:id", itemHandler.Update)
	app.Delete("/items/:id", itemHandler.Delete)
	app.Post("/items/:id/complete", itemHandler.Complete)
}
