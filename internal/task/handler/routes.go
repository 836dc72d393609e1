package handler

import (
	"github.com/gofiber/fiber/v2"

	authhandler "github.com/taskflow-app/taskflow/internal/auth/handler"
	"github.com/taskflow-app/taskflow/internal/auth/service"
)

func RegisterRoutes(app *fiber.App, h *TaskHandler, tokens service.TokenGenerator) {
	todos := app.Group("/todos", authhandler.RequireAuth(tokens))
	todos.Post("/", h.Create)
	todos.Get("/", h.List)
	todos.Put("/:id", h.Update)
	todos.Delete("/:id", h.Delete)
}
