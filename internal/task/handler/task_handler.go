package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	authhandler "github.com/taskflow-app/taskflow/internal/auth/handler"
	taskerror "github.com/taskflow-app/taskflow/internal/errors"
	"github.com/taskflow-app/taskflow/internal/task/dto"
	"github.com/taskflow-app/taskflow/internal/task/service"
)

type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func taskError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, taskerror.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, taskerror.ErrTaskNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "task not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "internal server error"})
	}
}

func (h *TaskHandler) Create(c *fiber.Ctx) error {
	var input dto.TaskInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid input"})
	}

	task, err := h.taskService.Create(c.Context(), authhandler.UserID(c), input)
	if err != nil {
		return taskError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(task)
}

func (h *TaskHandler) List(c *fiber.Ctx) error {
	tasks, err := h.taskService.List(c.Context(), authhandler.UserID(c))
	if err != nil {
		return taskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(tasks)
}

func (h *TaskHandler) Update(c *fiber.Ctx) error {
	var input dto.TaskInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid input"})
	}

	task, err := h.taskService.Update(c.Context(), authhandler.UserID(c), c.Params("id"), input)
	if err != nil {
		return taskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(task)
}

func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	if err := h.taskService.Delete(c.Context(), authhandler.UserID(c), c.Params("id")); err != nil {
		return taskError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
