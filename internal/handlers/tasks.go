// Package handlers implements the JSON REST handlers for ProjectBoard.
// This file contains task CRUD and the per-project task list with counts.
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/avissapr/projectboard/internal/logging"
	"github.com/avissapr/projectboard/internal/models"
	"github.com/avissapr/projectboard/internal/repository"
	"github.com/avissapr/projectboard/internal/services"
)

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	taskRepo    *repository.TaskRepository
	projectRepo *repository.ProjectRepository
	statsRepo   *repository.StatsRepository
	notifier    *services.NotificationService
	logger      *logging.Logger
}

// NewTaskHandler creates a new instance of TaskHandler.
func NewTaskHandler(notifier *services.NotificationService, logger *logging.Logger) *TaskHandler {
	return &TaskHandler{
		taskRepo:    repository.NewTaskRepository(),
		projectRepo: repository.NewProjectRepository(),
		statsRepo:   repository.NewStatsRepository(),
		notifier:    notifier,
		logger:      logger,
	}
}

// ListForProject handles GET /tasks/project/:projectId and returns the
// project's tasks with their item counts, newest first. A task with zero
// items reports 0/0 and renders as 0% in the UI.
func (h *TaskHandler) ListForProject(c *fiber.Ctx) error {
	projectID, err := paramInt(c, "projectId")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid project ID")
	}

	tasks, err := h.statsRepo.ListTasksWithStats(c.Context(), projectID)
	if err != nil {
		return repoError(c, err, "Task")
	}
	if tasks == nil {
		tasks = []models.TaskWithStats{}
	}
	return c.JSON(tasks)
}

// Get handles GET /tasks/:id and returns the task with live item counts.
func (h *TaskHandler) Get(c *fiber.Ctx) error {
	id, err := paramInt(c, "id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid task ID")
	}

	task, err := h.taskRepo.FindByID(c.Context(), id)
	if err != nil {
		return repoError(c, err, "Task")
	}
	return c.JSON(task)
}

// Create handles POST /tasks. Fires a task-created notification when
// notify_email is supplied; the project name is looked up for the template
// and a failed lookup just suppresses the email.
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	var req models.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if req.ProjectID == 0 || req.Name == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Project ID and name are required")
	}
	if err := validateOptionalEmail(req.NotifyEmail); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	task := &models.Task{
		ProjectID:   req.ProjectID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.taskRepo.Create(c.Context(), task); err != nil {
		return repoError(c, err, "Task")
	}

	h.logger.Info("task created", logging.Fields{
		"task_id":    task.ID,
		"project_id": task.ProjectID,
	})

	if req.NotifyEmail != "" {
		if project, err := h.projectRepo.FindByID(c.Context(), task.ProjectID); err == nil {
			h.notifier.Dispatch(c.Context(), services.Event{
				Kind:        services.EventTaskCreated,
				Recipient:   req.NotifyEmail,
				ProjectName: project.Name,
				TaskName:    task.Name,
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(task)
}

// Update handles PUT /tasks/:id with a partial update.
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	id, err := paramInt(c, "id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid task ID")
	}

	var req models.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	task, err := h.taskRepo.Update(c.Context(), id, req)
	if err != nil {
		return repoError(c, err, "Task")
	}
	return c.JSON(task)
}

// Delete handles DELETE /tasks/:id. Items under the task are removed by the
// schema cascade, so a later item list for the task returns an empty set.
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	id, err := paramInt(c, "id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid task ID")
	}

	if err := h.taskRepo.Delete(c.Context(), id); err != nil {
		return repoError(c, err, "Task")
	}

	h.logger.Info("task deleted", logging.Fields{"task_id": id})
	return c.JSON(fiber.Map{"message": "Task deleted successfully"})
}
