// Package handlers implements the JSON REST handlers for ProjectBoard.
// This file contains item CRUD and the pending to completed transition that
// drives the progress rollups.
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/avissapr/projectboard/internal/logging"
	"github.com/avissapr/projectboard/internal/models"
	"github.com/avissapr/projectboard/internal/repository"
	"github.com/avissapr/projectboard/internal/services"
)

// ItemHandler handles item-related HTTP requests.
type ItemHandler struct {
	itemRepo    *repository.ItemRepository
	taskRepo    *repository.TaskRepository
	projectRepo *repository.ProjectRepository
	notifier    *services.NotificationService
	logger      *logging.Logger
}

// NewItemHandler creates a new instance of ItemHandler.
func NewItemHandler(notifier *services.NotificationService, logger *logging.Logger) *ItemHandler {
	return &ItemHandler{
		itemRepo:    repository.NewItemRepository(),
		taskRepo:    repository.NewTaskRepository(),
		projectRepo: repository.NewProjectRepository(),
		notifier:    notifier,
		logger:      logger,
	}
}

// ListForTask handles GET /items/task/:taskId and returns the task's items
// with assignee identities, newest first.
func (h *ItemHandler) ListForTask(c *fiber.Ctx) error {
	taskID, err := paramInt(c, "taskId")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid task ID")
	}

	items, err := h.itemRepo.ListByTask(c.Context(), taskID)
	if err != nil {
		return repoError(c, err, "Item")
	}
	if items == nil {
		items = []models.ItemWithAssignee{}
	}
	return c.JSON(items)
}

// Get handles GET /items/:id.
func (h *ItemHandler) Get(c *fiber.Ctx) error {
	id, err := paramInt(c, "id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid item ID")
	}

	item, err := h.itemRepo.FindByID(c.Context(), id)
	if err != nil {
		return repoError(c, err, "Item")
	}
	return c.JSON(item)
}

// Create handles POST /items. Priority defaults to medium when omitted.
// Fires an item-created notification when notify_email is supplied.
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var req models.CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if req.TaskID == 0 || req.Title == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Task ID and title are required")
	}
	if req.Priority == "" {
		req.Priority = models.PriorityMedium
	}
	if err := validatePriority(req.Priority); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}
	if err := validateOptionalEmail(req.NotifyEmail); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	item := &models.Item{
		TaskID:      req.TaskID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		AssignedTo:  req.AssignedTo,
	}
	if err := h.itemRepo.Create(c.Context(), item); err != nil {
		return repoError(c, err, "Item")
	}

	h.logger.Info("item created", logging.Fields{
		"item_id": item.ID,
		"task_id": item.TaskID,
	})

	if req.NotifyEmail != "" {
		h.notifyItemEvent(c, services.EventItemCreated, req.NotifyEmail, item)
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// Update handles PUT /items/:id with a partial update across the editable
// fields.
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id, err := paramInt(c, "id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid item ID")
	}

	var req models.UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Priority != nil {
		if err := validatePriority(*req.Priority); err != nil {
			return errorJSON(c, fiber.StatusBadRequest, err.Error())
		}
	}

	item, err := h.itemRepo.Update(c.Context(), id, req)
	if err != nil {
		return repoError(c, err, "Item")
	}
	return c.JSON(item)
}

// Complete handles POST /items/:id/complete, the one-directional
// pending to completed transition. Completing an already-completed item
// re-stamps completed_at and leaves the counts unchanged. Fires an
// item-completed notification when notify_email is supplied.
func (h *ItemHandler) Complete(c *fiber.Ctx) error {
	id, err := paramInt(c, "id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid item ID")
	}

	// Body is optional; an absent or empty body just means no notification.
	var req models.CompleteItemRequest
	_ = c.BodyParser(&req)
	if err := validateOptionalEmail(req.NotifyEmail); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	item, err := h.itemRepo.Complete(c.Context(), id)
	if err != nil {
		return repoError(c, err, "Item")
	}

	h.logger.Info("item completed", logging.Fields{"item_id": item.ID})

	if req.NotifyEmail != "" {
		h.notifyItemEvent(c, services.EventItemCompleted, req.NotifyEmail, item)
	}

	return c.JSON(item)
}

// Delete handles DELETE /items/:id.
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id, err := paramInt(c, "id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid item ID")
	}

	if err := h.itemRepo.Delete(c.Context(), id); err != nil {
		return repoError(c, err, "Item")
	}

	h.logger.Info("item deleted", logging.Fields{"item_id": id})
	return c.JSON(fiber.Map{"message": "Item deleted successfully"})
}

// notifyItemEvent resolves the task and project names for an item event and
// dispatches it. Lookup failures suppress the email; the mutation already
// succeeded and the response is not affected.
func (h *ItemHandler) notifyItemEvent(c *fiber.Ctx, kind services.EventKind, recipient string, item *models.Item) {
	task, err := h.taskRepo.FindByID(c.Context(), item.TaskID)
	if err != nil {
		return
	}
	project, err := h.projectRepo.FindByID(c.Context(), task.ProjectID)
	if err != nil {
		return
	}

	h.notifier.Dispatch(c.Context(), services.Event{
		Kind:        kind,
		Recipient:   recipient,
		ProjectName: project.Name,
		TaskName:    task.Name,
		ItemName:    item.Title,
	})
}
