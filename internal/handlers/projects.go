// Package handlers implements the JSON REST handlers for ProjectBoard.
// This file contains project CRUD, the close transition, the stat-enriched
// dashboard list and project membership management.
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/avissapr/projectboard/internal/logging"
	"github.com/avissapr/projectboard/internal/models"
	"github.com/avissapr/projectboard/internal/repository"
	"github.com/avissapr/projectboard/internal/services"
)

// ProjectHandler handles project-related HTTP requests.
//
// Notifications fired here (project-created, project-closed) are dispatched
// synchronously after the mutation commits; the boolean outcome is logged
// and never affects the response.
type ProjectHandler struct {
	projectRepo *repository.ProjectRepository
	memberRepo  *repository.MemberRepository
	statsRepo   *repository.StatsRepository
	userRepo    *repository.UserRepository
	notifier    *services.NotificationService
	logger      *logging.Logger
}

// NewProjectHandler creates a new instance of ProjectHandler.
func NewProjectHandler(notifier *services.NotificationService, logger *logging.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectRepo: repository.NewProjectRepository(),
		memberRepo:  repository.NewMemberRepository(),
		statsRepo:   repository.NewStatsRepository(),
		userRepo:    repository.NewUserRepository(),
		notifier:    notifier,
		logger:      logger,
	}
}

// ListForUser handles GET /projects/user/:userId and returns every project
// the user owns or is a member of, each with aggregate counts, newest first.
func (h *ProjectHandler) ListForUser(c *fiber.Ctx) error {
	userID, err := paramInt(c, "userId")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	projects, err := h.statsRepo.ListProjectsWithStats(c.Context(), userID)
	if err != nil {
		return repoError(c, err, "Project")
	}
	if projects == nil {
		projects = []models.ProjectWithStats{}
	}
	return c.JSON(projects)
}

// Get handles GET /projects/:id and returns the project with its owner
// identity and a progress block derived from live item rows.
func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	id, err := paramInt(c, "id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid project ID")
	}

	detail, err := h.projectRepo.FindByID(c.Context(), id)
	if err != nil {
		return repoError(c, err, "Project")
	}

	stats, err := h.statsRepo.GetProjectStats(c.Context(), id)
	if err != nil {
		return repoError(c, err, "Project")
	}

	detail.Progress = models.Progress{
		TotalTasks:     stats.TotalTasks,
		TotalItems:     stats.TotalItems,
		CompletedItems: stats.CompletedItems,
		Percentage:     repository.Percentage(stats.TotalItems, stats.CompletedItems),
	}
	return c.JSON(detail)
}

// Create handles POST /projects. Fires a project-created notification when
// notify_email is supplied.
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var req models.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if req.Name == "" || req.OwnerID == 0 {
		return errorJSON(c, fiber.StatusBadRequest, "Name and owner_id are required")
	}
	if err := validateOptionalEmail(req.NotifyEmail); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	project := &models.Project{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     req.OwnerID,
	}
	if err := h.projectRepo.Create(c.Context(), project); err != nil {
		return repoError(c, err, "Project")
	}

	h.logger.Info("project created", logging.Fields{
		"project_id": project.ID,
		"owner_id":   project.OwnerID,
	})

	if req.NotifyEmail != "" {
		event := services.Event{
			Kind:        services.EventProjectCreated,
			Recipient:   req.NotifyEmail,
			ProjectName: project.Name,
		}
		// Address the owner by name when the lookup succeeds.
		if owner, err := h.userRepo.FindByID(c.Context(), project.OwnerID); err == nil {
			event.UserName = owner.Name
		}
		h.notifier.Dispatch(c.Context(), event)
	}

	return c.Status(fiber.StatusCreated).JSON(project)
}

// Update handles PUT /projects/:id with a partial update.
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	id, err := paramInt(c, "id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid project ID")
	}

	var req models.UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	project, err := h.projectRepo.Update(c.Context(), id, req)
	if err != nil {
		return repoError(c, err, "Project")
	}
	return c.JSON(project)
}

// Close handles POST /projects/:id/close, the terminal active to closed
// transition. Closing an already-closed project re-stamps closed_at. Fires
// a project-closed notification when notify_email is supplied.
func (h *ProjectHandler) Close(c *fiber.Ctx) error {
	id, err := paramInt(c, "id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid project ID")
	}

	// Body is optional; an absent or empty body just means no notification.
	var req models.CloseProjectRequest
	_ = c.BodyParser(&req)
	if err := validateOptionalEmail(req.NotifyEmail); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	project, err := h.projectRepo.Close(c.Context(), id)
	if err != nil {
		return repoError(c, err, "Project")
	}

	h.logger.Info("project closed", logging.Fields{"project_id": project.ID})

	if req.NotifyEmail != "" {
		event := services.Event{
			Kind:        services.EventProjectClosed,
			Recipient:   req.NotifyEmail,
			ProjectName: project.Name,
		}
		if owner, err := h.userRepo.FindByID(c.Context(), project.OwnerID); err == nil {
			event.UserName = owner.Name
		}
		h.notifier.Dispatch(c.Context(), event)
	}

	return c.JSON(project)
}

// Delete handles DELETE /projects/:id. Tasks and items under the project
// are removed by the schema cascade.
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	id, err := paramInt(c, "id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid project ID")
	}

	if err := h.projectRepo.Delete(c.Context(), id); err != nil {
		return repoError(c, err, "Project")
	}

	h.logger.Info("project deleted", logging.Fields{"project_id": id})
	return c.JSON(fiber.Map{"message": "Project deleted successfully"})
}

// ListMembers handles GET /projects/:id/members.
func (h *ProjectHandler) ListMembers(c *fiber.Ctx) error {
	id, err := paramInt(c, "id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid project ID")
	}

	members, err := h.memberRepo.ListMembers(c.Context(), id)
	if err != nil {
		return repoError(c, err, "Project")
	}
	if members == nil {
		members = []models.MemberWithUser{}
	}
	return c.JSON(members)
}

// AddMember handles POST /projects/:id/members. Adding an existing member
// is a no-op.
func (h *ProjectHandler) AddMember(c *fiber.Ctx) error {
	id, err := paramInt(c, "id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid project ID")
	}

	var req models.AddMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.UserID == 0 {
		return errorJSON(c, fiber.StatusBadRequest, "user_id is required")
	}

	if err := h.memberRepo.AddMember(c.Context(), id, req.UserID); err != nil {
		return repoError(c, err, "Project")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Member added"})
}

// RemoveMember handles DELETE /projects/:id/members/:userId.
func (h *ProjectHandler) RemoveMember(c *fiber.Ctx) error {
	id, err := paramInt(c, "id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid project ID")
	}
	userID, err := paramInt(c, "userId")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	if err := h.memberRepo.RemoveMember(c.Context(), id, userID); err != nil {
		return repoError(c, err, "Member")
	}

	return c.JSON(fiber.Map{"message": "Member removed"})
}
