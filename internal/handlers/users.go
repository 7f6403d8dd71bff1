// Package handlers implements the JSON REST handlers for ProjectBoard.
// This file contains user account CRUD handlers.
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/avissapr/projectboard/internal/logging"
	"github.com/avissapr/projectboard/internal/models"
	"github.com/avissapr/projectboard/internal/repository"
)

// UserHandler handles user-related HTTP requests.
type UserHandler struct {
	userRepo *repository.UserRepository
	logger   *logging.Logger
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(logger *logging.Logger) *UserHandler {
	return &UserHandler{
		userRepo: repository.NewUserRepository(),
		logger:   logger,
	}
}

// List handles GET /users and returns all users, newest first.
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userRepo.List(c.Context())
	if err != nil {
		return repoError(c, err, "User")
	}
	if users == nil {
		users = []models.User{}
	}
	return c.JSON(users)
}

// Get handles GET /users/:id.
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := paramInt(c, "id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	user, err := h.userRepo.FindByID(c.Context(), id)
	if err != nil {
		return repoError(c, err, "User")
	}
	return c.JSON(user)
}

// Create handles POST /users.
//
// Validation: name and email are required; email must be well-formed.
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req models.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if req.Name == "" || req.Email == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Email and name are required")
	}
	if err := validateEmail(req.Email); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	user := &models.User{Name: req.Name, Email: req.Email}
	if err := h.userRepo.Create(c.Context(), user); err != nil {
		return repoError(c, err, "User")
	}

	h.logger.Info("user created", logging.Fields{"user_id": user.ID})
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Update handles PUT /users/:id with a partial update.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := paramInt(c, "id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	var req models.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Email != nil {
		if err := validateEmail(*req.Email); err != nil {
			return errorJSON(c, fiber.StatusBadRequest, err.Error())
		}
	}

	user, err := h.userRepo.Update(c.Context(), id, req)
	if err != nil {
		return repoError(c, err, "User")
	}
	return c.JSON(user)
}

// Delete handles DELETE /users/:id. Owned projects disappear through the
// schema cascade; item assignments are nulled.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := paramInt(c, "id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	if err := h.userRepo.Delete(c.Context(), id); err != nil {
		return repoError(c, err, "User")
	}

	h.logger.Info("user deleted", logging.Fields{"user_id": id})
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}
