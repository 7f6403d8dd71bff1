// Package handlers implements the JSON REST handlers for ProjectBoard.
// This file holds the shared response helpers used across all handler files.
package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/avissapr/projectboard/internal/repository"
)

// errorJSON builds the uniform error body used by every non-2xx response.
func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// repoError maps a repository failure onto the API error taxonomy:
// ErrNotFound becomes a 404 with "<resource> not found", anything else a 500
// carrying the storage error message.
func repoError(c *fiber.Ctx, err error, resource string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return errorJSON(c, fiber.StatusNotFound, resource+" not found")
	}
	return errorJSON(c, fiber.StatusInternalServerError, err.Error())
}

// paramInt parses an integer URL parameter.
func paramInt(c *fiber.Ctx, name string) (int, error) {
	return strconv.Atoi(c.Params(name))
}
