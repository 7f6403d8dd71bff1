// Package handlers implements the JSON REST handlers for ProjectBoard.
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/avissapr/projectboard/internal/database"
)

// Health handles GET /health, the liveness probe. Reports degraded with a
// 503 when the database pool is unreachable.
func Health(c *fiber.Ctx) error {
	if err := database.DB.Ping(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":   "degraded",
			"database": "unreachable",
		})
	}
	return c.JSON(fiber.Map{
		"status":   "ok",
		"database": "connected",
	})
}
