// Package middleware provides HTTP middleware for the ProjectBoard server.
package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/avissapr/projectboard/internal/logging"
)

// RequestIDKey is the locals key and response header carrying the per-request id.
const RequestIDKey = "request_id"

// RequestLogger returns a middleware that tags each request with a UUID and
// logs method, path, status and duration after the handler chain completes.
// Handler errors are passed through unchanged so the fiber error handler
// still renders them; the entry logs the status the client actually saw.
func RequestLogger(logger *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := uuid.NewString()
		c.Locals(RequestIDKey, requestID)
		c.Set("X-Request-ID", requestID)

		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		fields := logging.Fields{
			"request_id": requestID,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"duration":   time.Since(start).String(),
		}

		if status >= fiber.StatusInternalServerError {
			logger.Error("request failed", err, fields)
		} else {
			logger.Info("request", fields)
		}

		return err
	}
}
