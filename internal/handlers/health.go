package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// HealthCheck returns the service status
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"service": "DirectHome Backend",
		"version": "1.0.0",
	})
}
