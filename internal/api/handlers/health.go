package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// Health handles the health check endpoint
func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
	})
}
