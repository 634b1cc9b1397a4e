package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler checks database connectivity.
func HealthHandler(pinger Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := pinger.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "database unreachable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
