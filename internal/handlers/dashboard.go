package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devansh1234523/whole-sale/internal/services"
)

func GetDashboard(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(svc.Stats())
	}
}
