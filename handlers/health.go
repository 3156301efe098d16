package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/studyabroad/cms-api/database"
	"github.com/studyabroad/cms-api/utils/response"
)

func HandleCheckHealth(c *fiber.Ctx, store database.Storage) error {
	if err := store.HealthCheck(); err != nil {
		return response.ServiceUnavailable(c, "Database unavailable")
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
