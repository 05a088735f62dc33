package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/datacat/database"
	"github.com/sahilchouksey/datacat/utils/response"
)

func HandleCheckHealth(c *fiber.Ctx, store database.Storage) error {
	if err := store.HealthCheck(); err != nil {
		return err
	}
	return response.Success(c, fiber.Map{"status": "ok"})
}
