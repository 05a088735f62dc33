package utils

import (
	"errors"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/datacat/database"
	"github.com/sahilchouksey/datacat/utils/response"
	"gorm.io/gorm"
)

// MakeHTTPHandleFunc adapts a store-taking handler into a fiber.Handler.
// A gorm "record not found" becomes the 404 page; every other error is a
// 500 envelope.
func MakeHTTPHandleFunc(handler func(c *fiber.Ctx, store database.Storage) error, store database.Storage) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		if err := handler(c, store); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NotFoundPage(c)
			}
			return response.ServerError(c, err)
		}
		return nil
	}
}
