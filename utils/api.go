package utils

import (
	fiber "github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/studyabroad/cms-api/database"
	"github.com/studyabroad/cms-api/utils/response"
)

// MakeHTTPHandleFunc adapts a handler that needs the store into a fiber.Handler.
// Errors it returns are logged and rendered as a 500 envelope.
func MakeHTTPHandleFunc(handler func(c *fiber.Ctx, store database.Storage) error, store database.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := handler(c, store); err != nil {
			log.Error().Err(err).Str("path", c.Path()).Msg("handler failed")
			return response.InternalServerError(c, err.Error())
		}
		return nil
	}
}
