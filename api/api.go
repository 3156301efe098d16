package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type APIServer struct {
	app           *fiber.App
	listenAddress string
}

func NewAPIServer(listenAddress string) *APIServer {
	return &APIServer{
		app: fiber.New(fiber.Config{
			AppName:   "study-abroad-cms",
			BodyLimit: 12 * 1024 * 1024, // room for a 10MB image plus form overhead
		}),
		listenAddress: listenAddress,
	}
}

func (s *APIServer) GetEngine() *fiber.App {
	return s.app
}

func (s *APIServer) Run() error {
	log.Info().Str("address", s.listenAddress).Msg("starting API server")

	return s.app.Listen(s.listenAddress)
}
