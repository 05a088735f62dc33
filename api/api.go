package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/sahilchouksey/datacat/utils/response"
	"gorm.io/gorm"
)

type APIServer struct {
	app           *fiber.App
	listenAddress string
}

// NewAPIServer builds the Fiber app with the HTML view engine attached.
// Fiber 404s and store lookups by an absent id render the not-found
// page instead of the default plain-text error.
func NewAPIServer(listenAddress string, views *html.Engine) *APIServer {
	app := fiber.New(fiber.Config{
		Views: views,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NotFoundPage(c)
			}
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) && fiberErr.Code == fiber.StatusNotFound {
				return response.NotFoundPage(c)
			}
			return response.ServerError(c, err)
		},
	})

	return &APIServer{
		app:           app,
		listenAddress: listenAddress,
	}
}

func (s *APIServer) GetEngine() *fiber.App {
	return s.app
}

func (s *APIServer) Run() error {
	log.Println("Starting API Server")
	log.Printf("Listening on %s", s.listenAddress)

	return s.app.Listen(s.listenAddress)
}
