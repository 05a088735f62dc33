package router

import (
	"log"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/sahilchouksey/datacat/config"
	"github.com/sahilchouksey/datacat/database"
	"github.com/sahilchouksey/datacat/handlers"
	auth_handlers "github.com/sahilchouksey/datacat/handlers/auth"
	contact_handlers "github.com/sahilchouksey/datacat/handlers/contact"
	dataset_handlers "github.com/sahilchouksey/datacat/handlers/dataset"
	"github.com/sahilchouksey/datacat/schema"
	"github.com/sahilchouksey/datacat/utils"
	"github.com/sahilchouksey/datacat/utils/cache"
	"github.com/sahilchouksey/datacat/utils/middleware"
	"github.com/sahilchouksey/datacat/utils/response"
)

func SetupRoutes(app *fiber.App, store database.Storage, getEnv *config.EnviornmentVariable, sch *schema.Schema) {
	// Session store: in-memory by default, Redis-backed when configured
	sessionConfig := session.Config{
		Expiration:     7 * 24 * time.Hour,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	}
	if getEnv.REDIS_URL != "" {
		storage, err := cache.NewRedisStorage(getEnv.REDIS_URL)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis: %v. Sessions will be kept in memory.", err)
		} else {
			sessionConfig.Storage = storage
		}
	}
	sessions := session.New(sessionConfig)

	// Baseline middleware
	middleware.SetupSecurity(app)

	// Static passthrough
	app.Static("/static", getEnv.STATIC_DIR)
	app.Get("/favicon.ico", func(c *fiber.Ctx) error {
		return c.SendFile(filepath.Join(getEnv.STATIC_DIR, "favicon.ico"))
	})

	// Health check endpoint (public)
	app.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, store))

	// Session gate: everything below except its allow-list redirects to
	// the login page without an identity
	gate := middleware.NewSessionGate(sessions)
	app.Use(gate.Handler())

	// Auth routes
	authHandler := auth_handlers.NewAuthHandler(store, sessions, getEnv.AUTH_IMPLICIT_SIGNUP)
	app.Get("/login", authHandler.LoginPage)
	app.Post("/login", authHandler.Login)
	app.Get("/logout", authHandler.Logout)

	// Catalogue routes
	datasetHandler := dataset_handlers.NewDatasetHandler(store, sch, getEnv.SEARCH_LIMIT)
	app.Get("/", datasetHandler.Home)
	app.Post("/searchengine", datasetHandler.Search)
	app.Post("/", datasetHandler.Create)
	app.Put("/", datasetHandler.Update)
	app.Get("/datasets/:id", datasetHandler.View)
	app.Delete("/datasets/:id", datasetHandler.Delete)
	app.Get("/edit/:id", datasetHandler.EditForm)
	app.Post("/reorder", datasetHandler.Reorder)
	app.Get("/demo/slow", datasetHandler.Slow)

	// Inline field validation
	contactHandler := contact_handlers.NewContactHandler(sch)
	app.Post("/contact/email/:field", contactHandler.ValidateField)

	// Anything else is a not-found page
	app.Use(func(c *fiber.Ctx) error {
		return response.NotFoundPage(c)
	})
}
