package app

import (
	"fmt"
	"os"

	"github.com/gofiber/template/html/v2"
	"github.com/sahilchouksey/datacat/api"
	"github.com/sahilchouksey/datacat/config"
	"github.com/sahilchouksey/datacat/database"
	"github.com/sahilchouksey/datacat/router"
	"github.com/sahilchouksey/datacat/schema"
	"github.com/sahilchouksey/datacat/services/cron"
	"gorm.io/gorm"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Load and validate the form schema before anything else: a bad
	// question file is a configuration error and the process must not boot
	sch, err := schema.Load(getEnv.SCHEMA_CSV)
	if err != nil {
		print("Failed to load the form schema file\n")
		return err
	}

	// Initialize GORM database connection
	store, err := database.StartGORM()
	if err != nil {
		print("Check the database configuration\n")
		print("The default is a local SQLite file; set DB_DRIVER=postgres for PostgreSQL\n")
		return err
	}

	if err := store.Init(); err != nil {
		print("Failed to initialize database tables\n")
		return err
	}

	// Initialize Cron Manager (only if enabled via environment variable)
	var cronManager *cron.CronManager
	if os.Getenv("CRON_ENABLED") != "false" { // Default to enabled
		db, ok := store.GetDB().(*gorm.DB)
		if !ok {
			print("Warning: Failed to get database connection for cron jobs\n")
		} else {
			cronManager = cron.NewCronManager(db)
			if err := cronManager.Start(); err != nil {
				print("Warning: Failed to start cron jobs\n")
				print("Error: ", err.Error(), "\n")
				// Don't fail the app, just log the warning
			}
		}
	}

	// Defer Closing DB and stopping cron jobs
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		store.Close()
	}()

	// Init API with the HTML view engine
	views := html.New(getEnv.VIEWS_DIR, ".html")
	var server *api.APIServer = api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT), views)
	app := server.GetEngine()

	// Setup Routes
	router.SetupRoutes(app, store, getEnv, sch)

	// Get the PORT & Start the Server
	return server.Run()
}
