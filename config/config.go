package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// This function will Load the ENVIORNMENT VARIABLES from .env if GO_ENV variable is not set
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		if err != nil {
			return err
		}
	}

	return nil
}

type EnviornmentVariable struct {
	// All variables
	GO_ENV string
	PORT   int
	// Database configuration. DB_DRIVER selects "sqlite" (default, local
	// file-backed store) or "postgres".
	DB_DRIVER    string
	DB_PATH      string // sqlite database file
	DB_USER_NAME string
	DB_PASSWORD  string
	DB_NAME      string
	DB_HOST      string
	DB_PORT      string
	DB_SSL_MODE  string
	// Session configuration
	REDIS_URL string // optional; sessions fall back to in-memory storage
	// Form schema configuration
	SCHEMA_CSV string
	// Auth behaviour
	AUTH_IMPLICIT_SIGNUP bool // first login for an unseen name creates the account
	// Presentation
	VIEWS_DIR    string
	STATIC_DIR   string
	SEARCH_LIMIT int
}

func Get() (*EnviornmentVariable, error) {

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080
	}

	// Database defaults
	dbDriver := os.Getenv("DB_DRIVER")
	if dbDriver == "" {
		dbDriver = "sqlite"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "data/udatasets.db"
	}

	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}

	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "5432"
	}

	schemaCSV := os.Getenv("SCHEMA_CSV")
	if schemaCSV == "" {
		schemaCSV = "data/questions.csv"
	}

	viewsDir := os.Getenv("VIEWS_DIR")
	if viewsDir == "" {
		viewsDir = "views"
	}

	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "static"
	}

	searchLimit, err := strconv.Atoi(os.Getenv("SEARCH_LIMIT"))
	if err != nil {
		searchLimit = 10
	}

	// Implicit signup is the historical behaviour; set AUTH_IMPLICIT_SIGNUP=false
	// to require accounts to exist before login.
	implicitSignup := os.Getenv("AUTH_IMPLICIT_SIGNUP") != "false"

	envVariables := &EnviornmentVariable{
		GO_ENV: os.Getenv("GO_ENV"),
		PORT:   port,
		// Database
		DB_DRIVER:    dbDriver,
		DB_PATH:      dbPath,
		DB_USER_NAME: os.Getenv("DB_USER_NAME"),
		DB_PASSWORD:  os.Getenv("DB_PASSWORD"),
		DB_NAME:      os.Getenv("DB_NAME"),
		DB_HOST:      dbHost,
		DB_PORT:      dbPort,
		DB_SSL_MODE:  os.Getenv("DB_SSL_MODE"),
		// Sessions
		REDIS_URL: os.Getenv("REDIS_URL"),
		// Form schema
		SCHEMA_CSV: schemaCSV,
		// Auth
		AUTH_IMPLICIT_SIGNUP: implicitSignup,
		// Presentation
		VIEWS_DIR:    viewsDir,
		STATIC_DIR:   staticDir,
		SEARCH_LIMIT: searchLimit,
	}

	return envVariables, nil
}
