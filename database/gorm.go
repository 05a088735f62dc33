package database

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sahilchouksey/datacat/config"
	"github.com/sahilchouksey/datacat/model"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Storage is the owned persistence handle passed to request handlers.
// Every dataset operation is scoped to an owner name; a record another
// user owns behaves exactly like a record that does not exist.
type Storage interface {
	Init() error
	Close() error
	GetDB() interface{}
	HealthCheck() error

	GetUser(name string) (model.User, error)
	CreateUser(user model.User) error

	ListDatasets(owner, query string, limit int) ([]model.Dataset, error)
	GetDataset(owner string, id uint) (model.Dataset, error)
	CreateDataset(dataset *model.Dataset) error
	UpdateDataset(owner string, dataset model.Dataset) error
	DeleteDataset(owner string, id uint) error
	ReorderDatasets(owner string, ids []uint) error
}

type GORMStore struct {
	db *gorm.DB
}

// StartGORM opens the configured database. The default is a local
// file-backed SQLite store; set DB_DRIVER=postgres for PostgreSQL.
func StartGORM() (*GORMStore, error) {
	getEnv, err := config.Get()
	if err != nil {
		return nil, err
	}

	var dialector gorm.Dialector
	switch getEnv.DB_DRIVER {
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			getEnv.DB_HOST,
			getEnv.DB_USER_NAME,
			getEnv.DB_PASSWORD,
			getEnv.DB_NAME,
			getEnv.DB_PORT,
			getEnv.DB_SSL_MODE,
		)
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(getEnv.DB_PATH)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", getEnv.DB_DRIVER)
	}

	// Configure GORM logger
	gormLogger := logger.Default.LogMode(logger.Info)
	if getEnv.GO_ENV == "production" {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: false,
	})
	if err != nil {
		log.Println("Unable to connect to the database with GORM:", err)
		return nil, err
	}

	// Get underlying *sql.DB to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Printf("Successfully connected to %s database with GORM.", getEnv.DB_DRIVER)

	return &GORMStore{db: db}, nil
}

// NewGORMStore wraps an already-open connection. Used by tests.
func NewGORMStore(db *gorm.DB) *GORMStore {
	return &GORMStore{db: db}
}

// Init runs the AutoMigrate to create/update tables
func (s *GORMStore) Init() error {
	log.Println("Running GORM AutoMigrate for all models...")

	err := s.db.AutoMigrate(
		&model.User{},
		&model.Dataset{},
		&model.CronJobLog{},
	)
	if err != nil {
		log.Println("Error running AutoMigrate:", err)
		return err
	}

	return nil
}

// Close closes the database connection
func (s *GORMStore) Close() error {
	log.Println("Closing database connection...")
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB returns the GORM DB instance for use in services
func (s *GORMStore) GetDB() interface{} {
	return s.db
}

// HealthCheck verifies the database connection is alive
func (s *GORMStore) HealthCheck() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// GetUser fetches an account by name
func (s *GORMStore) GetUser(name string) (model.User, error) {
	var user model.User
	result := s.db.First(&user, "name = ?", name)
	return user, result.Error
}

// CreateUser inserts a new account
func (s *GORMStore) CreateUser(user model.User) error {
	result := s.db.Create(&user)
	return result.Error
}

// escapeLike neutralizes pattern metacharacters in a user-supplied
// substring query before it is wrapped in %...%.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// ListDatasets returns the owner's records ordered by priority, optionally
// filtered to those whose title or details contain query as a substring.
// A limit of zero or below returns the full set.
func (s *GORMStore) ListDatasets(owner, query string, limit int) ([]model.Dataset, error) {
	var datasets []model.Dataset

	tx := s.db.Where("owner = ?", owner).Order("priority, id")
	if query != "" {
		pattern := "%" + escapeLike(query) + "%"
		tx = tx.Where(`title LIKE ? ESCAPE '\' OR details LIKE ? ESCAPE '\'`, pattern, pattern)
	}
	if limit > 0 {
		tx = tx.Limit(limit)
	}

	result := tx.Find(&datasets)
	return datasets, result.Error
}

// GetDataset fetches one of the owner's records by id
func (s *GORMStore) GetDataset(owner string, id uint) (model.Dataset, error) {
	var dataset model.Dataset
	result := s.db.Where("owner = ?", owner).First(&dataset, id)
	return dataset, result.Error
}

// CreateDataset inserts a new record. Priority is left at the column
// default and normalized by the next reorder.
func (s *GORMStore) CreateDataset(dataset *model.Dataset) error {
	result := s.db.Create(dataset)
	return result.Error
}

// UpdateDataset overwrites the stored columns of one of the owner's
// records in place. Zero values (an unchecked done box, cleared details)
// are written too.
func (s *GORMStore) UpdateDataset(owner string, dataset model.Dataset) error {
	result := s.db.Model(&model.Dataset{}).
		Where("id = ? AND owner = ?", dataset.ID, owner).
		Updates(map[string]interface{}{
			"title":            dataset.Title,
			"details":          dataset.Details,
			"done":             dataset.Done,
			"answers":          dataset.Answers,
			"last_modified_by": dataset.LastModifiedBy,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteDataset removes one of the owner's records by id
func (s *GORMStore) DeleteDataset(owner string, id uint) error {
	result := s.db.Where("owner = ?", owner).Delete(&model.Dataset{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReorderDatasets rewrites the priority column to match the submitted id
// order: the id at position i gets priority i. The rewrite runs in a
// single transaction so concurrent drags never interleave half-applied.
// Stale or duplicated ids are not detected; last write wins per id.
func (s *GORMStore) ReorderDatasets(owner string, ids []uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			if err := tx.Model(&model.Dataset{}).
				Where("id = ? AND owner = ?", id, owner).
				Update("priority", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
