package database

import (
	"fmt"
	"time"

	"daechul/internal/logger"
	"daechul/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// allModels is the list of GORM models the schema is built from.
var allModels = []interface{}{
	&models.User{},
	&models.Token{},
	&models.StockAccount{},
	&models.StockHolding{},
	&models.CollateralItem{},
	&models.Loan{},
	&models.LedgerEntry{},
	&models.PriceCache{},
}

// Manager handles database operations
type Manager struct {
	db *gorm.DB
}

// NewManager opens the configured database. The sqlite driver uses a shared
// in-memory database so every connection in the pool sees the same state.
func NewManager(config *Config) (*Manager, error) {
	var db *gorm.DB
	var err error

	switch config.Driver {
	case DriverPostgres:
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  config.DSN(),
			PreferSimpleProtocol: true,
		}), &gorm.Config{})
	default:
		db, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	if config.Driver == DriverPostgres {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	} else {
		// The shared in-memory database disappears when its last connection
		// closes; keep one open for the process lifetime.
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	}

	return &Manager{db: db}, nil
}

// Migrate builds the schema from the model definitions. The store is
// memory-first, so AutoMigrate owns the schema outright.
func (m *Manager) Migrate() error {
	logger.Get().Info("Running schema migration...")
	if err := m.db.AutoMigrate(allModels...); err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}
	logger.Get().Info("Schema migration completed successfully")
	return nil
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}
