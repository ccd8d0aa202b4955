// Package testutil provides helpers for setting up test databases and fixtures.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"daechul/internal/models"
)

var testDBCounter atomic.Int64

// SetupTestDB creates an isolated in-memory SQLite database with the full
// schema migrated. The database is torn down automatically when the test ends.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Each test gets its own named in-memory database so parallel tests
	// cannot see each other's state.
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get underlying DB: %v", err)
	}
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	err = db.AutoMigrate(
		&models.User{},
		&models.Token{},
		&models.StockAccount{},
		&models.StockHolding{},
		&models.CollateralItem{},
		&models.Loan{},
		&models.LedgerEntry{},
		&models.PriceCache{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}
