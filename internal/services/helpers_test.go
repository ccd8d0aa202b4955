package services

import (
	"testing"

	"gorm.io/gorm"

	"daechul/internal/models"
)

// testutilDB wraps a test database with ledger assertions shared across the
// service tests.
type testutilDB struct {
	db *gorm.DB
}

// assertLedgerEntry fails unless exactly one completed entry with the given
// type and token label exists.
func (h *testutilDB) assertLedgerEntry(t *testing.T, entryType models.LedgerEntryType, token string) {
	t.Helper()
	var entries []models.LedgerEntry
	err := h.db.Where("type = ? AND token = ?", entryType, token).Find(&entries).Error
	if err != nil {
		t.Fatalf("failed to query ledger: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly 1 ledger entry (%s, %s), got %d", entryType, token, len(entries))
	}
	if entries[0].Status != models.LedgerEntryCompleted {
		t.Errorf("expected completed status, got %s", entries[0].Status)
	}
}
