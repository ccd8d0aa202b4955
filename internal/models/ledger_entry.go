package models

import (
	"time"

	"daechul/internal/uuid"

	"gorm.io/gorm"
)

// LedgerEntryType represents the kind of activity an entry records.
type LedgerEntryType string

const (
	LedgerEntryBorrow        LedgerEntryType = "borrow"
	LedgerEntryRepay         LedgerEntryType = "repay"
	LedgerEntryCollateralAdd LedgerEntryType = "collateral_add"
	LedgerEntrySwap          LedgerEntryType = "swap"
	LedgerEntrySend          LedgerEntryType = "send"
	LedgerEntryReceive       LedgerEntryType = "receive"
)

// LedgerEntryStatus represents the settlement state of an entry.
type LedgerEntryStatus string

const (
	LedgerEntryPending   LedgerEntryStatus = "pending"
	LedgerEntryCompleted LedgerEntryStatus = "completed"
	LedgerEntryFailed    LedgerEntryStatus = "failed"
)

// LedgerEntry is an immutable audit record appended by every mutating
// operation. Append-only time-series data: no Base embed, no soft deletes,
// never updated.
type LedgerEntry struct {
	ID        string            `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string            `gorm:"type:uuid;not null" json:"user_id"`
	Type      LedgerEntryType   `gorm:"not null" json:"type"`
	Amount    float64           `gorm:"not null" json:"amount"`
	Token     string            `gorm:"not null" json:"token"` // token symbol, brokerage name, or swap label
	Timestamp time.Time         `gorm:"not null" json:"timestamp"`
	Status    LedgerEntryStatus `gorm:"not null;default:'completed'" json:"status"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (e *LedgerEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New()
	}
	return nil
}
