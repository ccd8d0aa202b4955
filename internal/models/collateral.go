package models

import (
	"time"

	"daechul/internal/uuid"

	"gorm.io/gorm"
)

// CollateralType distinguishes pledged brokerage accounts from pledged tokens.
type CollateralType string

const (
	CollateralTypeStock  CollateralType = "stock"
	CollateralTypeCrypto CollateralType = "crypto"
)

// CollateralItem is a pledge record, distinct from the Token or StockAccount
// it references. RefID holds the stock account slug for stock pledges and the
// token symbol for crypto pledges; at most one item exists per RefID. Value is
// the valuation cached at pledge time and is deliberately not marked to market
// by price refreshes.
//
// No Base embed: released pledges are removed outright (hard delete) so the
// RefID uniqueness constraint allows the same asset to be pledged again later.
type CollateralItem struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	Type      CollateralType `gorm:"not null" json:"type"`
	RefID     string         `gorm:"uniqueIndex;not null" json:"ref_id"`
	Amount    float64        `gorm:"not null;default:0" json:"amount,omitempty"` // crypto only, cumulative pledged quantity
	Value     float64        `gorm:"not null;default:0" json:"value"`            // KRW valuation at pledge time
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (c *CollateralItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New()
	}
	return nil
}
