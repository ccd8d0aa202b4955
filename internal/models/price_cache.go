package models

import (
	"time"

	"daechul/internal/uuid"

	"gorm.io/gorm"
)

// PriceKind distinguishes cached crypto prices from cached stock prices.
type PriceKind string

const (
	PriceKindCrypto PriceKind = "crypto"
	PriceKindStock  PriceKind = "stock"
)

// PriceCache holds the last known unit price for a symbol, in KRW. Mutation
// operations value balances against this cache; only InitializeAssets and
// RefreshPrices write to it.
type PriceCache struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Kind      PriceKind `gorm:"not null;uniqueIndex:uq_price_cache_kind_symbol" json:"kind"`
	Symbol    string    `gorm:"not null;uniqueIndex:uq_price_cache_kind_symbol" json:"symbol"`
	Price     float64   `gorm:"not null" json:"price"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (p *PriceCache) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New()
	}
	return nil
}
