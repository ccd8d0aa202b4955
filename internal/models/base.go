package models

import (
	"time"

	"daechul/internal/uuid"

	"gorm.io/gorm"
)

// Base holds the id and timestamps shared by the mutable entities. Records
// here are never soft-deleted: the demo store either updates rows in place or
// removes them outright, so there is no DeletedAt column.
type Base struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUIDv7 so primary keys sort by creation time.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}
