package models

import (
	"time"

	"financehouse/internal/uuid"

	"gorm.io/gorm"
)

// Base contains common columns for all tables. CreatedAt is immutable after
// insert and UpdatedAt advances on every save, which is the audit-trail
// guarantee the services rely on. DeletedAt backs the explicit maintenance
// purge path only; domain soft-deletes use each aggregate's IsActive flag.
type Base struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}
