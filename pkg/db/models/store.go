package models

import (
	"time"

	"github.com/google/uuid"
)

// Store represents a rateable storefront. OwnerID, when set, must reference
// a user whose role is store_owner; the services enforce that invariant.
type Store struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name      string     `gorm:"column:name;not null"`
	Email     string     `gorm:"type:text;not null;uniqueIndex"`
	Address   string     `gorm:"column:address;not null"`
	OwnerID   *uuid.UUID `gorm:"column:owner_id;type:uuid;index"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
