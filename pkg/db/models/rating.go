package models

import (
	"time"

	"github.com/google/uuid"
)

// RatingPairConstraint names the composite uniqueness constraint that keeps
// at most one rating row per (user, store) pair.
const RatingPairConstraint = "idx_ratings_user_store"

// Rating is a single user's 1..5 score for a store.
type Rating struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_ratings_user_store"`
	StoreID   uuid.UUID `gorm:"column:store_id;type:uuid;not null;uniqueIndex:idx_ratings_user_store"`
	Rating    int       `gorm:"column:rating;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
