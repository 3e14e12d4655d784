package stores

import (
	"time"

	"github.com/google/uuid"

	"github.com/ratewise/ratewise-backend/pkg/db/models"
)

// StoreDTO is the bare transport shape for a store row.
type StoreDTO struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Address   string     `json:"address"`
	OwnerID   *uuid.UUID `json:"owner_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// AdminStoreDTO is the admin directory row: store joined with its owner
// and rating aggregate.
type AdminStoreDTO struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	OwnerName     *string   `json:"owner_name,omitempty"`
	OwnerEmail    *string   `json:"owner_email,omitempty"`
	AverageRating float64   `json:"average_rating"`
	TotalRatings  int64     `json:"total_ratings"`
	CreatedAt     time.Time `json:"created_at"`
}

// UserStoreDTO is the shopper directory row: aggregate plus the caller's
// own rating, null when they have not rated the store yet.
type UserStoreDTO struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	AverageRating float64   `json:"average_rating"`
	TotalRatings  int64     `json:"total_ratings"`
	UserRating    *int      `json:"user_rating"`
}

// CreateStoreDTO holds the data required by the repo to persist a store.
type CreateStoreDTO struct {
	Name    string
	Email   string
	Address string
	OwnerID *uuid.UUID
}

func FromModel(s *models.Store) *StoreDTO {
	if s == nil {
		return nil
	}

	return &StoreDTO{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Address:   s.Address,
		OwnerID:   s.OwnerID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (c CreateStoreDTO) ToModel() *models.Store {
	return &models.Store{
		ID:      uuid.New(),
		Name:    c.Name,
		Email:   c.Email,
		Address: c.Address,
		OwnerID: c.OwnerID,
	}
}
