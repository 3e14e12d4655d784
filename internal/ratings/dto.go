package ratings

import (
	"time"

	"github.com/google/uuid"
)

// AggregateDTO is the rating summary for a store. A store with no ratings
// reports a 0.0 average and a 0 count, never null.
type AggregateDTO struct {
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int64   `json:"total_ratings"`
}

// StoreRatingDTO is one rating row on the owner dashboard, joined with
// the rater's public profile fields.
type StoreRatingDTO struct {
	UserName    string    `json:"user_name"`
	UserEmail   string    `json:"user_email"`
	UserAddress string    `json:"user_address"`
	Rating      int       `json:"rating"`
	RatedAt     time.Time `json:"rated_at"`
}

// DistributionDTO buckets a store's ratings per star value.
type DistributionDTO struct {
	FiveStar  int64 `json:"five_star"`
	FourStar  int64 `json:"four_star"`
	ThreeStar int64 `json:"three_star"`
	TwoStar   int64 `json:"two_star"`
	OneStar   int64 `json:"one_star"`
}

// OwnerStoreDTO is the owner's store header with its aggregate.
type OwnerStoreDTO struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Address string    `json:"address"`
	AggregateDTO
}

// OwnerDashboardDTO is the store-owner dashboard payload.
type OwnerDashboardDTO struct {
	Store   OwnerStoreDTO    `json:"store"`
	Ratings []StoreRatingDTO `json:"ratings"`
}

// OwnerStatsDTO is the store-owner stats payload.
type OwnerStatsDTO struct {
	Store        OwnerStoreDTO   `json:"store"`
	Distribution DistributionDTO `json:"distribution"`
}
