package users

import (
	"context"

	"github.com/google/uuid"
)

type ownedStoreRow struct {
	ID            uuid.UUID
	Name          string
	AverageRating float64
	TotalRatings  int64
}

// OwnedStoreSummary loads the store owned by the given user together with
// its rating aggregate. Returns gorm.ErrRecordNotFound when the user owns
// no store.
func (r *Repository) OwnedStoreSummary(ctx context.Context, ownerID uuid.UUID) (*OwnedStoreDTO, error) {
	var row ownedStoreRow
	err := r.db.WithContext(ctx).
		Table("stores s").
		Select("s.id AS id, s.name AS name, COALESCE(AVG(r.rating), 0) AS average_rating, COUNT(r.id) AS total_ratings").
		Joins("LEFT JOIN ratings r ON r.store_id = s.id").
		Where("s.owner_id = ?", ownerID).
		Group("s.id, s.name").
		Take(&row).Error
	if err != nil {
		return nil, err
	}

	return &OwnedStoreDTO{
		ID:            row.ID,
		Name:          row.Name,
		AverageRating: row.AverageRating,
		TotalRatings:  row.TotalRatings,
	}, nil
}
