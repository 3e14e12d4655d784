package ratings

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ratewise/ratewise-backend/pkg/db/models"
)

// Repository exposes rating persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a ratings repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Upsert records the user's rating for a store, keeping at most one row
// per (user, store) pair. Returns true when a new row was created.
func (r *Repository) Upsert(ctx context.Context, userID, storeID uuid.UUID, rating int) (bool, error) {
	var existing models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		First(&existing).Error

	switch {
	case err == nil:
		updateErr := r.db.WithContext(ctx).
			Model(&models.Rating{}).
			Where("id = ?", existing.ID).
			Update("rating", rating).Error
		return false, updateErr

	case errors.Is(err, gorm.ErrRecordNotFound):
		row := &models.Rating{
			ID:      uuid.New(),
			UserID:  userID,
			StoreID: storeID,
			Rating:  rating,
		}
		// a concurrent insert for the same pair resolves to an update
		createErr := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "store_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
			}).
			Create(row).Error
		return createErr == nil, createErr

	default:
		return false, err
	}
}

// FindByUserAndStore loads the caller's rating for a store.
func (r *Repository) FindByUserAndStore(ctx context.Context, userID, storeID uuid.UUID) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// AggregateForStore computes the store's average and count in SQL.
func (r *Repository) AggregateForStore(ctx context.Context, storeID uuid.UUID) (AggregateDTO, error) {
	var agg AggregateDTO
	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("COALESCE(AVG(rating), 0) AS average_rating, COUNT(id) AS total_ratings").
		Where("store_id = ?", storeID).
		Scan(&agg).Error
	return agg, err
}

// ListForStore returns every rating for the store joined with the rater,
// most recent first.
func (r *Repository) ListForStore(ctx context.Context, storeID uuid.UUID) ([]StoreRatingDTO, error) {
	var out []StoreRatingDTO
	err := r.db.WithContext(ctx).
		Table("ratings r").
		Select("u.name AS user_name, u.email AS user_email, u.address AS user_address, " +
			"r.rating AS rating, r.updated_at AS rated_at").
		Joins("JOIN users u ON u.id = r.user_id").
		Where("r.store_id = ?", storeID).
		Order("r.updated_at desc").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DistributionForStore buckets the store's ratings per star value.
func (r *Repository) DistributionForStore(ctx context.Context, storeID uuid.UUID) (DistributionDTO, error) {
	rows := []struct {
		Rating int
		Total  int64
	}{}
	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("rating, COUNT(id) AS total").
		Where("store_id = ?", storeID).
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return DistributionDTO{}, err
	}

	var dist DistributionDTO
	for _, row := range rows {
		switch row.Rating {
		case 5:
			dist.FiveStar = row.Total
		case 4:
			dist.FourStar = row.Total
		case 3:
			dist.ThreeStar = row.Total
		case 2:
			dist.TwoStar = row.Total
		case 1:
			dist.OneStar = row.Total
		}
	}
	return dist, nil
}

// Count returns the total number of ratings.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Rating{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
