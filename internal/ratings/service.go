package ratings

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ratewise/ratewise-backend/pkg/db/models"
	pkgerrors "github.com/ratewise/ratewise-backend/pkg/errors"
)

// MinRating and MaxRating bound the accepted score. Zero is rejected;
// there is no remove-rating operation.
const (
	MinRating = 1
	MaxRating = 5
)

type ratingsRepository interface {
	Upsert(ctx context.Context, userID, storeID uuid.UUID, rating int) (bool, error)
	FindByUserAndStore(ctx context.Context, userID, storeID uuid.UUID) (*models.Rating, error)
	AggregateForStore(ctx context.Context, storeID uuid.UUID) (AggregateDTO, error)
	ListForStore(ctx context.Context, storeID uuid.UUID) ([]StoreRatingDTO, error)
	DistributionForStore(ctx context.Context, storeID uuid.UUID) (DistributionDTO, error)
}

type storesReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Store, error)
}

// Service exposes rating submission and store-owner reporting.
type Service interface {
	Submit(ctx context.Context, userID, storeID uuid.UUID, rating int) (created bool, err error)
	GetUserRating(ctx context.Context, userID, storeID uuid.UUID) (*int, error)
	AggregateForStore(ctx context.Context, storeID uuid.UUID) (AggregateDTO, error)
	OwnerDashboard(ctx context.Context, ownerID uuid.UUID) (*OwnerDashboardDTO, error)
	OwnerStats(ctx context.Context, ownerID uuid.UUID) (*OwnerStatsDTO, error)
}

type service struct {
	repo   ratingsRepository
	stores storesReader
}

// NewService builds a ratings service with the provided repositories.
func NewService(repo ratingsRepository, stores storesReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ratings repository required")
	}
	if stores == nil {
		return nil, fmt.Errorf("stores repository required")
	}
	return &service{repo: repo, stores: stores}, nil
}

func (s *service) Submit(ctx context.Context, userID, storeID uuid.UUID, rating int) (bool, error) {
	if rating < MinRating || rating > MaxRating {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}

	if err := s.requireStore(ctx, storeID); err != nil {
		return false, err
	}

	created, err := s.repo.Upsert(ctx, userID, storeID, rating)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save rating")
	}
	return created, nil
}

func (s *service) GetUserRating(ctx context.Context, userID, storeID uuid.UUID) (*int, error) {
	if err := s.requireStore(ctx, storeID); err != nil {
		return nil, err
	}

	rating, err := s.repo.FindByUserAndStore(ctx, userID, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find rating")
	}
	value := rating.Rating
	return &value, nil
}

func (s *service) AggregateForStore(ctx context.Context, storeID uuid.UUID) (AggregateDTO, error) {
	agg, err := s.repo.AggregateForStore(ctx, storeID)
	if err != nil {
		return AggregateDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate ratings")
	}
	agg.AverageRating = roundRating(agg.AverageRating)
	return agg, nil
}

func (s *service) OwnerDashboard(ctx context.Context, ownerID uuid.UUID) (*OwnerDashboardDTO, error) {
	store, err := s.ownedStore(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	header, err := s.storeHeader(ctx, store)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListForStore(ctx, store.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list store ratings")
	}

	return &OwnerDashboardDTO{Store: header, Ratings: rows}, nil
}

func (s *service) OwnerStats(ctx context.Context, ownerID uuid.UUID) (*OwnerStatsDTO, error) {
	store, err := s.ownedStore(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	header, err := s.storeHeader(ctx, store)
	if err != nil {
		return nil, err
	}

	dist, err := s.repo.DistributionForStore(ctx, store.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "bucket store ratings")
	}

	return &OwnerStatsDTO{Store: header, Distribution: dist}, nil
}

func (s *service) requireStore(ctx context.Context, storeID uuid.UUID) error {
	if _, err := s.stores.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find store")
	}
	return nil
}

func (s *service) ownedStore(ctx context.Context, ownerID uuid.UUID) (*models.Store, error) {
	store, err := s.stores.FindByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no store on record for this account")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find owned store")
	}
	return store, nil
}

func (s *service) storeHeader(ctx context.Context, store *models.Store) (OwnerStoreDTO, error) {
	agg, err := s.AggregateForStore(ctx, store.ID)
	if err != nil {
		return OwnerStoreDTO{}, err
	}
	return OwnerStoreDTO{
		ID:           store.ID,
		Name:         store.Name,
		Email:        store.Email,
		Address:      store.Address,
		AggregateDTO: agg,
	}, nil
}

func roundRating(value float64) float64 {
	return math.Round(value*10) / 10
}
