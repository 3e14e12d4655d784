package ratings

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ratewise/ratewise-backend/pkg/db/models"
	pkgerrors "github.com/ratewise/ratewise-backend/pkg/errors"
)

type stubRatingsRepo struct {
	upsertCalls   int
	upsertCreated bool
	lastRating    int
	rating        *models.Rating
	agg           AggregateDTO
	rows          []StoreRatingDTO
	dist          DistributionDTO
}

func (s *stubRatingsRepo) Upsert(_ context.Context, _, _ uuid.UUID, rating int) (bool, error) {
	s.upsertCalls++
	s.lastRating = rating
	return s.upsertCreated, nil
}

func (s *stubRatingsRepo) FindByUserAndStore(context.Context, uuid.UUID, uuid.UUID) (*models.Rating, error) {
	if s.rating == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.rating, nil
}

func (s *stubRatingsRepo) AggregateForStore(context.Context, uuid.UUID) (AggregateDTO, error) {
	return s.agg, nil
}

func (s *stubRatingsRepo) ListForStore(context.Context, uuid.UUID) ([]StoreRatingDTO, error) {
	return s.rows, nil
}

func (s *stubRatingsRepo) DistributionForStore(context.Context, uuid.UUID) (DistributionDTO, error) {
	return s.dist, nil
}

type stubStoresReader struct {
	store *models.Store
	owned *models.Store
}

func (s *stubStoresReader) FindByID(context.Context, uuid.UUID) (*models.Store, error) {
	if s.store == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.store, nil
}

func (s *stubStoresReader) FindByOwner(context.Context, uuid.UUID) (*models.Store, error) {
	if s.owned == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.owned, nil
}

func knownStore() *models.Store {
	return &models.Store{
		ID:      uuid.New(),
		Name:    "Corner Grocer",
		Email:   "grocer@example.com",
		Address: "2 Market St",
	}
}

func TestSubmitRejectsOutOfRangeRatings(t *testing.T) {
	repo := &stubRatingsRepo{}
	svc, err := NewService(repo, &stubStoresReader{store: knownStore()})
	require.NoError(t, err)

	for _, score := range []int{0, 6, -1, 100} {
		_, err := svc.Submit(context.Background(), uuid.New(), uuid.New(), score)
		require.Error(t, err, "score %d", score)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
		assert.Equal(t, "rating must be between 1 and 5", typed.Message())
	}
	assert.Zero(t, repo.upsertCalls)
}

func TestSubmitUnknownStore(t *testing.T) {
	repo := &stubRatingsRepo{}
	svc, err := NewService(repo, &stubStoresReader{})
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), uuid.New(), uuid.New(), 3)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "store not found", typed.Message())
	assert.Zero(t, repo.upsertCalls)
}

func TestSubmitReportsCreatedAndUpdated(t *testing.T) {
	repo := &stubRatingsRepo{upsertCreated: true}
	svc, err := NewService(repo, &stubStoresReader{store: knownStore()})
	require.NoError(t, err)

	created, err := svc.Submit(context.Background(), uuid.New(), uuid.New(), 5)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 5, repo.lastRating)

	repo.upsertCreated = false
	created, err = svc.Submit(context.Background(), uuid.New(), uuid.New(), 1)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestGetUserRating(t *testing.T) {
	reader := &stubStoresReader{store: knownStore()}

	svc, err := NewService(&stubRatingsRepo{}, reader)
	require.NoError(t, err)

	value, err := svc.GetUserRating(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, value)

	svc, err = NewService(&stubRatingsRepo{rating: &models.Rating{Rating: 4}}, reader)
	require.NoError(t, err)

	value, err = svc.GetUserRating(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	require.NotNil(t, value)
	assert.Equal(t, 4, *value)
}

func TestAggregateForStoreRoundsAverage(t *testing.T) {
	repo := &stubRatingsRepo{agg: AggregateDTO{AverageRating: 4.3333333, TotalRatings: 3}}
	svc, err := NewService(repo, &stubStoresReader{store: knownStore()})
	require.NoError(t, err)

	agg, err := svc.AggregateForStore(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 4.3, agg.AverageRating)
	assert.Equal(t, int64(3), agg.TotalRatings)
}

func TestOwnerDashboardWithoutStore(t *testing.T) {
	svc, err := NewService(&stubRatingsRepo{}, &stubStoresReader{})
	require.NoError(t, err)

	_, err = svc.OwnerDashboard(context.Background(), uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "no store on record for this account", typed.Message())
}

func TestOwnerDashboard(t *testing.T) {
	owned := knownStore()
	repo := &stubRatingsRepo{
		agg:  AggregateDTO{AverageRating: 3.75, TotalRatings: 4},
		rows: []StoreRatingDTO{{UserEmail: "rater@example.com", Rating: 4}},
	}
	svc, err := NewService(repo, &stubStoresReader{owned: owned})
	require.NoError(t, err)

	dash, err := svc.OwnerDashboard(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, owned.ID, dash.Store.ID)
	assert.Equal(t, 3.8, dash.Store.AverageRating)
	assert.Equal(t, int64(4), dash.Store.TotalRatings)
	require.Len(t, dash.Ratings, 1)
	assert.Equal(t, "rater@example.com", dash.Ratings[0].UserEmail)
}

func TestOwnerStats(t *testing.T) {
	owned := knownStore()
	repo := &stubRatingsRepo{
		agg:  AggregateDTO{AverageRating: 4.5, TotalRatings: 2},
		dist: DistributionDTO{FiveStar: 1, FourStar: 1},
	}
	svc, err := NewService(repo, &stubStoresReader{owned: owned})
	require.NoError(t, err)

	stats, err := svc.OwnerStats(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, owned.Name, stats.Store.Name)
	assert.Equal(t, int64(1), stats.Distribution.FiveStar)
	assert.Equal(t, int64(1), stats.Distribution.FourStar)
	assert.Equal(t, int64(0), stats.Distribution.OneStar)
}
