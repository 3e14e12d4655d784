package ratings

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ratewise/ratewise-backend/pkg/db/models"
	"github.com/ratewise/ratewise-backend/pkg/enums"
)

func setupRatingsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  address TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'user',
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS stores (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  address TEXT NOT NULL,
  owner_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS ratings (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  store_id TEXT NOT NULL,
  rating INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_ratings_user_store ON ratings(user_id, store_id);`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedRater(t *testing.T, db *gorm.DB, name, email string) uuid.UUID {
	t.Helper()

	user := models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: "hash",
		Address:      "1 Test Way",
		Role:         enums.RoleUser,
	}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

func seedRatedStore(t *testing.T, db *gorm.DB, email string) uuid.UUID {
	t.Helper()

	store := models.Store{
		ID:      uuid.New(),
		Name:    "Corner Grocer",
		Email:   email,
		Address: "2 Market St",
	}
	require.NoError(t, db.Create(&store).Error)
	return store.ID
}

func TestUpsertCreatesThenUpdates(t *testing.T) {
	db := setupRatingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := seedRater(t, db, "Alexandra Quinn Harrington", "alexandra@example.com")
	storeID := seedRatedStore(t, db, "grocer@example.com")

	created, err := repo.Upsert(ctx, userID, storeID, 4)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Upsert(ctx, userID, storeID, 2)
	require.NoError(t, err)
	assert.False(t, created)

	var rows []models.Rating
	require.NoError(t, db.Where("user_id = ? AND store_id = ?", userID, storeID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].Rating)
}

func TestAggregateForStoreEmpty(t *testing.T) {
	db := setupRatingsTestDB(t)
	repo := NewRepository(db)

	storeID := seedRatedStore(t, db, "empty@example.com")

	agg, err := repo.AggregateForStore(context.Background(), storeID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, agg.AverageRating)
	assert.Equal(t, int64(0), agg.TotalRatings)
}

func TestAggregateForStore(t *testing.T) {
	db := setupRatingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	storeID := seedRatedStore(t, db, "busy@example.com")
	first := seedRater(t, db, "Alexandra Quinn Harrington", "first@example.com")
	second := seedRater(t, db, "Benjamin Oliver Castellano", "second@example.com")

	_, err := repo.Upsert(ctx, first, storeID, 4)
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, second, storeID, 5)
	require.NoError(t, err)

	agg, err := repo.AggregateForStore(ctx, storeID)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, agg.AverageRating, 0.001)
	assert.Equal(t, int64(2), agg.TotalRatings)
}

func TestFindByUserAndStoreMissing(t *testing.T) {
	db := setupRatingsTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FindByUserAndStore(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListForStoreOrdersRecentFirst(t *testing.T) {
	db := setupRatingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	storeID := seedRatedStore(t, db, "list@example.com")
	older := seedRater(t, db, "Alexandra Quinn Harrington", "older@example.com")
	newer := seedRater(t, db, "Benjamin Oliver Castellano", "newer@example.com")

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&models.Rating{
		ID: uuid.New(), UserID: older, StoreID: storeID, Rating: 3,
		CreatedAt: base, UpdatedAt: base,
	}).Error)
	require.NoError(t, db.Create(&models.Rating{
		ID: uuid.New(), UserID: newer, StoreID: storeID, Rating: 5,
		CreatedAt: base.Add(time.Hour), UpdatedAt: base.Add(time.Hour),
	}).Error)

	rows, err := repo.ListForStore(ctx, storeID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "newer@example.com", rows[0].UserEmail)
	assert.Equal(t, 5, rows[0].Rating)
	assert.Equal(t, "older@example.com", rows[1].UserEmail)
}

func TestDistributionForStore(t *testing.T) {
	db := setupRatingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	storeID := seedRatedStore(t, db, "dist@example.com")
	scores := []int{5, 5, 4, 1}
	for i, score := range scores {
		raterID := seedRater(t, db, "Distribution Test Rater Name",
			fmt.Sprintf("rater%d@example.com", i))
		_, err := repo.Upsert(ctx, raterID, storeID, score)
		require.NoError(t, err)
	}

	dist, err := repo.DistributionForStore(ctx, storeID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), dist.FiveStar)
	assert.Equal(t, int64(1), dist.FourStar)
	assert.Equal(t, int64(0), dist.ThreeStar)
	assert.Equal(t, int64(0), dist.TwoStar)
	assert.Equal(t, int64(1), dist.OneStar)
}

func TestRatingsCount(t *testing.T) {
	db := setupRatingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	storeID := seedRatedStore(t, db, "count@example.com")
	raterID := seedRater(t, db, "Counting Test Rater Fullname", "count-rater@example.com")
	_, err = repo.Upsert(ctx, raterID, storeID, 3)
	require.NoError(t, err)

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
