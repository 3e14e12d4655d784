package users

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ratewise/ratewise-backend/pkg/db/models"
	"github.com/ratewise/ratewise-backend/pkg/enums"
)

func setupUsersTestDB(t *testing.T) *gorm.DB {
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
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedDirectoryUser(t *testing.T, db *gorm.DB, name, email, address string, role enums.Role) uuid.UUID {
	t.Helper()

	user := models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: "hash",
		Address:      address,
		Role:         role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

func TestCreateAndFindByEmail(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateUserDTO{
		Name:         "Alexandra Quinn Harrington",
		Email:        "alexandra@example.com",
		PasswordHash: "hash",
		Address:      "1 Test Way",
		Role:         enums.RoleUser,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	found, err := repo.FindByEmail(ctx, "alexandra@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListFiltersCaseInsensitiveSubstring(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedDirectoryUser(t, db, "Alexandra Quinn Harrington", "alexandra@example.com", "12 Birch Lane", enums.RoleUser)
	seedDirectoryUser(t, db, "Benjamin Oliver Castellano", "benjamin@example.com", "9 Oak Street", enums.RoleUser)

	rows, err := repo.List(ctx, ListFilter{Name: "HARRING"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "alexandra@example.com", rows[0].Email)

	rows, err = repo.List(ctx, ListFilter{Address: "oak"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "benjamin@example.com", rows[0].Email)
}

func TestListFiltersByRole(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedDirectoryUser(t, db, "Alexandra Quinn Harrington", "admin@example.com", "HQ", enums.RoleAdmin)
	seedDirectoryUser(t, db, "Benjamin Oliver Castellano", "owner@example.com", "Shopfront", enums.RoleStoreOwner)

	rows, err := repo.List(ctx, ListFilter{Role: "store_owner"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, enums.RoleStoreOwner, rows[0].Role)

	// unknown roles are ignored rather than matching nothing
	rows, err = repo.List(ctx, ListFilter{Role: "superuser"})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestListSortRejectsUnknownColumns(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedDirectoryUser(t, db, "Zachary Benjamin Holloway", "zachary@example.com", "A", enums.RoleUser)
	seedDirectoryUser(t, db, "Alexandra Quinn Harrington", "alexandra@example.com", "B", enums.RoleUser)

	// hostile sort input degrades to the default name ordering
	rows, err := repo.List(ctx, ListFilter{SortBy: "name; DROP TABLE users--", SortOrder: "asc"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "alexandra@example.com", rows[0].Email)
	assert.Equal(t, "zachary@example.com", rows[1].Email)

	rows, err = repo.List(ctx, ListFilter{SortBy: "email", SortOrder: "desc"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "zachary@example.com", rows[0].Email)
}

func TestOwnedStoreSummary(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	ownerID := seedDirectoryUser(t, db, "Benjamin Oliver Castellano", "owner@example.com", "Shopfront", enums.RoleStoreOwner)
	storeID := uuid.New()
	require.NoError(t, db.Create(&models.Store{
		ID:      storeID,
		Name:    "Corner Grocer",
		Email:   "grocer@example.com",
		Address: "2 Market St",
		OwnerID: &ownerID,
	}).Error)

	summary, err := repo.OwnedStoreSummary(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, storeID, summary.ID)
	assert.Equal(t, 0.0, summary.AverageRating)
	assert.Equal(t, int64(0), summary.TotalRatings)

	raterID := seedDirectoryUser(t, db, "Alexandra Quinn Harrington", "rater@example.com", "1 Test Way", enums.RoleUser)
	require.NoError(t, db.Create(&models.Rating{
		ID: uuid.New(), UserID: raterID, StoreID: storeID, Rating: 4,
	}).Error)

	summary, err = repo.OwnedStoreSummary(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, summary.AverageRating)
	assert.Equal(t, int64(1), summary.TotalRatings)
}

func TestOwnedStoreSummaryNoStore(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)

	_, err := repo.OwnedStoreSummary(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
