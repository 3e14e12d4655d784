package stores

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ratewise/ratewise-backend/pkg/db/models"
	"github.com/ratewise/ratewise-backend/pkg/listing"
)

// adminSortColumns maps directory sort fields onto the admin listing's
// joined query. Aggregate fields order by their select aliases.
var adminSortColumns = map[string]string{
	"name":           "s.name",
	"email":          "s.email",
	"address":        "s.address",
	"average_rating": "average_rating",
	"total_ratings":  "total_ratings",
	"created_at":     "s.created_at",
}

var userSortColumns = map[string]string{
	"name":           "s.name",
	"address":        "s.address",
	"average_rating": "average_rating",
	"total_ratings":  "total_ratings",
	"created_at":     "s.created_at",
}

// Repository exposes store-related persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a stores repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new store and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateStoreDTO) (*models.Store, error) {
	store := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(store).Error; err != nil {
		return nil, err
	}
	return store, nil
}

// FindByID loads a store by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).First(&store, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// FindByOwner loads the store owned by the given user.
func (r *Repository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).First(&store, "owner_id = ?", ownerID).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// AdminListFilter narrows and orders the admin store directory.
type AdminListFilter struct {
	Name      string
	Email     string
	Address   string
	SortBy    string
	SortOrder string
}

// UserListFilter narrows and orders the shopper store directory.
type UserListFilter struct {
	Name      string
	Address   string
	SortBy    string
	SortOrder string
}

// ListForAdmin returns stores joined with their owner and rating
// aggregate, filtered and ordered per the request.
func (r *Repository) ListForAdmin(ctx context.Context, filter AdminListFilter) ([]AdminStoreDTO, error) {
	qb := r.db.WithContext(ctx).
		Table("stores s").
		Select("s.id AS id, s.name AS name, s.email AS email, s.address AS address, " +
			"u.name AS owner_name, u.email AS owner_email, " +
			"COALESCE(AVG(r.rating), 0) AS average_rating, COUNT(r.id) AS total_ratings, " +
			"s.created_at AS created_at").
		Joins("LEFT JOIN users u ON u.id = s.owner_id").
		Joins("LEFT JOIN ratings r ON r.store_id = s.id").
		Group("s.id, s.name, s.email, s.address, u.name, u.email, s.created_at")

	qb = applySubstring(qb, "s.name", filter.Name)
	qb = applySubstring(qb, "s.email", filter.Email)
	qb = applySubstring(qb, "s.address", filter.Address)

	sort := listing.ResolveSort(adminSortColumns, filter.SortBy, filter.SortOrder)
	qb = qb.Order(sort.Clause())

	var out []AdminStoreDTO
	if err := qb.Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListForUser returns stores with their aggregate plus the caller's own
// rating (null when the caller has not rated the store).
func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID, filter UserListFilter) ([]UserStoreDTO, error) {
	qb := r.db.WithContext(ctx).
		Table("stores s").
		Select("s.id AS id, s.name AS name, s.address AS address, "+
			"COALESCE(AVG(r.rating), 0) AS average_rating, COUNT(r.id) AS total_ratings, "+
			"mine.rating AS user_rating").
		Joins("LEFT JOIN ratings r ON r.store_id = s.id").
		Joins("LEFT JOIN ratings mine ON mine.store_id = s.id AND mine.user_id = ?", userID).
		Group("s.id, s.name, s.address, s.created_at, mine.rating")

	qb = applySubstring(qb, "s.name", filter.Name)
	qb = applySubstring(qb, "s.address", filter.Address)

	sort := listing.ResolveSort(userSortColumns, filter.SortBy, filter.SortOrder)
	qb = qb.Order(sort.Clause())

	var out []UserStoreDTO
	if err := qb.Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the total number of stores.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Store{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func applySubstring(qb *gorm.DB, column, value string) *gorm.DB {
	if value == "" {
		return qb
	}
	return qb.Where("LOWER("+column+") LIKE ?", listing.SubstringPattern(value))
}
