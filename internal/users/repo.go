package users

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ratewise/ratewise-backend/pkg/db/models"
	"github.com/ratewise/ratewise-backend/pkg/enums"
	"github.com/ratewise/ratewise-backend/pkg/listing"
)

// sortColumns maps caller-facing sort fields onto real user columns.
// Anything outside this map falls back to sorting by name.
var sortColumns = map[string]string{
	"name":       "name",
	"email":      "email",
	"address":    "address",
	"role":       "role",
	"created_at": "created_at",
}

// Repository exposes user-related persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByEmail retrieves the user matching the provided email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads a user by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListFilter narrows and orders the admin user directory. All values are
// bound parameters; sort identifiers only ever come from sortColumns.
type ListFilter struct {
	Name      string
	Email     string
	Address   string
	Role      string
	SortBy    string
	SortOrder string
}

// List returns users matching every provided filter, ordered per the
// resolved sort.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.User, error) {
	qb := r.db.WithContext(ctx).Model(&models.User{})

	qb = applySubstring(qb, "name", filter.Name)
	qb = applySubstring(qb, "email", filter.Email)
	qb = applySubstring(qb, "address", filter.Address)
	if role, err := enums.ParseRole(filter.Role); err == nil && filter.Role != "" {
		qb = qb.Where("role = ?", role)
	}

	sort := listing.ResolveSort(sortColumns, filter.SortBy, filter.SortOrder)
	qb = qb.Order(sort.Clause())

	var out []models.User
	if err := qb.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the total number of users.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
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
