package stores

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ratewise/ratewise-backend/pkg/db"
	"github.com/ratewise/ratewise-backend/pkg/db/models"
	"github.com/ratewise/ratewise-backend/pkg/enums"
	pkgerrors "github.com/ratewise/ratewise-backend/pkg/errors"
)

type storeRepository interface {
	Create(ctx context.Context, dto CreateStoreDTO) (*models.Store, error)
	ListForAdmin(ctx context.Context, filter AdminListFilter) ([]AdminStoreDTO, error)
	ListForUser(ctx context.Context, userID uuid.UUID, filter UserListFilter) ([]UserStoreDTO, error)
}

type usersReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Service exposes store directory and admin store operations.
type Service interface {
	Create(ctx context.Context, input CreateStoreInput) (*StoreDTO, error)
	ListForAdmin(ctx context.Context, filter AdminListFilter) ([]AdminStoreDTO, error)
	ListForUser(ctx context.Context, userID uuid.UUID, filter UserListFilter) ([]UserStoreDTO, error)
}

type service struct {
	repo  storeRepository
	users usersReader
}

// NewService builds a store service with the provided repositories.
func NewService(repo storeRepository, users usersReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	if users == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo, users: users}, nil
}

// CreateStoreInput captures the admin store-creation payload.
type CreateStoreInput struct {
	Name    string
	Email   string
	Address string
	OwnerID *uuid.UUID
}

func (s *service) Create(ctx context.Context, input CreateStoreInput) (*StoreDTO, error) {
	if input.OwnerID != nil {
		owner, err := s.users.FindByID(ctx, *input.OwnerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find owner")
		}
		if owner.Role != enums.RoleStoreOwner {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner must have the store_owner role")
		}
	}

	store, err := s.repo.Create(ctx, CreateStoreDTO{
		Name:    input.Name,
		Email:   strings.ToLower(strings.TrimSpace(input.Email)),
		Address: input.Address,
		OwnerID: input.OwnerID,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "store email already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create store")
	}

	return FromModel(store), nil
}

func (s *service) ListForAdmin(ctx context.Context, filter AdminListFilter) ([]AdminStoreDTO, error) {
	rows, err := s.repo.ListForAdmin(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stores")
	}
	for i := range rows {
		rows[i].AverageRating = roundRating(rows[i].AverageRating)
	}
	return rows, nil
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID, filter UserListFilter) ([]UserStoreDTO, error) {
	rows, err := s.repo.ListForUser(ctx, userID, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stores")
	}
	for i := range rows {
		rows[i].AverageRating = roundRating(rows[i].AverageRating)
	}
	return rows, nil
}

func roundRating(value float64) float64 {
	return math.Round(value*10) / 10
}
