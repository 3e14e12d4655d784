package users

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ratewise/ratewise-backend/pkg/config"
	"github.com/ratewise/ratewise-backend/pkg/db"
	"github.com/ratewise/ratewise-backend/pkg/db/models"
	"github.com/ratewise/ratewise-backend/pkg/enums"
	pkgerrors "github.com/ratewise/ratewise-backend/pkg/errors"
	"github.com/ratewise/ratewise-backend/pkg/security"
)

type usersRepository interface {
	Create(ctx context.Context, dto CreateUserDTO) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context, filter ListFilter) ([]models.User, error)
	OwnedStoreSummary(ctx context.Context, ownerID uuid.UUID) (*OwnedStoreDTO, error)
}

// Service exposes admin-facing user operations.
type Service interface {
	Create(ctx context.Context, input CreateUserInput) (*UserDTO, error)
	List(ctx context.Context, filter ListFilter) ([]UserDTO, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*UserDetailDTO, error)
}

type service struct {
	repo        usersRepository
	passwordCfg config.PasswordConfig
}

// NewService builds a user service with the provided repository.
func NewService(repo usersRepository, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo, passwordCfg: passwordCfg}, nil
}

// CreateUserInput captures the admin user-creation payload.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Address  string
	Role     enums.Role
}

func (s *service) Create(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	if !input.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}
	if err := security.ValidatePassword(input.Password); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.repo.Create(ctx, CreateUserDTO{
		Name:         input.Name,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		Address:      input.Address,
		Role:         input.Role,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}

	return FromModel(user), nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]UserDTO, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}

	out := make([]UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) GetDetail(ctx context.Context, id uuid.UUID) (*UserDetailDTO, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find user")
	}

	detail := &UserDetailDTO{UserDTO: *FromModel(user)}
	if user.Role != enums.RoleStoreOwner {
		return detail, nil
	}

	store, err := s.repo.OwnedStoreSummary(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return detail, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load owned store")
	}
	store.AverageRating = roundRating(store.AverageRating)
	detail.Store = store
	return detail, nil
}

func roundRating(value float64) float64 {
	return math.Round(value*10) / 10
}
