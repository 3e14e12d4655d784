package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/ratewise/ratewise-backend/internal/users"
	"github.com/ratewise/ratewise-backend/pkg/config"
	"github.com/ratewise/ratewise-backend/pkg/db"
	"github.com/ratewise/ratewise-backend/pkg/db/models"
	"github.com/ratewise/ratewise-backend/pkg/enums"
	"github.com/ratewise/ratewise-backend/pkg/logger"
	"github.com/ratewise/ratewise-backend/pkg/security"
)

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
}

// SeedAdmin creates the initial administrator account at startup when one
// is configured and no user with that email exists yet.
func SeedAdmin(ctx context.Context, cfg config.AdminConfig, passwordCfg config.PasswordConfig, repo userRepository, logg *logger.Logger) error {
	email := strings.ToLower(strings.TrimSpace(cfg.Email))
	if email == "" {
		return nil
	}
	if cfg.Password == "" {
		return fmt.Errorf("admin seed: password is required when RATEWISE_ADMIN_EMAIL is set")
	}

	_, err := repo.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("admin seed: check existing user: %w", err)
	}

	hash, err := security.HashPassword(cfg.Password, passwordCfg)
	if err != nil {
		return fmt.Errorf("admin seed: hash password: %w", err)
	}

	if _, err := repo.Create(ctx, users.CreateUserDTO{
		Name:         cfg.Name,
		Email:        email,
		PasswordHash: hash,
		Address:      cfg.Address,
		Role:         enums.RoleAdmin,
	}); err != nil {
		// a concurrent replica may have seeded first
		if db.IsUniqueViolation(err, "") {
			return nil
		}
		return fmt.Errorf("admin seed: create user: %w", err)
	}

	logg.Info(logg.WithField(ctx, "email", email), "seeded initial admin account")
	return nil
}
