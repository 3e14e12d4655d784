package bootstrap

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ratewise/ratewise-backend/internal/users"
	"github.com/ratewise/ratewise-backend/pkg/config"
	"github.com/ratewise/ratewise-backend/pkg/db/models"
	"github.com/ratewise/ratewise-backend/pkg/enums"
	"github.com/ratewise/ratewise-backend/pkg/logger"
	"github.com/ratewise/ratewise-backend/pkg/security"
)

type stubSeedRepo struct {
	existing    *models.User
	createErr   error
	createCalls int
	lastDTO     users.CreateUserDTO
}

func (s *stubSeedRepo) FindByEmail(context.Context, string) (*models.User, error) {
	if s.existing == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.existing, nil
}

func (s *stubSeedRepo) Create(_ context.Context, dto users.CreateUserDTO) (*models.User, error) {
	s.createCalls++
	s.lastDTO = dto
	if s.createErr != nil {
		return nil, s.createErr
	}
	return dto.ToModel(), nil
}

func seedPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func seedLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "ratewise-test", Output: io.Discard})
}

func TestSeedAdminSkipsWhenUnconfigured(t *testing.T) {
	repo := &stubSeedRepo{}

	err := SeedAdmin(context.Background(), config.AdminConfig{}, seedPasswordConfig(), repo, seedLogger())
	require.NoError(t, err)
	assert.Zero(t, repo.createCalls)
}

func TestSeedAdminRequiresPassword(t *testing.T) {
	repo := &stubSeedRepo{}
	cfg := config.AdminConfig{Email: "admin@example.com"}

	err := SeedAdmin(context.Background(), cfg, seedPasswordConfig(), repo, seedLogger())
	require.Error(t, err)
	assert.Zero(t, repo.createCalls)
}

func TestSeedAdminSkipsExistingAccount(t *testing.T) {
	repo := &stubSeedRepo{existing: &models.User{ID: uuid.New(), Email: "admin@example.com"}}
	cfg := config.AdminConfig{Email: "Admin@Example.com", Password: "Sunlit!Harbor9"}

	err := SeedAdmin(context.Background(), cfg, seedPasswordConfig(), repo, seedLogger())
	require.NoError(t, err)
	assert.Zero(t, repo.createCalls)
}

func TestSeedAdminCreatesAccount(t *testing.T) {
	repo := &stubSeedRepo{}
	cfg := config.AdminConfig{
		Email:    "Admin@Example.com",
		Password: "Sunlit!Harbor9",
		Name:     "System Administrator",
		Address:  "HQ",
	}

	err := SeedAdmin(context.Background(), cfg, seedPasswordConfig(), repo, seedLogger())
	require.NoError(t, err)
	require.Equal(t, 1, repo.createCalls)
	assert.Equal(t, "admin@example.com", repo.lastDTO.Email)
	assert.Equal(t, enums.RoleAdmin, repo.lastDTO.Role)

	valid, err := security.VerifyPassword("Sunlit!Harbor9", repo.lastDTO.PasswordHash)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestSeedAdminToleratesConcurrentSeed(t *testing.T) {
	repo := &stubSeedRepo{createErr: errDuplicate{}}
	cfg := config.AdminConfig{Email: "admin@example.com", Password: "Sunlit!Harbor9"}

	err := SeedAdmin(context.Background(), cfg, seedPasswordConfig(), repo, seedLogger())
	assert.NoError(t, err)
}

type errDuplicate struct{}

func (errDuplicate) Error() string { return "UNIQUE constraint failed: users.email" }
