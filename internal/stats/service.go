package stats

import (
	"context"
	"fmt"

	pkgerrors "github.com/ratewise/ratewise-backend/pkg/errors"
)

type counter interface {
	Count(ctx context.Context) (int64, error)
}

// DashboardDTO is the admin dashboard payload.
type DashboardDTO struct {
	TotalUsers   int64 `json:"total_users"`
	TotalStores  int64 `json:"total_stores"`
	TotalRatings int64 `json:"total_ratings"`
}

// Service exposes platform-wide counters for the admin dashboard.
type Service interface {
	Dashboard(ctx context.Context) (*DashboardDTO, error)
}

type service struct {
	users   counter
	stores  counter
	ratings counter
}

// NewService builds a stats service over the three entity counters.
func NewService(users, stores, ratings counter) (Service, error) {
	if users == nil || stores == nil || ratings == nil {
		return nil, fmt.Errorf("users, stores and ratings counters required")
	}
	return &service{users: users, stores: stores, ratings: ratings}, nil
}

func (s *service) Dashboard(ctx context.Context) (*DashboardDTO, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count users")
	}
	totalStores, err := s.stores.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count stores")
	}
	totalRatings, err := s.ratings.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count ratings")
	}

	return &DashboardDTO{
		TotalUsers:   totalUsers,
		TotalStores:  totalStores,
		TotalRatings: totalRatings,
	}, nil
}
