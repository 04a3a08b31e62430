package rate

import (
	"context"

	"github.com/jkorir/maziwa/pkg/apperr"
)

// ErrNoActiveRate is returned when no milk rate has been configured yet
var ErrNoActiveRate = apperr.NotFound("no active milk rate configured")

// Service handles milk rate business logic
type Service struct {
	repo *Repository
}

// NewService creates a new rate service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// GetCurrentRate returns the rate in effect right now
func (s *Service) GetCurrentRate(ctx context.Context) (*MilkRate, error) {
	rate, err := s.repo.GetCurrent(ctx)
	if err != nil {
		return nil, apperr.Database("failed to get current rate", err)
	}
	if rate == nil {
		return nil, ErrNoActiveRate
	}
	return rate, nil
}

// SetRate closes the current rate and opens a new one
func (s *Service) SetRate(ctx context.Context, ratePerLiter float64, createdBy int64) (*MilkRate, error) {
	if ratePerLiter <= 0 {
		return nil, apperr.Validation("rate per liter must be positive")
	}

	rate, err := s.repo.Create(ctx, ratePerLiter, createdBy)
	if err != nil {
		return nil, apperr.Database("failed to set rate", err)
	}
	return rate, nil
}

// GetHistory returns past rates, newest first
func (s *Service) GetHistory(ctx context.Context, limit int) ([]*MilkRate, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	rates, err := s.repo.ListHistory(ctx, limit)
	if err != nil {
		return nil, apperr.Database("failed to get rate history", err)
	}
	return rates, nil
}
