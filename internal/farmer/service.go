package farmer

import (
	"context"

	"github.com/jkorir/maziwa/pkg/apperr"
)

// Common errors
var (
	ErrFarmerNotFound = apperr.NotFound("farmer not found")
)

// Service handles farmer business logic
type Service struct {
	repo *Repository
}

// NewService creates a new farmer service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new farmer
func (s *Service) Create(ctx context.Context, req *CreateFarmerRequest) (*Farmer, error) {
	farmer, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, apperr.Database("failed to create farmer", err)
	}
	return farmer, nil
}

// GetByID retrieves a farmer by their ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Farmer, error) {
	farmer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Database("failed to get farmer", err)
	}
	if farmer == nil {
		return nil, ErrFarmerNotFound
	}
	return farmer, nil
}

// List retrieves farmers with pagination
func (s *Service) List(ctx context.Context, page, perPage int) ([]*Farmer, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	farmers, total, err := s.repo.List(ctx, perPage, offset)
	if err != nil {
		return nil, 0, apperr.Database("failed to list farmers", err)
	}
	return farmers, total, nil
}

// Update modifies an existing farmer
func (s *Service) Update(ctx context.Context, id int64, req *UpdateFarmerRequest) (*Farmer, error) {
	farmer, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, apperr.Database("failed to update farmer", err)
	}
	if farmer == nil {
		return nil, ErrFarmerNotFound
	}
	return farmer, nil
}
