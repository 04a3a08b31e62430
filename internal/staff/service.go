package staff

import (
	"context"

	"github.com/jkorir/maziwa/pkg/apperr"
)

// Common errors
var (
	ErrStaffNotFound = apperr.NotFound("staff member not found")
)

// Service handles staff business logic
type Service struct {
	repo *Repository
}

// NewService creates a new staff service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new staff member
func (s *Service) Create(ctx context.Context, req *CreateStaffRequest) (*Staff, error) {
	member, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, apperr.Database("failed to create staff member", err)
	}
	return member, nil
}

// GetByID retrieves a staff member by their ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Staff, error) {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Database("failed to get staff member", err)
	}
	if member == nil {
		return nil, ErrStaffNotFound
	}
	return member, nil
}

// ListCollectors retrieves all active collectors
func (s *Service) ListCollectors(ctx context.Context) ([]*Staff, error) {
	collectors, err := s.repo.ListByRole(ctx, RoleCollector)
	if err != nil {
		return nil, apperr.Database("failed to list collectors", err)
	}
	return collectors, nil
}

// List retrieves staff members with pagination
func (s *Service) List(ctx context.Context, page, perPage int) ([]*Staff, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	members, total, err := s.repo.List(ctx, perPage, offset)
	if err != nil {
		return nil, 0, apperr.Database("failed to list staff", err)
	}
	return members, total, nil
}

// Update modifies an existing staff member
func (s *Service) Update(ctx context.Context, id int64, req *UpdateStaffRequest) (*Staff, error) {
	member, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, apperr.Database("failed to update staff member", err)
	}
	if member == nil {
		return nil, ErrStaffNotFound
	}
	return member, nil
}
