package variance

import (
	"context"
	"database/sql"
	"errors"
	"math"

	"github.com/jkorir/maziwa/pkg/apperr"
)

// Service errors
var (
	ErrBandNotFound   = apperr.NotFound("penalty band not found")
	ErrBandOverlap    = apperr.Validation("penalty band overlaps an existing band")
	ErrInvertedRange  = apperr.Validation("min percent must be below max percent")
	ErrNegativeLiters = apperr.Validation("liters cannot be negative")
)

// Service handles variance calculation and penalty resolution
type Service struct {
	repo *Repository
}

// NewService creates a new variance service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// CalculatePenalty resolves the raw penalty for a variance. A variance of
// type none never incurs a penalty and skips the band lookup entirely. A
// variance whose type has no matching band is tolerated and costs nothing.
func (s *Service) CalculatePenalty(ctx context.Context, v Variance) (float64, error) {
	if v.Type == TypeNone {
		return 0, nil
	}

	bands, err := s.repo.ListActive(ctx)
	if err != nil {
		return 0, apperr.Database("failed to load penalty bands", err)
	}

	band := matchBand(bands, v.Type, v.VariancePercent)
	if band == nil {
		return 0, nil
	}
	if band.PenaltyRatePerLiter < 0 {
		return 0, apperr.Calculation("penalty band resolved to a negative rate")
	}

	return math.Abs(v.VarianceLiters) * band.PenaltyRatePerLiter, nil
}

// Preview computes the variance for the given liters and the penalty it
// would attract under the current band configuration
func (s *Service) Preview(ctx context.Context, collectedLiters, receivedLiters float64) (*PreviewResponse, error) {
	if collectedLiters < 0 || receivedLiters < 0 {
		return nil, ErrNegativeLiters
	}

	v := Calculate(collectedLiters, receivedLiters)
	penalty, err := s.CalculatePenalty(ctx, v)
	if err != nil {
		return nil, err
	}

	return &PreviewResponse{Variance: v, Penalty: penalty}, nil
}

// ListBands returns the active penalty bands ordered by MinPercent
func (s *Service) ListBands(ctx context.Context) ([]*RateConfig, error) {
	bands, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, apperr.Database("failed to list penalty bands", err)
	}
	return bands, nil
}

// CreateBand adds a new penalty band. Active bands of the same variance type
// must not overlap; checking at write time keeps the runtime first-match
// lookup unambiguous.
func (s *Service) CreateBand(ctx context.Context, req *CreateBandRequest, createdBy int64) (*RateConfig, error) {
	if req.VarianceType != TypeShortage && req.VarianceType != TypeOverage {
		return nil, apperr.Validation("variance type must be shortage or overage")
	}
	if req.MinPercent >= req.MaxPercent {
		return nil, ErrInvertedRange
	}

	existing, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, apperr.Database("failed to load penalty bands", err)
	}
	for _, band := range existing {
		if band.VarianceType != req.VarianceType {
			continue
		}
		if req.MinPercent <= band.MaxPercent && req.MaxPercent >= band.MinPercent {
			return nil, ErrBandOverlap
		}
	}

	created, err := s.repo.Create(ctx, &RateConfig{
		VarianceType:        req.VarianceType,
		MinPercent:          req.MinPercent,
		MaxPercent:          req.MaxPercent,
		PenaltyRatePerLiter: req.PenaltyRatePerLiter,
		CreatedBy:           createdBy,
	})
	if err != nil {
		return nil, apperr.Database("failed to create penalty band", err)
	}

	return created, nil
}

// DeactivateBand retires a penalty band without deleting its history
func (s *Service) DeactivateBand(ctx context.Context, id int64) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBandNotFound
		}
		return apperr.Database("failed to deactivate penalty band", err)
	}
	return nil
}
