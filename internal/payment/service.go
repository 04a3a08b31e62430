package payment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jkorir/maziwa/internal/approval"
	"github.com/jkorir/maziwa/internal/collection"
	"github.com/jkorir/maziwa/internal/rate"
	"github.com/jkorir/maziwa/pkg/apperr"
)

// Service errors
var (
	ErrPaymentNotFound = apperr.NotFound("payment not found")
	ErrAlreadyPaid     = apperr.Validation("payment is already paid")
	ErrInvertedPeriod  = apperr.Validation("period end is before period start")
)

// CollectionSource resolves the collections behind approvals and periods
type CollectionSource interface {
	ListApprovedInPeriod(ctx context.Context, collectorID int64, start, end time.Time) ([]*collection.Collection, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*collection.Collection, error)
}

// ApprovalSource provides pending penalties and settles them on payment
type ApprovalSource interface {
	ListPendingPenalties(ctx context.Context) ([]*approval.Record, error)
	MarkPenaltiesPaid(ctx context.Context, approvalIDs []int64) error
}

// RateSource provides the milk rate used to price a period
type RateSource interface {
	GetCurrentRate(ctx context.Context) (*rate.MilkRate, error)
}

// Ledger settles pending penalties on the collector's account
type Ledger interface {
	Deduct(ctx context.Context, collectorID int64, amount float64, refType string, refID *int64, notes *string, actorID int64) (float64, error)
}

// Notifier tells the collector their payment went through
type Notifier interface {
	NotifyPaymentProcessed(ctx context.Context, collectorID int64, amount float64, paymentID int64)
}

// Auditor records payment state changes
type Auditor interface {
	Append(ctx context.Context, tableName string, recordID *int64, operation string, actorID int64, payload interface{})
}

// Service reconciles collector payments against pending penalties. Period
// boundaries are calendar dates in UTC, both ends inclusive. Reads never
// mutate anything; penalties are only settled when a payment is marked paid.
type Service struct {
	repo        *Repository
	collections CollectionSource
	approvals   ApprovalSource
	rates       RateSource
	ledger      Ledger
	notifier    Notifier
	auditor     Auditor
	log         *zap.Logger
}

// NewService creates a new payment service
func NewService(repo *Repository, collections CollectionSource, approvals ApprovalSource, rates RateSource, ledger Ledger, notifier Notifier, auditor Auditor, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo:        repo,
		collections: collections,
		approvals:   approvals,
		rates:       rates,
		ledger:      ledger,
		notifier:    notifier,
		auditor:     auditor,
		log:         log,
	}
}

// Create opens a pending payment for a collector's period, pricing the
// approved collections at the current milk rate
func (s *Service) Create(ctx context.Context, req *CreatePaymentRequest) (*Payment, error) {
	start := dayStartUTC(req.PeriodStart)
	end := dayEndUTC(req.PeriodEnd)
	if end.Before(start) {
		return nil, ErrInvertedPeriod
	}

	currentRate, err := s.rates.GetCurrentRate(ctx)
	if err != nil {
		return nil, err
	}

	collections, err := s.collections.ListApprovedInPeriod(ctx, req.CollectorID, start, end)
	if err != nil {
		return nil, err
	}

	totalLiters := decimal.Zero
	for _, c := range collections {
		totalLiters = totalLiters.Add(decimal.NewFromFloat(c.Liters))
	}

	gross := totalLiters.Mul(decimal.NewFromFloat(currentRate.RatePerLiter)).Round(2)
	liters, _ := totalLiters.Round(2).Float64()
	earnings, _ := gross.Float64()

	created, err := s.repo.Create(ctx, &Payment{
		CollectorID:      req.CollectorID,
		PeriodStart:      start,
		PeriodEnd:        end,
		TotalCollections: len(collections),
		TotalLiters:      liters,
		RatePerLiter:     currentRate.RatePerLiter,
		TotalEarnings:    earnings,
		Notes:            req.Notes,
	})
	if err != nil {
		return nil, apperr.Database("failed to create payment", err)
	}

	return created, nil
}

// GetWithPenalties retrieves one payment reconciled against the collector's
// pending penalties for its period
func (s *Service) GetWithPenalties(ctx context.Context, id int64) (*WithPenalties, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Database("failed to get payment", err)
	}
	if p == nil {
		return nil, ErrPaymentNotFound
	}

	pending, err := s.approvals.ListPendingPenalties(ctx)
	if err != nil {
		return nil, err
	}

	return s.reconcile(ctx, p, pending)
}

// ListWithPenalties retrieves a collector's payments, each reconciled
// against the pending penalties of its own period. Pending penalties are
// fetched once and joined in memory.
func (s *Service) ListWithPenalties(ctx context.Context, collectorID int64) ([]*WithPenalties, error) {
	payments, err := s.repo.ListByCollector(ctx, collectorID)
	if err != nil {
		return nil, apperr.Database("failed to list payments", err)
	}

	pending, err := s.approvals.ListPendingPenalties(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*WithPenalties, 0, len(payments))
	for _, p := range payments {
		r, err := s.reconcile(ctx, p, pending)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	return results, nil
}

// List retrieves payments with pagination, optionally filtered by status
func (s *Service) List(ctx context.Context, status string, page, perPage int) ([]*Payment, int, error) {
	if status != "" && status != StatusPending && status != StatusPaid {
		return nil, 0, apperr.Validation("invalid payment status filter")
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	offset := (page - 1) * perPage

	payments, total, err := s.repo.List(ctx, status, perPage, offset)
	if err != nil {
		return nil, 0, apperr.Database("failed to list payments", err)
	}
	return payments, total, nil
}

// MarkAsPaid settles a pending payment: the payment flips to paid exactly
// once, the period's penalties flip to paid, the ledger is deducted and the
// collector is notified. The adjusted amount actually paid out is returned.
func (s *Service) MarkAsPaid(ctx context.Context, id int64, actorID int64) (*WithPenalties, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Database("failed to get payment", err)
	}
	if p == nil {
		return nil, ErrPaymentNotFound
	}
	if p.Status == StatusPaid {
		return nil, ErrAlreadyPaid
	}

	pending, err := s.approvals.ListPendingPenalties(ctx)
	if err != nil {
		return nil, err
	}

	penalties, approvalIDs, err := s.penaltiesForPeriod(ctx, p, pending)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.MarkPaid(ctx, id)
	if err != nil {
		return nil, apperr.Database("failed to mark payment paid", err)
	}
	if !updated {
		return nil, ErrAlreadyPaid
	}

	if err := s.approvals.MarkPenaltiesPaid(ctx, approvalIDs); err != nil {
		return nil, err
	}

	if penalties > 0 {
		deducted, err := s.ledger.Deduct(ctx, p.CollectorID, penalties, ReferenceType, &p.ID, nil, actorID)
		if err != nil {
			s.log.Error("payment settled but ledger deduction failed",
				zap.Int64("payment_id", p.ID),
				zap.Int64("collector_id", p.CollectorID),
				zap.Float64("penalties", penalties),
				zap.Error(err))
			return nil, apperr.Database("payment settled but ledger deduction failed", err)
		}
		if deducted != penalties {
			s.log.Warn("ledger deducted less than the period's penalties",
				zap.Int64("payment_id", p.ID),
				zap.Float64("expected", penalties),
				zap.Float64("deducted", deducted))
		}
	}

	adjusted := adjustedEarnings(p.TotalEarnings, penalties)
	s.notifier.NotifyPaymentProcessed(ctx, p.CollectorID, adjusted, p.ID)
	s.auditor.Append(ctx, "collector_payments", &p.ID, "payment_marked_paid", actorID, map[string]interface{}{
		"payment_id":        p.ID,
		"collector_id":      p.CollectorID,
		"gross_earnings":    p.TotalEarnings,
		"penalties_settled": penalties,
		"adjusted_earnings": adjusted,
	})

	p.Status = StatusPaid
	return &WithPenalties{
		Payment:          p,
		PendingPenalties: penalties,
		AdjustedEarnings: adjusted,
	}, nil
}

func (s *Service) reconcile(ctx context.Context, p *Payment, pending []*approval.Record) (*WithPenalties, error) {
	penalties, _, err := s.penaltiesForPeriod(ctx, p, pending)
	if err != nil {
		return nil, err
	}

	return &WithPenalties{
		Payment:          p,
		PendingPenalties: penalties,
		AdjustedEarnings: adjustedEarnings(p.TotalEarnings, penalties),
	}, nil
}

// penaltiesForPeriod sums the pending penalties attributable to the payment:
// approvals whose collection belongs to the payment's collector and whose
// approval date, as a UTC calendar date, falls inside the period. Collections
// are fetched once and joined in memory.
func (s *Service) penaltiesForPeriod(ctx context.Context, p *Payment, pending []*approval.Record) (float64, []int64, error) {
	collectionIDs := make([]int64, 0, len(pending))
	for _, record := range pending {
		collectionIDs = append(collectionIDs, record.CollectionID)
	}

	collections, err := s.collections.ListByIDs(ctx, collectionIDs)
	if err != nil {
		return 0, nil, err
	}

	collectorOf := make(map[int64]int64, len(collections))
	for _, c := range collections {
		collectorOf[c.ID] = c.CollectorID
	}

	periodStart := dayStartUTC(p.PeriodStart)
	periodEnd := dayStartUTC(p.PeriodEnd)

	sum := decimal.Zero
	var approvalIDs []int64
	for _, record := range pending {
		if collectorOf[record.CollectionID] != p.CollectorID {
			continue
		}
		approvedOn := dayStartUTC(record.ApprovedAt)
		if approvedOn.Before(periodStart) || approvedOn.After(periodEnd) {
			continue
		}
		sum = sum.Add(decimal.NewFromFloat(record.PenaltyAmount))
		approvalIDs = append(approvalIDs, record.ID)
	}

	total, _ := sum.Round(2).Float64()
	return total, approvalIDs, nil
}

// adjustedEarnings is the net payout: gross minus penalties, floored at zero
func adjustedEarnings(gross, penalties float64) float64 {
	net := decimal.NewFromFloat(gross).Sub(decimal.NewFromFloat(penalties)).Round(2)
	if net.IsNegative() {
		return 0
	}
	v, _ := net.Float64()
	return v
}

// dayStartUTC normalizes a timestamp to the start of its UTC calendar day
func dayStartUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// dayEndUTC normalizes a timestamp to the last instant of its UTC calendar day
func dayEndUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 23, 59, 59, 999999999, time.UTC)
}
