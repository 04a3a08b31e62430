package penalty

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/jkorir/maziwa/pkg/apperr"
)

// Service errors
var (
	ErrAccountNotFound = apperr.NotFound("penalty account not found")
	ErrNegativeAmount  = apperr.Validation("penalty amount cannot be negative")
)

// Service handles penalty ledger business logic. Amounts are rounded to two
// decimal places on the way in so stored balances stay at currency precision.
type Service struct {
	store Store
}

// NewService creates a new penalty service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// GetOrCreateAccount returns the collector's account, opening one on first use
func (s *Service) GetOrCreateAccount(ctx context.Context, collectorID int64) (*Account, error) {
	account, err := s.store.GetByCollector(ctx, collectorID)
	if err != nil {
		return nil, apperr.Database("failed to get penalty account", err)
	}
	if account != nil {
		return account, nil
	}

	account, err = s.store.Create(ctx, collectorID)
	if err != nil {
		return nil, apperr.Database("failed to create penalty account", err)
	}
	return account, nil
}

// Incur charges a penalty against the collector's account. Zero amounts are
// skipped entirely and produce no ledger entry.
func (s *Service) Incur(ctx context.Context, collectorID int64, amount float64, refType string, refID *int64, notes *string, actorID int64) (*Transaction, error) {
	if amount < 0 {
		return nil, ErrNegativeAmount
	}

	rounded := round2(amount)
	if rounded == 0 {
		return nil, nil
	}

	account, err := s.GetOrCreateAccount(ctx, collectorID)
	if err != nil {
		return nil, err
	}

	entry, err := s.store.Charge(ctx, account.ID, rounded, refType, refID, notes, actorID)
	if err != nil {
		return nil, apperr.Database("failed to charge penalty", err)
	}
	return entry, nil
}

// Deduct settles pending penalties up to the given amount and returns what
// was actually deducted. Deductions never drive the pending balance negative.
func (s *Service) Deduct(ctx context.Context, collectorID int64, amount float64, refType string, refID *int64, notes *string, actorID int64) (float64, error) {
	if amount < 0 {
		return 0, ErrNegativeAmount
	}

	rounded := round2(amount)
	if rounded == 0 {
		return 0, nil
	}

	account, err := s.store.GetByCollector(ctx, collectorID)
	if err != nil {
		return 0, apperr.Database("failed to get penalty account", err)
	}
	if account == nil {
		return 0, nil
	}

	_, deducted, err := s.store.Settle(ctx, account.ID, rounded, refType, refID, notes, actorID)
	if err != nil {
		return 0, apperr.Database("failed to settle penalty", err)
	}
	return deducted, nil
}

// GetBalance returns the collector's penalty position: pending, total
// incurred and total paid. A collector without an account owes nothing.
func (s *Service) GetBalance(ctx context.Context, collectorID int64) (*Balance, error) {
	account, err := s.store.GetByCollector(ctx, collectorID)
	if err != nil {
		return nil, apperr.Database("failed to get penalty account", err)
	}
	if account == nil {
		return &Balance{}, nil
	}
	return &Balance{
		PendingAmount: account.PendingAmount,
		TotalIncurred: account.TotalIncurred,
		TotalPaid:     account.TotalPaid,
	}, nil
}

// GetTransactionHistory returns an account's ledger entries, newest first
func (s *Service) GetTransactionHistory(ctx context.Context, collectorID int64, limit int) ([]*Transaction, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}

	account, err := s.store.GetByCollector(ctx, collectorID)
	if err != nil {
		return nil, apperr.Database("failed to get penalty account", err)
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	transactions, err := s.store.ListTransactions(ctx, account.ID, limit)
	if err != nil {
		return nil, apperr.Database("failed to list transactions", err)
	}
	return transactions, nil
}

// SetFrozen flips the advisory frozen flag on a collector's account
func (s *Service) SetFrozen(ctx context.Context, collectorID int64, frozen bool, reason *string) error {
	account, err := s.store.GetByCollector(ctx, collectorID)
	if err != nil {
		return apperr.Database("failed to get penalty account", err)
	}
	if account == nil {
		return ErrAccountNotFound
	}

	if err := s.store.SetFrozen(ctx, account.ID, frozen, reason); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAccountNotFound
		}
		return apperr.Database("failed to update frozen flag", err)
	}
	return nil
}

func round2(amount float64) float64 {
	v, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return v
}
