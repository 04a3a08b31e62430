package penalty

import "context"

// Store persists penalty accounts and their transaction log. Charge and
// Settle must each apply the balance change and append the transaction
// atomically.
type Store interface {
	GetByCollector(ctx context.Context, collectorID int64) (*Account, error)
	Create(ctx context.Context, collectorID int64) (*Account, error)
	Charge(ctx context.Context, accountID int64, amount float64, refType string, refID *int64, notes *string, actorID int64) (*Transaction, error)
	Settle(ctx context.Context, accountID int64, amount float64, refType string, refID *int64, notes *string, actorID int64) (*Transaction, float64, error)
	ListTransactions(ctx context.Context, accountID int64, limit int) ([]*Transaction, error)
	SetFrozen(ctx context.Context, accountID int64, frozen bool, reason *string) error
}
