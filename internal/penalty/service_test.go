package penalty

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store for service tests. It mirrors the atomic
// semantics of the SQL repository: every balance change appends exactly one
// transaction.
type memStore struct {
	nextAccountID int64
	nextTxID      int64
	accounts      map[int64]*Account
	transactions  map[int64][]*Transaction
}

func newMemStore() *memStore {
	return &memStore{
		nextAccountID: 1,
		nextTxID:      1,
		accounts:      make(map[int64]*Account),
		transactions:  make(map[int64][]*Transaction),
	}
}

func (m *memStore) GetByCollector(_ context.Context, collectorID int64) (*Account, error) {
	for _, a := range m.accounts {
		if a.CollectorID == collectorID {
			return a, nil
		}
	}
	return nil, nil
}

func (m *memStore) Create(_ context.Context, collectorID int64) (*Account, error) {
	a := &Account{
		ID:          m.nextAccountID,
		CollectorID: collectorID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	m.nextAccountID++
	m.accounts[a.ID] = a
	return a, nil
}

func (m *memStore) Charge(_ context.Context, accountID int64, amount float64, refType string, refID *int64, notes *string, actorID int64) (*Transaction, error) {
	a := m.accounts[accountID]
	a.TotalIncurred += amount
	a.PendingAmount += amount
	return m.append(a, TxIncurred, amount, refType, refID, notes, actorID), nil
}

func (m *memStore) Settle(_ context.Context, accountID int64, amount float64, refType string, refID *int64, notes *string, actorID int64) (*Transaction, float64, error) {
	a := m.accounts[accountID]
	deducted := amount
	if deducted > a.PendingAmount {
		deducted = a.PendingAmount
	}
	if deducted <= 0 {
		return nil, 0, nil
	}
	a.TotalPaid += deducted
	a.PendingAmount -= deducted
	return m.append(a, TxPaid, deducted, refType, refID, notes, actorID), deducted, nil
}

func (m *memStore) ListTransactions(_ context.Context, accountID int64, limit int) ([]*Transaction, error) {
	entries := m.transactions[accountID]
	// newest first
	out := make([]*Transaction, 0, limit)
	for i := len(entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, entries[i])
	}
	return out, nil
}

func (m *memStore) SetFrozen(_ context.Context, accountID int64, frozen bool, reason *string) error {
	m.accounts[accountID].Frozen = frozen
	m.accounts[accountID].FrozenReason = reason
	return nil
}

func (m *memStore) append(a *Account, txType string, amount float64, refType string, refID *int64, notes *string, actorID int64) *Transaction {
	entry := &Transaction{
		ID:           m.nextTxID,
		AccountID:    a.ID,
		Type:         txType,
		Amount:       amount,
		BalanceAfter: a.PendingAmount,
		ReferenceID:  refID,
		Notes:        notes,
		CreatedBy:    actorID,
		CreatedAt:    time.Now(),
	}
	if refType != "" {
		entry.ReferenceType = &refType
	}
	m.nextTxID++
	m.transactions[a.ID] = append(m.transactions[a.ID], entry)
	return entry
}

func TestIncur(t *testing.T) {
	ctx := context.Background()

	t.Run("Charges and records a transaction", func(t *testing.T) {
		store := newMemStore()
		service := NewService(store)

		entry, err := service.Incur(ctx, 7, 120.504, "approval", nil, nil, 1)
		require.NoError(t, err)
		require.NotNil(t, entry)
		assert.Equal(t, TxIncurred, entry.Type)
		assert.Equal(t, 120.50, entry.Amount)
		assert.Equal(t, 120.50, entry.BalanceAfter)

		balance, err := service.GetBalance(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, 120.50, balance.PendingAmount)
		assert.Equal(t, 120.50, balance.TotalIncurred)
		assert.Equal(t, 0.0, balance.TotalPaid)
	})

	t.Run("Zero amount leaves no trace", func(t *testing.T) {
		store := newMemStore()
		service := NewService(store)

		entry, err := service.Incur(ctx, 7, 0, "approval", nil, nil, 1)
		require.NoError(t, err)
		assert.Nil(t, entry)

		account, err := store.GetByCollector(ctx, 7)
		require.NoError(t, err)
		assert.Nil(t, account)
	})

	t.Run("Negative amount is rejected", func(t *testing.T) {
		service := NewService(newMemStore())

		_, err := service.Incur(ctx, 7, -5, "approval", nil, nil, 1)
		assert.ErrorIs(t, err, ErrNegativeAmount)
	})
}

func TestDeduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Deduction caps at the pending balance", func(t *testing.T) {
		store := newMemStore()
		service := NewService(store)

		_, err := service.Incur(ctx, 3, 80, "approval", nil, nil, 1)
		require.NoError(t, err)

		deducted, err := service.Deduct(ctx, 3, 200, "payment", nil, nil, 1)
		require.NoError(t, err)
		assert.Equal(t, 80.0, deducted)

		balance, err := service.GetBalance(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, 0.0, balance.PendingAmount)
		assert.Equal(t, 80.0, balance.TotalIncurred)
		assert.Equal(t, 80.0, balance.TotalPaid)
	})

	t.Run("Collector without an account owes nothing", func(t *testing.T) {
		service := NewService(newMemStore())

		deducted, err := service.Deduct(ctx, 99, 50, "payment", nil, nil, 1)
		require.NoError(t, err)
		assert.Equal(t, 0.0, deducted)
	})
}

func TestLedgerInvariant(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	service := NewService(store)

	charges := []float64{120.50, 35.25, 400.00}
	settlements := []float64{100.00, 600.00}

	for _, amount := range charges {
		_, err := service.Incur(ctx, 5, amount, "approval", nil, nil, 1)
		require.NoError(t, err)
	}
	for _, amount := range settlements {
		_, err := service.Deduct(ctx, 5, amount, "payment", nil, nil, 1)
		require.NoError(t, err)
	}

	account, err := store.GetByCollector(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, account)

	// pending is always incurred minus paid and never negative
	assert.InDelta(t, account.TotalIncurred-account.TotalPaid, account.PendingAmount, 1e-9)
	assert.GreaterOrEqual(t, account.PendingAmount, 0.0)
	assert.Equal(t, 0.0, account.PendingAmount)

	// replaying the transaction log reproduces the balance
	history, err := service.GetTransactionHistory(ctx, 5, 50)
	require.NoError(t, err)

	replayed := 0.0
	for i := len(history) - 1; i >= 0; i-- {
		entry := history[i]
		switch entry.Type {
		case TxIncurred:
			replayed += entry.Amount
		case TxPaid:
			replayed -= entry.Amount
		}
		assert.InDelta(t, replayed, entry.BalanceAfter, 1e-9)
	}
	assert.InDelta(t, account.PendingAmount, replayed, 1e-9)
}

func TestSetFrozen(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	service := NewService(store)

	t.Run("Missing account", func(t *testing.T) {
		assert.ErrorIs(t, service.SetFrozen(ctx, 11, true, nil), ErrAccountNotFound)
	})

	t.Run("Freeze and unfreeze", func(t *testing.T) {
		_, err := service.Incur(ctx, 11, 10, "approval", nil, nil, 1)
		require.NoError(t, err)

		reason := "repeat shortages under review"
		require.NoError(t, service.SetFrozen(ctx, 11, true, &reason))
		account, err := store.GetByCollector(ctx, 11)
		require.NoError(t, err)
		assert.True(t, account.Frozen)
		require.NotNil(t, account.FrozenReason)
		assert.Equal(t, reason, *account.FrozenReason)

		require.NoError(t, service.SetFrozen(ctx, 11, false, nil))
		assert.False(t, account.Frozen)
	})
}
