package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkorir/maziwa/internal/approval"
	"github.com/jkorir/maziwa/internal/collection"
	"github.com/jkorir/maziwa/internal/rate"
)

type fakeCollections struct {
	byID map[int64]*collection.Collection
}

func (f *fakeCollections) ListApprovedInPeriod(_ context.Context, collectorID int64, start, end time.Time) ([]*collection.Collection, error) {
	var out []*collection.Collection
	for _, c := range f.byID {
		if c.CollectorID != collectorID {
			continue
		}
		if !c.CollectionDate.Before(start) && !c.CollectionDate.After(end) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCollections) ListByIDs(_ context.Context, ids []int64) ([]*collection.Collection, error) {
	var out []*collection.Collection
	for _, id := range ids {
		if c, ok := f.byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeApprovals struct {
	pending []*approval.Record
	paid    []int64
}

func (f *fakeApprovals) ListPendingPenalties(_ context.Context) ([]*approval.Record, error) {
	return f.pending, nil
}

func (f *fakeApprovals) MarkPenaltiesPaid(_ context.Context, approvalIDs []int64) error {
	f.paid = append(f.paid, approvalIDs...)
	return nil
}

type fakeRates struct{ rate float64 }

func (f *fakeRates) GetCurrentRate(_ context.Context) (*rate.MilkRate, error) {
	return &rate.MilkRate{RatePerLiter: f.rate}, nil
}

func TestAdjustedEarnings(t *testing.T) {
	tests := []struct {
		name      string
		gross     float64
		penalties float64
		want      float64
	}{
		{"Typical period", 11998.20, 1164.00, 10834.20},
		{"Heavy penalties", 12000.00, 6720.00, 5280.00},
		{"No penalties", 5000.00, 0, 5000.00},
		{"Penalties exceed earnings", 15000.00, 78000.00, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, adjustedEarnings(tt.gross, tt.penalties), 1e-9)
		})
	}
}

func TestPenaltiesForPeriod(t *testing.T) {
	ctx := context.Background()

	approvedOn := func(d int) time.Time {
		return time.Date(2026, 3, d, 10, 30, 0, 0, time.UTC)
	}

	collections := &fakeCollections{byID: map[int64]*collection.Collection{
		1: {ID: 1, CollectorID: 7},
		2: {ID: 2, CollectorID: 7},
		3: {ID: 3, CollectorID: 7},
		4: {ID: 4, CollectorID: 8}, // someone else's collection
	}}
	approvals := &fakeApprovals{
		pending: []*approval.Record{
			{ID: 11, CollectionID: 1, PenaltyAmount: 120.50, ApprovedAt: approvedOn(2)},
			{ID: 12, CollectionID: 2, PenaltyAmount: 79.50, ApprovedAt: approvedOn(14)}, // last day, late in the day
			{ID: 13, CollectionID: 3, PenaltyAmount: 999.99, ApprovedAt: approvedOn(20)}, // approved after the period
			{ID: 14, CollectionID: 4, PenaltyAmount: 500.00, ApprovedAt: approvedOn(5)},
		},
	}

	service := NewService(nil, collections, approvals, &fakeRates{rate: 45}, nil, nil, nil, nil)

	p := &Payment{
		CollectorID: 7,
		PeriodStart: time.Date(2026, 3, 1, 15, 45, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC),
	}

	total, approvalIDs, err := service.penaltiesForPeriod(ctx, p, approvals.pending)
	require.NoError(t, err)

	// attribution goes by approval calendar date, not time of day: the
	// approval at 10:30 on the last day still counts even though the
	// period end timestamp is 08:00
	assert.InDelta(t, 200.00, total, 1e-9)
	assert.ElementsMatch(t, []int64{11, 12}, approvalIDs)
}

func TestReconcile(t *testing.T) {
	ctx := context.Background()

	collections := &fakeCollections{byID: map[int64]*collection.Collection{
		1: {ID: 1, CollectorID: 7},
	}}
	approvals := &fakeApprovals{
		pending: []*approval.Record{
			{ID: 11, CollectionID: 1, PenaltyAmount: 1164.00, ApprovedAt: time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)},
		},
	}

	service := NewService(nil, collections, approvals, &fakeRates{rate: 45}, nil, nil, nil, nil)

	p := &Payment{
		CollectorID:   7,
		PeriodStart:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:     time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		TotalEarnings: 11998.20,
	}

	result, err := service.reconcile(ctx, p, approvals.pending)
	require.NoError(t, err)

	assert.InDelta(t, 1164.00, result.PendingPenalties, 1e-9)
	assert.InDelta(t, 10834.20, result.AdjustedEarnings, 1e-9)

	// reconciliation is read-only: nothing was settled
	assert.Empty(t, approvals.paid)

	// running it again yields the same numbers
	again, err := service.reconcile(ctx, p, approvals.pending)
	require.NoError(t, err)
	assert.Equal(t, result.PendingPenalties, again.PendingPenalties)
	assert.Equal(t, result.AdjustedEarnings, again.AdjustedEarnings)
}
