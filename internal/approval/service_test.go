package approval

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkorir/maziwa/internal/anomaly"
	"github.com/jkorir/maziwa/internal/collection"
	"github.com/jkorir/maziwa/internal/penalty"
	"github.com/jkorir/maziwa/internal/variance"
	"github.com/jkorir/maziwa/pkg/geo"
)

type fakeStore struct {
	nextID  int64
	records map[int64]*Record
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1, records: make(map[int64]*Record)}
}

func (f *fakeStore) GetByCollectionID(_ context.Context, collectionID int64) (*Record, error) {
	return f.records[collectionID], nil
}

func (f *fakeStore) CreateApproval(_ context.Context, record *Record) (*Record, error) {
	created := *record
	created.ID = f.nextID
	created.PenaltyStatus = PenaltyPending
	created.CreatedAt = time.Now()
	f.nextID++
	f.records[record.CollectionID] = &created
	return &created, nil
}

type fakeCollections struct {
	byID map[int64]*collection.Collection
}

func (f *fakeCollections) GetByID(_ context.Context, id int64) (*collection.Collection, error) {
	return f.byID[id], nil
}

type fakeAnomalies struct {
	inspected []int64
}

func (f *fakeAnomalies) InspectCollection(_ context.Context, c *collection.Collection) []*anomaly.Flag {
	f.inspected = append(f.inspected, c.ID)
	return nil
}

// fakeCalculator charges 10 per liter on any variance of 2% or more
type fakeCalculator struct{}

func (fakeCalculator) CalculatePenalty(_ context.Context, v variance.Variance) (float64, error) {
	if v.Type == variance.TypeNone || math.Abs(v.VariancePercent) < 2 {
		return 0, nil
	}
	return math.Abs(v.VarianceLiters) * 10, nil
}

type charge struct {
	collectorID int64
	amount      float64
}

type fakeLedger struct {
	charges []charge
}

func (f *fakeLedger) Incur(_ context.Context, collectorID int64, amount float64, _ string, _ *int64, _ *string, _ int64) (*penalty.Transaction, error) {
	if amount == 0 {
		return nil, nil
	}
	f.charges = append(f.charges, charge{collectorID: collectorID, amount: amount})
	return &penalty.Transaction{Amount: amount}, nil
}

type fakeAuditor struct {
	operations []string
	flags      []string
}

func (f *fakeAuditor) Append(_ context.Context, _ string, _ *int64, operation string, _ int64, _ interface{}) {
	f.operations = append(f.operations, operation)
}

func (f *fakeAuditor) LogSuspiciousActivity(_ context.Context, activityType string, _ map[string]interface{}, _ int64, _ *int64) {
	f.flags = append(f.flags, activityType)
}

type fixture struct {
	service     *Service
	store       *fakeStore
	collections *fakeCollections
	anomalies   *fakeAnomalies
	ledger      *fakeLedger
	auditor     *fakeAuditor
}

func newFixture(collections ...*collection.Collection) *fixture {
	f := &fixture{
		store:       newFakeStore(),
		collections: &fakeCollections{byID: make(map[int64]*collection.Collection)},
		anomalies:   &fakeAnomalies{},
		ledger:      &fakeLedger{},
		auditor:     &fakeAuditor{},
	}
	for _, c := range collections {
		f.collections.byID[c.ID] = c
	}
	f.service = NewService(f.store, f.collections, f.anomalies, fakeCalculator{}, f.ledger, f.auditor, nil, 24, 50)
	return f
}

func testCollection(id, collectorID int64, liters float64, collectedAt time.Time) *collection.Collection {
	return &collection.Collection{
		ID:             id,
		CollectorID:    collectorID,
		Liters:         liters,
		CollectionDate: collectedAt,
		Status:         collection.StatusCollected,
	}
}

func weighed(t time.Time) *time.Time { return &t }

func TestProcess(t *testing.T) {
	ctx := context.Background()
	collected := time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)

	t.Run("Shortage incurs a penalty", func(t *testing.T) {
		f := newFixture(testCollection(1, 20, 100, collected))

		record, err := f.service.Process(ctx, &ProcessRequest{
			CollectionID:   1,
			ReceivedLiters: 92,
			WeighedAt:      weighed(collected.Add(2 * time.Hour)),
		}, 1)
		require.NoError(t, err)

		assert.Equal(t, variance.TypeShortage, record.VarianceType)
		assert.InDelta(t, -8, record.VarianceLiters, 1e-9)
		assert.InDelta(t, 80, record.PenaltyAmount, 1e-9)
		assert.Equal(t, PenaltyPending, record.PenaltyStatus)

		require.Len(t, f.ledger.charges, 1)
		assert.Equal(t, int64(20), f.ledger.charges[0].collectorID)
		assert.InDelta(t, 80, f.ledger.charges[0].amount, 1e-9)

		assert.Equal(t, []int64{1}, f.anomalies.inspected)
		assert.Contains(t, f.auditor.operations, "approve_collection_automated")
	})

	t.Run("Exact delivery incurs nothing", func(t *testing.T) {
		f := newFixture(testCollection(1, 20, 100, collected))

		record, err := f.service.Process(ctx, &ProcessRequest{
			CollectionID:   1,
			ReceivedLiters: 100,
			WeighedAt:      weighed(collected.Add(time.Hour)),
		}, 1)
		require.NoError(t, err)

		assert.Equal(t, variance.TypeNone, record.VarianceType)
		assert.Zero(t, record.PenaltyAmount)
		assert.Empty(t, f.ledger.charges)
	})

	t.Run("Missing collection", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.Process(ctx, &ProcessRequest{CollectionID: 42, ReceivedLiters: 10}, 1)
		assert.ErrorIs(t, err, ErrCollectionNotFound)
	})

	t.Run("Second approval is rejected", func(t *testing.T) {
		f := newFixture(testCollection(1, 20, 100, collected))

		req := &ProcessRequest{
			CollectionID:   1,
			ReceivedLiters: 95,
			WeighedAt:      weighed(collected.Add(time.Hour)),
		}
		_, err := f.service.Process(ctx, req, 1)
		require.NoError(t, err)

		_, err = f.service.Process(ctx, req, 1)
		assert.ErrorIs(t, err, ErrAlreadyApproved)
		assert.Len(t, f.ledger.charges, 1)
	})

	t.Run("Weighing exactly on the window boundary passes", func(t *testing.T) {
		f := newFixture(testCollection(1, 20, 100, collected))

		_, err := f.service.Process(ctx, &ProcessRequest{
			CollectionID:   1,
			ReceivedLiters: 100,
			WeighedAt:      weighed(collected.Add(24 * time.Hour)),
		}, 1)
		assert.NoError(t, err)
	})

	t.Run("Weighing stamped before the collection is rejected", func(t *testing.T) {
		f := newFixture(testCollection(1, 20, 100, collected))

		_, err := f.service.Process(ctx, &ProcessRequest{
			CollectionID:   1,
			ReceivedLiters: 100,
			WeighedAt:      weighed(collected.Add(-48 * time.Hour)),
		}, 1)
		assert.ErrorIs(t, err, ErrWeighingTooLate)
		assert.Empty(t, f.store.records)
		assert.Empty(t, f.ledger.charges)
	})

	t.Run("Distant weighing location is flagged but never blocks", func(t *testing.T) {
		c := testCollection(1, 20, 100, collected)
		lat, lng := -0.4, 36.9
		c.GPSLatitude, c.GPSLongitude = &lat, &lng
		f := newFixture(c)

		record, err := f.service.Process(ctx, &ProcessRequest{
			CollectionID:   1,
			ReceivedLiters: 100,
			WeighedAt:      weighed(collected.Add(time.Hour)),
			Location:       &geo.Point{Latitude: -1.3, Longitude: 36.8},
		}, 1)
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Contains(t, f.auditor.flags, anomaly.ActivityWeighingMismatch)
	})

	t.Run("Late weighing is rejected and flagged", func(t *testing.T) {
		f := newFixture(testCollection(1, 20, 100, collected))

		_, err := f.service.Process(ctx, &ProcessRequest{
			CollectionID:   1,
			ReceivedLiters: 100,
			WeighedAt:      weighed(collected.Add(24*time.Hour + time.Second)),
		}, 1)
		assert.ErrorIs(t, err, ErrWeighingTooLate)

		// nothing was persisted or charged
		assert.Empty(t, f.store.records)
		assert.Empty(t, f.ledger.charges)
		assert.Contains(t, f.auditor.flags, anomaly.ActivityLateWeighing)
	})
}

func TestProcessBatch(t *testing.T) {
	ctx := context.Background()
	collected := time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)

	f := newFixture(
		testCollection(1, 20, 100, collected),
		testCollection(2, 20, 50, collected),
		testCollection(3, 21, 80, collected),
	)

	result, err := f.service.ProcessBatch(ctx, &BatchRequest{
		Items: []ProcessRequest{
			{CollectionID: 1, ReceivedLiters: 92, WeighedAt: weighed(collected.Add(time.Hour))},
			{CollectionID: 2, ReceivedLiters: 50, WeighedAt: weighed(collected.Add(48 * time.Hour))},
			{CollectionID: 3, ReceivedLiters: 80, WeighedAt: weighed(collected.Add(time.Hour))},
		},
	}, 1)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Processed)
	assert.Equal(t, 2, result.Approved)
	assert.Equal(t, 1, result.Failed)

	// one failure does not stop the items after it
	require.Len(t, result.Results, 3)
	assert.True(t, result.Results[0].Approved)
	assert.False(t, result.Results[1].Approved)
	assert.NotEmpty(t, result.Results[1].Error)
	assert.True(t, result.Results[2].Approved)

	assert.Contains(t, f.auditor.operations, "batch_approval_processed")
}
