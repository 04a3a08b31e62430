package collection

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jkorir/maziwa/internal/farmer"
	"github.com/jkorir/maziwa/internal/staff"
	"github.com/jkorir/maziwa/pkg/apperr"
)

type fakeFarmers struct{ byID map[int64]*farmer.Farmer }

func (f *fakeFarmers) GetByID(_ context.Context, id int64) (*farmer.Farmer, error) {
	return f.byID[id], nil
}

type fakeStaff struct{ byID map[int64]*staff.Staff }

func (f *fakeStaff) GetByID(_ context.Context, id int64) (*staff.Staff, error) {
	return f.byID[id], nil
}

func newTestService() *Service {
	farmers := &fakeFarmers{byID: map[int64]*farmer.Farmer{
		5: {ID: 5, FullName: "Wanjiku Kamau"},
	}}
	staffSource := &fakeStaff{byID: map[int64]*staff.Staff{
		2: {ID: 2, FullName: "Kiprop Rotich", Role: staff.RoleCollector},
		3: {ID: 3, FullName: "Achieng Odhiambo", Role: staff.RoleAdmin},
	}}
	// repo stays nil: every case below fails validation before persistence
	return NewService(nil, farmers, staffSource, nil, 24, 30)
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	service := newTestService()
	now := time.Now()

	lat, lng := -1.29, 36.82

	tests := []struct {
		name    string
		req     *CreateCollectionRequest
		wantErr error
	}{
		{
			name: "Unknown collector",
			req: &CreateCollectionRequest{
				CollectorID: 99, FarmerID: 5, Liters: 40, CollectionDate: now,
			},
			wantErr: ErrCollectorNotFound,
		},
		{
			name: "Staff member who is not a collector",
			req: &CreateCollectionRequest{
				CollectorID: 3, FarmerID: 5, Liters: 40, CollectionDate: now,
			},
		},
		{
			name: "Unknown farmer",
			req: &CreateCollectionRequest{
				CollectorID: 2, FarmerID: 99, Liters: 40, CollectionDate: now,
			},
			wantErr: ErrFarmerNotFound,
		},
		{
			name: "Future collection date",
			req: &CreateCollectionRequest{
				CollectorID: 2, FarmerID: 5, Liters: 40, CollectionDate: now.Add(2 * time.Hour),
			},
			wantErr: ErrFutureDate,
		},
		{
			name: "Collection date older than the window",
			req: &CreateCollectionRequest{
				CollectorID: 2, FarmerID: 5, Liters: 40, CollectionDate: now.Add(-25 * time.Hour),
			},
			wantErr: ErrDateTooOld,
		},
		{
			name: "Latitude without longitude",
			req: &CreateCollectionRequest{
				CollectorID: 2, FarmerID: 5, Liters: 40, CollectionDate: now, GPSLatitude: &lat,
			},
		},
		{
			name: "Longitude without latitude",
			req: &CreateCollectionRequest{
				CollectorID: 2, FarmerID: 5, Liters: 40, CollectionDate: now, GPSLongitude: &lng,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(ctx, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.True(t, apperr.IsKind(err, apperr.KindValidation))
		})
	}
}
