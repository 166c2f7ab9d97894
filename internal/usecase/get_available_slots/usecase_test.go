package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/pkg/logger"
	"github.com/m04kA/SMC-VenueBooking/pkg/types"
)

// memSlots повторяет фильтр ListAvailable: open и без оплаченного бронирования
type memSlots struct {
	slots   []*domain.Slot
	paid    map[int64]bool
	listErr error
}

func (m *memSlots) ListAvailable(_ context.Context, resourceID int64, date time.Time) ([]*domain.Slot, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	result := make([]*domain.Slot, 0)
	for _, s := range m.slots {
		if s.ResourceID != resourceID || !s.Date.Equal(date) {
			continue
		}
		if s.Status != domain.SlotOpen || m.paid[s.ID] {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

type memResources map[int64]bool

func (m memResources) Exists(_ context.Context, id int64) (bool, error) {
	return m[id], nil
}

type readOnlyTx struct{ calls int }

func (tx *readOnlyTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	return fn(ctx)
}

var day = time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)

func slot(id int64, start, end string, status domain.SlotStatus) *domain.Slot {
	return &domain.Slot{
		ID:         id,
		ResourceID: 7,
		Date:       day,
		StartTime:  types.MustTimeString(start),
		EndTime:    types.MustTimeString(end),
		Price:      types.MustMoney("100.00"),
		Status:     status,
	}
}

func newUseCase(slots *memSlots) (*UseCase, *readOnlyTx) {
	tx := &readOnlyTx{}
	return NewUseCase(slots, memResources{7: true}, tx, logger.Nop()), tx
}

func TestExecute_PaidSlotHidden(t *testing.T) {
	uc, tx := newUseCase(&memSlots{
		slots: []*domain.Slot{
			slot(1, "09:00", "10:00", domain.SlotOpen),
			slot(2, "15:00", "16:00", domain.SlotOpen),
		},
		paid: map[int64]bool{2: true},
	})

	resp, err := uc.Execute(context.Background(), &Request{ResourceID: 7, Date: "2025-10-01"})
	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)

	require.Len(t, resp.Morning, 1)
	assert.Equal(t, int64(1), resp.Morning[0].ID)
	assert.Empty(t, resp.Afternoon)
	assert.Empty(t, resp.Evening)
}

func TestExecute_BucketsAndOrder(t *testing.T) {
	uc, _ := newUseCase(&memSlots{
		slots: []*domain.Slot{
			slot(1, "19:00", "20:00", domain.SlotOpen),
			slot(2, "11:00", "12:00", domain.SlotOpen),
			slot(3, "05:00", "06:00", domain.SlotOpen),
			slot(4, "12:00", "13:00", domain.SlotOpen),
			slot(5, "04:00", "05:00", domain.SlotOpen),
			slot(6, "17:59", "18:30", domain.SlotOpen),
			slot(7, "18:00", "19:00", domain.SlotUnavailable),
		},
	})

	resp, err := uc.Execute(context.Background(), &Request{ResourceID: 7, Date: "2025-10-01"})
	require.NoError(t, err)

	ids := func(slots []Slot) []int64 {
		out := make([]int64, 0, len(slots))
		for _, s := range slots {
			out = append(out, s.ID)
		}
		return out
	}
	assert.Equal(t, []int64{3, 2}, ids(resp.Morning))
	assert.Equal(t, []int64{4, 6}, ids(resp.Afternoon))
	assert.Equal(t, []int64{5, 1}, ids(resp.Evening))
}

func TestExecute_EmptyDay(t *testing.T) {
	uc, _ := newUseCase(&memSlots{})

	resp, err := uc.Execute(context.Background(), &Request{ResourceID: 7, Date: "2025-10-02"})
	require.NoError(t, err)
	assert.NotNil(t, resp.Morning)
	assert.NotNil(t, resp.Afternoon)
	assert.NotNil(t, resp.Evening)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		slots   *memSlots
		wantErr error
	}{
		{name: "unknown resource", req: Request{ResourceID: 8, Date: "2025-10-01"}, slots: &memSlots{}, wantErr: ErrResourceNotFound},
		{name: "bad date", req: Request{ResourceID: 7, Date: "01/10/2025"}, slots: &memSlots{}, wantErr: ErrInvalidDate},
		{name: "empty date", req: Request{ResourceID: 7}, slots: &memSlots{}, wantErr: ErrInvalidDate},
		{name: "bad resource id", req: Request{ResourceID: 0, Date: "2025-10-01"}, slots: &memSlots{}, wantErr: ErrInvalidInput},
		{name: "repository failure", req: Request{ResourceID: 7, Date: "2025-10-01"}, slots: &memSlots{listErr: errors.New("boom")}, wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newUseCase(tt.slots)

			_, err := uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
