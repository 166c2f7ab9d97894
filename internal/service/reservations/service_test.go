package reservations

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-VenueBooking/internal/service/reservations/models"
	"github.com/m04kA/SMC-VenueBooking/pkg/logger"
	"github.com/m04kA/SMC-VenueBooking/pkg/metrics"
	"github.com/m04kA/SMC-VenueBooking/pkg/ptr"
)

const (
	managerID   int64 = 10
	organizerID int64 = 20
	slotID      int64 = 1
)

var (
	manager      = domain.Actor{ID: managerID, Role: domain.RoleManager}
	otherManager = domain.Actor{ID: 11, Role: domain.RoleManager}
	organizer    = domain.Actor{ID: organizerID, Role: domain.RoleOrganizer}
	stranger     = domain.Actor{ID: 21, Role: domain.RoleOrganizer}
	fixedNow     = time.Date(2025, 9, 30, 12, 0, 0, 0, time.UTC)
)

func setupService(t *testing.T) (*Service, *memStore, *countingMetrics) {
	t.Helper()

	store := newMemStore()
	store.organizers[organizerID] = "João Silva"
	m := &countingMetrics{}
	svc := NewService(store, store, store, fakeTx{}, m, logger.Nop())
	svc.timeProvider = fixedTime{t: fixedNow}

	return svc, store, m
}

func TestService_Create(t *testing.T) {
	t.Run("organizer books open slot", func(t *testing.T) {
		svc, store, m := setupService(t)
		store.addSlot(slotID, managerID, domain.SlotOpen)

		resp, err := svc.Create(context.Background(), organizer, slotID)
		require.NoError(t, err)

		assert.Equal(t, string(domain.ReservationPending), resp.Status)
		assert.Equal(t, organizerID, resp.OrganizerID)
		assert.Equal(t, "João Silva", resp.OrganizerName)
		assert.Equal(t, "2025-10-01 15:00", resp.CheckIn)
		assert.Equal(t, string(domain.SlotUnavailable), resp.Slot.Status)
		assert.Equal(t, domain.SlotUnavailable, store.slotStatus(slotID))
		assert.Equal(t, 1, m.count(metrics.ReservationCreated))
	})

	t.Run("manager cannot book", func(t *testing.T) {
		svc, store, _ := setupService(t)
		store.addSlot(slotID, managerID, domain.SlotOpen)

		_, err := svc.Create(context.Background(), manager, slotID)
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Equal(t, domain.SlotOpen, store.slotStatus(slotID))
	})

	t.Run("unavailable slot", func(t *testing.T) {
		svc, store, m := setupService(t)
		store.addSlot(slotID, managerID, domain.SlotUnavailable)

		_, err := svc.Create(context.Background(), organizer, slotID)
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
		assert.Equal(t, 1, m.count(metrics.ReservationConflict))
	})

	t.Run("missing slot", func(t *testing.T) {
		svc, _, _ := setupService(t)

		_, err := svc.Create(context.Background(), organizer, 404)
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("invalid slot id", func(t *testing.T) {
		svc, _, _ := setupService(t)

		_, err := svc.Create(context.Background(), organizer, 0)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("serialization failure is a conflict", func(t *testing.T) {
		svc, store, _ := setupService(t)
		store.addSlot(slotID, managerID, domain.SlotOpen)
		store.claimErr = fmt.Errorf("slot: ClaimOpen: %w", &pq.Error{Code: "40001"})

		_, err := svc.Create(context.Background(), organizer, slotID)
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})

	t.Run("unregistered organizer", func(t *testing.T) {
		svc, store, _ := setupService(t)
		store.addSlot(slotID, managerID, domain.SlotOpen)
		store.createErr = reservationRepo.ErrReferenceNotFound

		_, err := svc.Create(context.Background(), domain.Actor{ID: 999, Role: domain.RoleOrganizer}, slotID)
		assert.ErrorIs(t, err, ErrOrganizerNotFound)
		assert.NotErrorIs(t, err, ErrInternal)
	})

	t.Run("storage failure is internal", func(t *testing.T) {
		svc, store, _ := setupService(t)
		store.addSlot(slotID, managerID, domain.SlotOpen)
		store.claimErr = fmt.Errorf("connection reset")

		_, err := svc.Create(context.Background(), organizer, slotID)
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestService_Create_ConcurrentSingleWinner(t *testing.T) {
	svc, store, m := setupService(t)
	store.addSlot(slotID, managerID, domain.SlotOpen)

	const attempts = 32
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)

	start := make(chan struct{})
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			<-start

			actor := domain.Actor{ID: id, Role: domain.RoleOrganizer}
			_, err := svc.Create(context.Background(), actor, slotID)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case assert.ErrorIs(t, err, ErrSlotNotAvailable):
				conflicts++
			}
		}(int64(100 + i))
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)
	assert.Equal(t, attempts-1, m.count(metrics.ReservationConflict))
	assert.Equal(t, domain.SlotUnavailable, store.slotStatus(slotID))
}

func TestService_Cancel(t *testing.T) {
	t.Run("pending reservation reopens slot", func(t *testing.T) {
		svc, store, _ := setupService(t)
		store.addSlot(slotID, managerID, domain.SlotUnavailable)
		store.addReservation(5, organizerID, slotID, domain.ReservationPending)

		resp, err := svc.Cancel(context.Background(), organizer, 5)
		require.NoError(t, err)

		assert.Equal(t, string(domain.ReservationCancelled), resp.Status)
		require.NotNil(t, resp.CancelledAt)
		assert.True(t, fixedNow.Equal(*resp.CancelledAt))
		assert.Equal(t, domain.SlotOpen, store.slotStatus(slotID))

		_, err = svc.Cancel(context.Background(), organizer, 5)
		assert.ErrorIs(t, err, ErrAlreadyCancelled)
	})

	t.Run("paid reservation cancelled by manager", func(t *testing.T) {
		svc, store, _ := setupService(t)
		store.addSlot(slotID, managerID, domain.SlotUnavailable)
		store.addReservation(5, organizerID, slotID, domain.ReservationPaid)

		_, err := svc.Cancel(context.Background(), manager, 5)
		require.NoError(t, err)

		assert.Equal(t, domain.ReservationCancelled, store.reservationStatus(5))
		assert.Equal(t, domain.SlotOpen, store.slotStatus(slotID))
	})

	t.Run("cancelled slot can be booked again", func(t *testing.T) {
		svc, store, _ := setupService(t)
		store.addSlot(slotID, managerID, domain.SlotUnavailable)
		store.addReservation(5, organizerID, slotID, domain.ReservationPending)

		_, err := svc.Cancel(context.Background(), organizer, 5)
		require.NoError(t, err)

		_, err = svc.Create(context.Background(), stranger, slotID)
		assert.NoError(t, err)
	})

	t.Run("foreign actors are denied", func(t *testing.T) {
		svc, store, _ := setupService(t)
		store.addSlot(slotID, managerID, domain.SlotUnavailable)
		store.addReservation(5, organizerID, slotID, domain.ReservationPending)

		_, err := svc.Cancel(context.Background(), stranger, 5)
		assert.ErrorIs(t, err, ErrAccessDenied)

		_, err = svc.Cancel(context.Background(), otherManager, 5)
		assert.ErrorIs(t, err, ErrAccessDenied)

		assert.Equal(t, domain.ReservationPending, store.reservationStatus(5))
	})

	t.Run("not found", func(t *testing.T) {
		svc, _, _ := setupService(t)

		_, err := svc.Cancel(context.Background(), organizer, 999)
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestService_Complete(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.ReservationStatus
		actor   domain.Actor
		wantErr error
	}{
		{name: "pending becomes paid", status: domain.ReservationPending, actor: manager},
		{name: "cancelled", status: domain.ReservationCancelled, actor: manager, wantErr: ErrInvalidTransition},
		{name: "already paid", status: domain.ReservationPaid, actor: manager, wantErr: ErrInvalidTransition},
		{name: "foreign manager", status: domain.ReservationPending, actor: otherManager, wantErr: ErrAccessDenied},
		{name: "organizer", status: domain.ReservationPending, actor: organizer, wantErr: ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, m := setupService(t)
			store.addSlot(slotID, managerID, domain.SlotUnavailable)
			store.addReservation(5, organizerID, slotID, tt.status)

			resp, err := svc.Complete(context.Background(), tt.actor, 5)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.status, store.reservationStatus(5))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, string(domain.ReservationPaid), resp.Status)
			assert.Equal(t, domain.ReservationPaid, store.reservationStatus(5))
			assert.Equal(t, domain.SlotUnavailable, store.slotStatus(slotID))
			assert.Equal(t, 1, m.count(metrics.ReservationCompleted))
		})
	}
}

func TestService_Rate(t *testing.T) {
	t.Run("paid reservation recalculates venue rating", func(t *testing.T) {
		svc, store, _ := setupService(t)
		store.addSlot(slotID, managerID, domain.SlotUnavailable)
		store.addReservation(5, organizerID, slotID, domain.ReservationPaid)

		resp, err := svc.Rate(context.Background(), organizer, 5, &models.RateRequest{
			ServiceRating:  ptr.Ptr(5),
			FacilityRating: ptr.Ptr(4),
			Comment:        ptr.Ptr("ótimo"),
		})
		require.NoError(t, err)

		require.NotNil(t, resp.Rating)
		assert.Equal(t, 5, *resp.Rating.ServiceRating)
		assert.Nil(t, resp.Rating.CleanlinessRating)
		assert.Equal(t, []int64{3}, store.recalculated)
	})

	t.Run("pending reservation is not ratable", func(t *testing.T) {
		svc, store, _ := setupService(t)
		store.addSlot(slotID, managerID, domain.SlotUnavailable)
		store.addReservation(5, organizerID, slotID, domain.ReservationPending)

		_, err := svc.Rate(context.Background(), organizer, 5, &models.RateRequest{ServiceRating: ptr.Ptr(5)})
		assert.ErrorIs(t, err, ErrNotRatable)
		assert.Empty(t, store.recalculated)
	})

	t.Run("only the organizer rates", func(t *testing.T) {
		svc, store, _ := setupService(t)
		store.addSlot(slotID, managerID, domain.SlotUnavailable)
		store.addReservation(5, organizerID, slotID, domain.ReservationPaid)

		_, err := svc.Rate(context.Background(), manager, 5, &models.RateRequest{ServiceRating: ptr.Ptr(5)})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	invalid := []struct {
		name string
		req  *models.RateRequest
	}{
		{name: "no scores", req: &models.RateRequest{Comment: ptr.Ptr("ok")}},
		{name: "score too low", req: &models.RateRequest{ServiceRating: ptr.Ptr(0)}},
		{name: "score too high", req: &models.RateRequest{CleanlinessRating: ptr.Ptr(6)}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := setupService(t)
			store.addSlot(slotID, managerID, domain.SlotUnavailable)
			store.addReservation(5, organizerID, slotID, domain.ReservationPaid)

			_, err := svc.Rate(context.Background(), organizer, 5, tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_GetByID(t *testing.T) {
	svc, store, _ := setupService(t)
	store.addSlot(slotID, managerID, domain.SlotUnavailable)
	store.addReservation(5, organizerID, slotID, domain.ReservationPending)

	_, err := svc.GetByID(context.Background(), organizer, 5)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), manager, 5)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), stranger, 5)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), organizer, -1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_ListManaged(t *testing.T) {
	svc, store, _ := setupService(t)
	store.addSlot(slotID, managerID, domain.SlotUnavailable)
	store.addSlot(2, otherManager.ID, domain.SlotUnavailable)
	store.addReservation(5, organizerID, slotID, domain.ReservationPending)
	store.addReservation(6, organizerID, 2, domain.ReservationPending)

	resp, err := svc.ListManaged(context.Background(), manager, &models.ManagedReservationsRequest{
		Status: ptr.Ptr("PENDING"),
	})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, int64(5), resp.Reservations[0].ID)

	_, err = svc.ListManaged(context.Background(), manager, &models.ManagedReservationsRequest{
		Status: ptr.Ptr("done"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ListManaged(context.Background(), organizer, nil)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
