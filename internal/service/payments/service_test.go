package payments

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/internal/infra/blob"
	paymentRepo "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/payment"
	"github.com/m04kA/SMC-VenueBooking/pkg/logger"
	"github.com/m04kA/SMC-VenueBooking/pkg/metrics"
	"github.com/m04kA/SMC-VenueBooking/pkg/types"
)

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetByReceiptRef(ctx context.Context, ref string) (*domain.Payment, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Confirm(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) GetDetails(ctx context.Context, id int64) (*domain.ReservationDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReservationDetails), args.Error(1)
}

var (
	manager   = domain.Actor{ID: 10, Role: domain.RoleManager}
	organizer = domain.Actor{ID: 20, Role: domain.RoleOrganizer}
	stranger  = domain.Actor{ID: 21, Role: domain.RoleOrganizer}
)

func pendingDetails() *domain.ReservationDetails {
	return &domain.ReservationDetails{
		Reservation: domain.Reservation{ID: 5, OrganizerID: organizer.ID, Status: domain.ReservationPending},
		Slot:        domain.SlotOwnership{ManagerID: manager.ID},
	}
}

func setupService(t *testing.T) (*Service, *MockPaymentRepository, *MockReservationRepository, *blob.ReceiptStore) {
	payments := new(MockPaymentRepository)
	reservations := new(MockReservationRepository)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := blob.NewReceiptStore(client, "test", 0)

	t.Cleanup(func() {
		_ = client.Close()
		payments.AssertExpectations(t)
		reservations.AssertExpectations(t)
	})

	return NewService(payments, reservations, store, metrics.Nop{}, logger.Nop()), payments, reservations, store
}

func TestService_Confirm(t *testing.T) {
	t.Run("owning manager confirms, reservation stays pending", func(t *testing.T) {
		svc, payments, reservations, _ := setupService(t)
		payments.On("GetByID", mock.Anything, int64(1)).
			Return(&domain.Payment{ID: 1, ReservationID: 5, Amount: types.MustMoney("50.00")}, nil)
		reservations.On("GetDetails", mock.Anything, int64(5)).Return(pendingDetails(), nil)
		payments.On("Confirm", mock.Anything, int64(1)).Return(nil)

		resp, err := svc.Confirm(context.Background(), manager, 1)
		require.NoError(t, err)
		assert.True(t, resp.Confirmed)
		assert.Equal(t, "pending", resp.ReservationStatus)
	})

	t.Run("already confirmed is idempotent", func(t *testing.T) {
		svc, payments, reservations, _ := setupService(t)
		payments.On("GetByID", mock.Anything, int64(1)).
			Return(&domain.Payment{ID: 1, ReservationID: 5, Confirmed: true}, nil)
		reservations.On("GetDetails", mock.Anything, int64(5)).Return(pendingDetails(), nil)

		resp, err := svc.Confirm(context.Background(), manager, 1)
		require.NoError(t, err)
		assert.True(t, resp.Confirmed)
		payments.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything)
	})

	t.Run("organizer cannot confirm", func(t *testing.T) {
		svc, payments, reservations, _ := setupService(t)
		payments.On("GetByID", mock.Anything, int64(1)).
			Return(&domain.Payment{ID: 1, ReservationID: 5}, nil)
		reservations.On("GetDetails", mock.Anything, int64(5)).Return(pendingDetails(), nil)

		_, err := svc.Confirm(context.Background(), organizer, 1)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("not found", func(t *testing.T) {
		svc, payments, _, _ := setupService(t)
		payments.On("GetByID", mock.Anything, int64(2)).Return(nil, paymentRepo.ErrPaymentNotFound)

		_, err := svc.Confirm(context.Background(), manager, 2)
		assert.ErrorIs(t, err, ErrPaymentNotFound)
	})
}

func TestService_GetReceipt(t *testing.T) {
	svc, payments, reservations, store := setupService(t)

	ref, err := store.Put(context.Background(), "image/png", []byte("png-bytes"))
	require.NoError(t, err)

	payments.On("GetByReceiptRef", mock.Anything, ref).
		Return(&domain.Payment{ID: 1, ReservationID: 5, ReceiptRef: &ref}, nil)
	reservations.On("GetDetails", mock.Anything, int64(5)).Return(pendingDetails(), nil)

	receipt, err := svc.GetReceipt(context.Background(), organizer, ref)
	require.NoError(t, err)
	assert.Equal(t, "image/png", receipt.ContentType)
	assert.Equal(t, []byte("png-bytes"), receipt.Data)

	_, err = svc.GetReceipt(context.Background(), manager, ref)
	assert.NoError(t, err)

	_, err = svc.GetReceipt(context.Background(), stranger, ref)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetReceipt(context.Background(), organizer, "receipts/../../etc")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
