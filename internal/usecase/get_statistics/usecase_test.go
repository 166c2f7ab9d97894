package get_statistics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/pkg/logger"
	"github.com/m04kA/SMC-VenueBooking/pkg/types"
)

type MockStatisticsRepository struct {
	mock.Mock
}

func (m *MockStatisticsRepository) ListFacts(ctx context.Context, managerID int64) ([]domain.ReservationFact, error) {
	args := m.Called(ctx, managerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReservationFact), args.Error(1)
}

type passthroughTx struct{}

func (passthroughTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var base = time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

func fact(id int64, status domain.ReservationStatus, resourceID int64, name string, category domain.Category, start, end, price string) domain.ReservationFact {
	return domain.ReservationFact{
		ReservationID: id,
		Status:        status,
		CreatedAt:     base.Add(time.Duration(id) * time.Hour),
		ResourceID:    resourceID,
		ResourceName:  name,
		Category:      category,
		Date:          base,
		StartTime:     types.MustTimeString(start),
		EndTime:       types.MustTimeString(end),
		Price:         types.MustMoney(price),
		OrganizerName: "Ana",
	}
}

func TestAggregate(t *testing.T) {
	facts := []domain.ReservationFact{
		fact(1, domain.ReservationPaid, 1, "Quadra B", domain.CategoryTennis, "10:00", "11:00", "100.00"),
		fact(2, domain.ReservationPaid, 2, "Quadra A", domain.CategoryFutsal, "10:00", "11:00", "80.50"),
		fact(3, domain.ReservationCancelled, 1, "Quadra B", domain.CategoryTennis, "09:00", "10:00", "100.00"),
		fact(4, domain.ReservationPending, 2, "Quadra A", domain.CategoryFutsal, "09:00", "10:00", "80.50"),
		fact(5, domain.ReservationPending, 3, "Piscina", domain.CategorySwimming, "18:00", "19:00", "40.00"),
	}

	stats := Aggregate(facts)

	assert.Equal(t, 5, stats.TotalReservations)
	assert.Equal(t, 1, stats.CancelledCount)
	assert.Equal(t, types.MustMoney("180.50"), stats.TotalRevenue)

	assert.Equal(t, []domain.StatusCount{
		{Status: domain.ReservationPaid, Total: 2},
		{Status: domain.ReservationPending, Total: 2},
		{Status: domain.ReservationCancelled, Total: 1},
	}, stats.ByStatus)

	require.Len(t, stats.TopResources, 3)
	assert.Equal(t, "Quadra A", stats.TopResources[0].Name)
	assert.Equal(t, "Quadra B", stats.TopResources[1].Name)
	assert.Equal(t, "Piscina", stats.TopResources[2].Name)

	require.Len(t, stats.TopTimeRanges, 3)
	assert.Equal(t, types.MustTimeString("09:00"), stats.TopTimeRanges[0].StartTime)
	assert.Equal(t, types.MustTimeString("10:00"), stats.TopTimeRanges[1].StartTime)
	assert.Equal(t, 1, stats.TopTimeRanges[2].Total)

	assert.Equal(t, []domain.CategoryCount{
		{Category: domain.CategoryFutsal, Total: 2},
		{Category: domain.CategoryTennis, Total: 2},
		{Category: domain.CategorySwimming, Total: 1},
	}, stats.Categories)

	require.Len(t, stats.PaidReservations, 2)
	assert.Equal(t, int64(2), stats.PaidReservations[0].ReservationID)
	assert.Equal(t, int64(1), stats.PaidReservations[1].ReservationID)
}

func TestAggregate_OrderIndependent(t *testing.T) {
	facts := []domain.ReservationFact{
		fact(1, domain.ReservationPaid, 1, "A", domain.CategoryTennis, "10:00", "11:00", "10.00"),
		fact(2, domain.ReservationPaid, 2, "B", domain.CategoryTennis, "11:00", "12:00", "10.00"),
		fact(3, domain.ReservationPending, 3, "C", domain.CategorySoccer, "12:00", "13:00", "10.00"),
	}
	reversed := []domain.ReservationFact{facts[2], facts[1], facts[0]}

	assert.Equal(t, Aggregate(facts), Aggregate(reversed))
}

func TestAggregate_TopLimit(t *testing.T) {
	facts := make([]domain.ReservationFact, 0)
	for i := int64(1); i <= 7; i++ {
		start := types.MustTimeString("08:00")
		start, _ = start.AddMinutes(int(i) * 60)
		end, _ := start.AddMinutes(60)
		f := fact(i, domain.ReservationPending, i, string(rune('A'+i)), domain.CategoryOther, "08:00", "09:00", "10.00")
		f.StartTime, f.EndTime = start, end
		facts = append(facts, f)
	}

	stats := Aggregate(facts)
	assert.Len(t, stats.TopResources, TopLimit)
	assert.Len(t, stats.TopTimeRanges, TopLimit)
	assert.Equal(t, int64(1), stats.TopResources[0].ResourceID)
}

func TestAggregate_Empty(t *testing.T) {
	stats := Aggregate(nil)

	assert.Equal(t, 0, stats.TotalReservations)
	assert.Equal(t, types.Money(0), stats.TotalRevenue)
	assert.NotNil(t, stats.ByStatus)
	assert.NotNil(t, stats.PaidReservations)
}

func TestExecute(t *testing.T) {
	manager := domain.Actor{ID: 10, Role: domain.RoleManager}

	t.Run("success", func(t *testing.T) {
		repo := new(MockStatisticsRepository)
		repo.On("ListFacts", mock.Anything, int64(10)).Return([]domain.ReservationFact{
			fact(1, domain.ReservationPaid, 1, "A", domain.CategoryTennis, "10:00", "11:00", "10.00"),
		}, nil)
		uc := NewUseCase(repo, passthroughTx{}, logger.Nop())

		resp, err := uc.Execute(context.Background(), &Request{Actor: manager})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.TotalReservations)
		repo.AssertExpectations(t)
	})

	t.Run("organizer denied", func(t *testing.T) {
		uc := NewUseCase(new(MockStatisticsRepository), passthroughTx{}, logger.Nop())

		_, err := uc.Execute(context.Background(), &Request{Actor: domain.Actor{ID: 20, Role: domain.RoleOrganizer}})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := new(MockStatisticsRepository)
		repo.On("ListFacts", mock.Anything, int64(10)).Return(nil, errors.New("boom"))
		uc := NewUseCase(repo, passthroughTx{}, logger.Nop())

		_, err := uc.Execute(context.Background(), &Request{Actor: manager})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
