package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	GetDetails(ctx context.Context, id int64) (*domain.ReservationDetails, error)
	ListByOrganizer(ctx context.Context, organizerID int64) ([]*domain.ReservationDetails, error)
	ListManaged(ctx context.Context, filter domain.ManagedReservationsFilter) ([]*domain.ReservationDetails, error)
	MarkCancelled(ctx context.Context, id int64, at time.Time) error
	MarkPaid(ctx context.Context, id int64) error
	SetRating(ctx context.Context, id int64, rating domain.Rating) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	LockOwnership(ctx context.Context, id int64) (*domain.SlotOwnership, error)
	ClaimOpen(ctx context.Context, id int64) error
	Release(ctx context.Context, id int64) error
}

// VenueRepository интерфейс репозитория центров
type VenueRepository interface {
	RecalculateRating(ctx context.Context, venueID int64) (float64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики доменных событий
type Metrics interface {
	IncReservationEvent(event string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
