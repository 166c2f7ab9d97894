package slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error)
	Update(ctx context.Context, slot *domain.Slot) error
	Delete(ctx context.Context, id int64) error
	GetOwnership(ctx context.Context, id int64) (*domain.SlotOwnership, error)
	LockOwnership(ctx context.Context, id int64) (*domain.SlotOwnership, error)
	ListByResourceAndDate(ctx context.Context, resourceID int64, date time.Time) ([]*domain.Slot, error)
	List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error)
	SetStatus(ctx context.Context, id int64, status domain.SlotStatus) error
}

// ResourceRepository интерфейс репозитория пространств
type ResourceRepository interface {
	GetSummary(ctx context.Context, id int64) (*domain.ResourceSummary, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
