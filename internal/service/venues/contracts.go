package venues

import (
	"context"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
)

// VenueRepository интерфейс репозитория центров
type VenueRepository interface {
	Create(ctx context.Context, venue *domain.Venue) (*domain.Venue, error)
	Update(ctx context.Context, venue *domain.Venue) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
	GetSummary(ctx context.Context, id int64) (*domain.VenueSummary, error)
	List(ctx context.Context, filter domain.VenueFilter) ([]*domain.VenueSummary, error)
}

// ResourceRepository интерфейс репозитория пространств
type ResourceRepository interface {
	List(ctx context.Context, filter domain.ResourceFilter) ([]*domain.ResourceSummary, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
