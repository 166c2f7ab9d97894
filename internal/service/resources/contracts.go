package resources

import (
	"context"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
)

// ResourceRepository интерфейс репозитория пространств
type ResourceRepository interface {
	Create(ctx context.Context, resource *domain.Resource) (*domain.Resource, error)
	Update(ctx context.Context, resource *domain.Resource) error
	Delete(ctx context.Context, id int64) error
	GetSummary(ctx context.Context, id int64) (*domain.ResourceSummary, error)
	List(ctx context.Context, filter domain.ResourceFilter) ([]*domain.ResourceSummary, error)
}

// VenueRepository интерфейс репозитория центров
type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
