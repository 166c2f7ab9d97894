package actors

import (
	"context"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
)

// ActorRepository интерфейс репозитория пользователей
type ActorRepository interface {
	Create(ctx context.Context, actor *domain.Actor) (*domain.Actor, error)
	GetByID(ctx context.Context, id int64) (*domain.Actor, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
