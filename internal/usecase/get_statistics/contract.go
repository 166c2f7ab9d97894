package get_statistics

import (
	"context"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
)

// StatisticsRepository интерфейс выборки фактов о бронированиях
type StatisticsRepository interface {
	// ListFacts все бронирования центров менеджера
	ListFacts(ctx context.Context, managerID int64) ([]domain.ReservationFact, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
