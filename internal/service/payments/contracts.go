package payments

import (
	"context"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/internal/infra/blob"
)

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	GetByReceiptRef(ctx context.Context, ref string) (*domain.Payment, error)
	Confirm(ctx context.Context, id int64) error
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetDetails(ctx context.Context, id int64) (*domain.ReservationDetails, error)
}

// ReceiptStore хранилище файлов чеков
type ReceiptStore interface {
	Get(ctx context.Context, ref string) (*blob.Receipt, error)
}

// Metrics счетчики платежей
type Metrics interface {
	IncPaymentEvent(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
