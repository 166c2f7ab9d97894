package payments

import (
	"context"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/internal/service/payments/models"
)

type PaymentService interface {
	Confirm(ctx context.Context, actor domain.Actor, id int64) (*models.PaymentResponse, error)
	GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.PaymentResponse, error)
	GetReceipt(ctx context.Context, actor domain.Actor, ref string) (*models.ReceiptResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
