package cancel_reservation

import (
	"context"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/internal/service/reservations/models"
)

type ReservationService interface {
	Cancel(ctx context.Context, actor domain.Actor, id int64) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
