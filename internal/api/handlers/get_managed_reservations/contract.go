package get_managed_reservations

import (
	"context"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/internal/service/reservations/models"
)

type ReservationService interface {
	ListManaged(ctx context.Context, actor domain.Actor, req *models.ManagedReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
