package users

import (
	"context"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/internal/service/actors/models"
)

type ActorService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.ActorResponse, error)
	EmailExists(ctx context.Context, email string) (*models.CheckEmailResponse, error)
	Get(ctx context.Context, actor domain.Actor) (*models.ActorResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
