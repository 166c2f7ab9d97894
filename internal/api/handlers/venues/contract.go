package venues

import (
	"context"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/internal/service/venues/models"
)

type VenueService interface {
	Create(ctx context.Context, actor domain.Actor, req *models.CreateVenueRequest) (*models.VenueResponse, error)
	Update(ctx context.Context, actor domain.Actor, id int64, req *models.UpdateVenueRequest) (*models.VenueResponse, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
	GetByID(ctx context.Context, id int64) (*models.VenueDetailsResponse, error)
	Search(ctx context.Context, req *models.SearchVenuesRequest) (*models.VenueListResponse, error)
	ListMine(ctx context.Context, actor domain.Actor) (*models.VenueListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
