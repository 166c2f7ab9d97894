package resources

import (
	"context"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/internal/service/resources/models"
)

type ResourceService interface {
	Create(ctx context.Context, actor domain.Actor, req *models.CreateResourceRequest) (*models.ResourceResponse, error)
	Update(ctx context.Context, actor domain.Actor, id int64, req *models.UpdateResourceRequest) (*models.ResourceResponse, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
	GetByID(ctx context.Context, id int64) (*models.ResourceResponse, error)
	List(ctx context.Context, req *models.ListResourcesRequest) (*models.ResourceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
