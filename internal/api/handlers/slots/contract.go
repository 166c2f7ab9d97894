package slots

import (
	"context"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/internal/service/slots/models"
)

type SlotService interface {
	Create(ctx context.Context, actor domain.Actor, req *models.CreateSlotRequest) (*models.SlotResponse, error)
	Update(ctx context.Context, actor domain.Actor, id int64, req *models.UpdateSlotRequest) (*models.SlotResponse, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
	SetStatus(ctx context.Context, actor domain.Actor, id int64, req *models.SetStatusRequest) (*models.SlotResponse, error)
	GetByID(ctx context.Context, id int64) (*models.SlotResponse, error)
	List(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
