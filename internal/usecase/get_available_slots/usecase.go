package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
)

// UseCase use case для получения свободных слотов пространства на дату
type UseCase struct {
	slotRepo     SlotRepository
	resourceRepo ResourceRepository
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	resourceRepo ResourceRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		resourceRepo: resourceRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: resource=%d, date=%s", req.ResourceID, req.Date)

	// 1. Валидация входных данных
	date, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Читаем пространство и слоты в одной read-only транзакции
	var slots []*domain.Slot
	err = uc.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		exists, err := uc.resourceRepo.Exists(ctx, req.ResourceID)
		if err != nil {
			return fmt.Errorf("%w: failed to check resource: %v", ErrInternal, err)
		}
		if !exists {
			return ErrResourceNotFound
		}

		slots, err = uc.slotRepo.ListAvailable(ctx, req.ResourceID, date)
		if err != nil {
			return fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, uc.fail(req, err)
	}

	// 3. Раскладываем по частям дня
	morning, afternoon, evening := bucketSlots(slots)

	uc.logger.Info("GetAvailableSlots: resource=%d, date=%s: %d morning, %d afternoon, %d evening",
		req.ResourceID, date.Format(domain.DateFormat), len(morning), len(afternoon), len(evening))

	return &Response{
		ResourceID: req.ResourceID,
		Date:       date,
		Morning:    morning,
		Afternoon:  afternoon,
		Evening:    evening,
	}, nil
}

func (uc *UseCase) fail(req *Request, err error) error {
	if errors.Is(err, ErrResourceNotFound) {
		uc.logger.Warn("GetAvailableSlots: resource id=%d not found", req.ResourceID)
		return ErrResourceNotFound
	}
	uc.logger.Error("GetAvailableSlots: resource=%d: %v", req.ResourceID, err)
	if errors.Is(err, ErrInternal) {
		return err
	}
	return fmt.Errorf("%w: GetAvailableSlots - read transaction: %v", ErrInternal, err)
}
