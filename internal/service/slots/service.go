package slots

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-VenueBooking/internal/authz"
	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	resourceRepo "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/resource"
	slotRepo "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/slot"
	"github.com/m04kA/SMC-VenueBooking/internal/service/slots/models"
	"github.com/m04kA/SMC-VenueBooking/pkg/pgerrors"
)

// Service сервис управления слотами пространств
type Service struct {
	slotRepo     SlotRepository
	resourceRepo ResourceRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	resourceRepo ResourceRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:     slotRepo,
		resourceRepo: resourceRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Create создает слот пространства
// Доступно только менеджеру центра, которому принадлежит пространство
func (s *Service) Create(ctx context.Context, actor domain.Actor, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("Create: creating slot for resource=%d on %s [%s, %s) by user=%d",
		req.ResourceID, req.Date, req.StartTime, req.EndTime, actor.ID)

	// 1. Валидируем входные данные
	date, err := parseDate(req.Date)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}
	if req.Price.Cents() < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	candidate := Range{Start: req.StartTime, End: req.EndTime}
	if err := ValidateRange(candidate, nil, nil); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	var created *domain.Slot
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Проверяем права на пространство
		resource, err := s.resourceRepo.GetSummary(txCtx, req.ResourceID)
		if err != nil {
			if errors.Is(err, resourceRepo.ErrResourceNotFound) {
				return ErrResourceNotFound
			}
			return fmt.Errorf("%w: Create - get resource: %w", ErrInternal, err)
		}
		if err := authz.Require(actor, authz.ManagerOf(resource.Venue.ManagerID)); err != nil {
			return ErrAccessDenied
		}

		// 3. Проверяем пересечения с блокировкой слотов дня
		existing, err := s.slotRepo.ListByResourceAndDate(txCtx, req.ResourceID, date)
		if err != nil {
			return fmt.Errorf("%w: Create - list slots: %w", ErrInternal, err)
		}
		if err := ValidateRange(candidate, existing, nil); err != nil {
			return err
		}

		// 4. Создаем слот
		created, err = s.slotRepo.Create(txCtx, &domain.Slot{
			ResourceID: req.ResourceID,
			Date:       date,
			StartTime:  req.StartTime,
			EndTime:    req.EndTime,
			Price:      req.Price,
			Status:     domain.SlotOpen,
		})
		if err != nil {
			return mapWriteError("Create", err)
		}
		return nil
	})
	if err != nil {
		return nil, s.fail("Create", err)
	}

	s.logger.Info("Create: successfully created slot id=%d", created.ID)
	return models.FromDomainSlot(created), nil
}

// Update изменяет дату, интервал или цену слота
// Доступно только менеджеру центра
func (s *Service) Update(ctx context.Context, actor domain.Actor, id int64, req *models.UpdateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("Update: updating slot id=%d by user=%d", id, actor.ID)

	var updated *domain.Slot
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Блокируем слот и проверяем права
		owned, err := s.lockOwned(txCtx, actor, id)
		if err != nil {
			return err
		}

		// 2. Применяем переданные поля
		slot := owned.Slot
		if req.Date != nil {
			date, err := parseDate(*req.Date)
			if err != nil {
				return err
			}
			slot.Date = date
		}
		if req.StartTime != nil {
			slot.StartTime = *req.StartTime
		}
		if req.EndTime != nil {
			slot.EndTime = *req.EndTime
		}
		if req.Price != nil {
			if req.Price.Cents() < 0 {
				return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
			}
			slot.Price = *req.Price
		}

		// 3. Проверяем пересечения, исключая сам слот
		existing, err := s.slotRepo.ListByResourceAndDate(txCtx, slot.ResourceID, slot.Date)
		if err != nil {
			return fmt.Errorf("%w: Update - list slots: %w", ErrInternal, err)
		}
		if err := ValidateRange(Range{Start: slot.StartTime, End: slot.EndTime}, existing, &slot.ID); err != nil {
			return err
		}

		// 4. Сохраняем
		if err := s.slotRepo.Update(txCtx, &slot); err != nil {
			return mapWriteError("Update", err)
		}
		updated = &slot
		return nil
	})
	if err != nil {
		return nil, s.fail("Update", err)
	}

	s.logger.Info("Update: successfully updated slot id=%d", id)
	return models.FromDomainSlot(updated), nil
}

// Delete удаляет слот вместе с его бронированиями
func (s *Service) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	s.logger.Info("Delete: deleting slot id=%d by user=%d", id, actor.ID)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if _, err := s.lockOwned(txCtx, actor, id); err != nil {
			return err
		}
		if err := s.slotRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return s.fail("Delete", err)
	}

	s.logger.Info("Delete: successfully deleted slot id=%d", id)
	return nil
}

// SetStatus ручное открытие или закрытие слота (обслуживание)
func (s *Service) SetStatus(ctx context.Context, actor domain.Actor, id int64, req *models.SetStatusRequest) (*models.SlotResponse, error) {
	s.logger.Info("SetStatus: slot id=%d -> %s by user=%d", id, req.Status, actor.ID)

	status := domain.SlotStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	if !status.IsValid() {
		s.logger.Warn("SetStatus: unknown status %q", req.Status)
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	var result *domain.Slot
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		owned, err := s.lockOwned(txCtx, actor, id)
		if err != nil {
			return err
		}
		if err := s.slotRepo.SetStatus(txCtx, id, status); err != nil {
			return mapWriteError("SetStatus", err)
		}
		owned.Status = status
		result = &owned.Slot
		return nil
	})
	if err != nil {
		return nil, s.fail("SetStatus", err)
	}

	return models.FromDomainSlot(result), nil
}

// GetByID получает слот по ID
// Публичный метод - доступен всем
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SlotResponse, error) {
	owned, err := s.slotRepo.GetOwnership(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("GetByID: slot id=%d not found", id)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("GetByID: repository error for slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSlot(&owned.Slot), nil
}

// List список слотов с фильтрами по пространству, дате и статусу
func (s *Service) List(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error) {
	filter := domain.SlotFilter{ResourceID: req.ResourceID}

	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			s.logger.Warn("List: validation failed: %v", err)
			return nil, err
		}
		filter.Date = &date
	}
	if req.Status != nil {
		status := domain.SlotStatus(strings.ToLower(*req.Status))
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
	}

	var list []*domain.Slot
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		list, err = s.slotRepo.List(txCtx, filter)
		return err
	})
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSlots(list), nil
}

// lockOwned блокирует слот и проверяет, что актор - менеджер его центра
func (s *Service) lockOwned(ctx context.Context, actor domain.Actor, id int64) (*domain.SlotOwnership, error) {
	owned, err := s.slotRepo.LockOwnership(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("%w: get slot: %w", ErrInternal, err)
	}
	if err := authz.Require(actor, authz.ManagerOf(owned.ManagerID)); err != nil {
		return nil, ErrAccessDenied
	}
	return owned, nil
}

func (s *Service) fail(op string, err error) error {
	// гонку двух создателей разрешает ограничение или сериализация
	if pgerrors.IsSerializationFailure(err) && (op == "Create" || op == "Update") {
		err = ErrSlotOverlap
	}
	if errors.Is(err, ErrInternal) {
		s.logger.Error("%s: %v", op, err)
	} else {
		s.logger.Warn("%s: %v", op, err)
	}
	return err
}

func mapWriteError(op string, err error) error {
	switch {
	case errors.Is(err, slotRepo.ErrSlotOverlap):
		return ErrSlotOverlap
	case errors.Is(err, slotRepo.ErrInvalidRange):
		return ErrInvalidRange
	case errors.Is(err, slotRepo.ErrSlotNotFound):
		return ErrSlotNotFound
	case errors.Is(err, slotRepo.ErrResourceNotFound):
		return ErrResourceNotFound
	case pgerrors.IsSerializationFailure(err):
		return err
	}
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func parseDate(s string) (time.Time, error) {
	date, err := time.Parse(domain.DateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return date, nil
}
