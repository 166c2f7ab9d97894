package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueBooking/internal/authz"
	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/reservation"
	slotRepo "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/slot"
	"github.com/m04kA/SMC-VenueBooking/internal/service/reservations/models"
	"github.com/m04kA/SMC-VenueBooking/pkg/metrics"
	"github.com/m04kA/SMC-VenueBooking/pkg/pgerrors"
)

// Service машина состояний бронирования: создание, отмена, завершение, оценка
type Service struct {
	reservationRepo ReservationRepository
	slotRepo        SlotRepository
	venueRepo       VenueRepository
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	slotRepo SlotRepository,
	venueRepo VenueRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		slotRepo:        slotRepo,
		venueRepo:       venueRepo,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Create бронирует открытый слот.
// Слот захватывается условным обновлением open -> unavailable, из конкурентов выигрывает один.
func (s *Service) Create(ctx context.Context, actor domain.Actor, slotID int64) (*models.ReservationResponse, error) {
	s.logger.Info("Create: organizer=%d books slot=%d", actor.ID, slotID)

	if err := authz.Require(actor, authz.IsOrganizer()); err != nil {
		s.logger.Warn("Create: %v", err)
		return nil, ErrAccessDenied
	}
	if slotID <= 0 {
		return nil, fmt.Errorf("%w: slotId must be positive", ErrInvalidInput)
	}

	now := s.timeProvider.Now()
	var result *domain.ReservationDetails

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slot, err := s.slotRepo.LockOwnership(txCtx, slotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: Create - get slot: %w", ErrInternal, err)
		}

		if !slot.IsOpen() {
			return ErrSlotNotAvailable
		}

		if err := s.slotRepo.ClaimOpen(txCtx, slotID); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotOpen) {
				return ErrSlotNotAvailable
			}
			return fmt.Errorf("%w: Create - claim slot: %w", ErrInternal, err)
		}

		created, err := s.reservationRepo.Create(txCtx, &domain.Reservation{
			OrganizerID: actor.ID,
			SlotID:      slotID,
			Status:      domain.ReservationPending,
			CreatedAt:   now,
		})
		if err != nil {
			switch {
			case errors.Is(err, reservationRepo.ErrSlotAlreadyReserved):
				return ErrSlotNotAvailable
			case errors.Is(err, reservationRepo.ErrReferenceNotFound):
				// слот заблокирован выше, значит не хватает строки организатора
				return ErrOrganizerNotFound
			}
			return fmt.Errorf("%w: Create - insert reservation: %w", ErrInternal, err)
		}

		// перечитываем с join, чтобы получить имя организатора
		result, err = s.reservationRepo.GetDetails(txCtx, created.ID)
		if err != nil {
			return fmt.Errorf("%w: Create - reload reservation: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if pgerrors.IsSerializationFailure(err) {
			err = ErrSlotNotAvailable
		}
		switch {
		case errors.Is(err, ErrSlotNotAvailable):
			s.metrics.IncReservationEvent(metrics.ReservationConflict)
			s.logger.Warn("Create: slot=%d is not available for organizer=%d", slotID, actor.ID)
		case errors.Is(err, ErrSlotNotFound):
			s.logger.Warn("Create: slot=%d not found", slotID)
		case errors.Is(err, ErrOrganizerNotFound):
			s.logger.Warn("Create: organizer=%d is not registered", actor.ID)
		default:
			s.logger.Error("Create: failed to book slot=%d: %v", slotID, err)
		}
		return nil, err
	}

	s.metrics.IncReservationEvent(metrics.ReservationCreated)
	s.logger.Info("Create: reservation id=%d created for slot=%d", result.ID, slotID)
	return models.FromDomainDetails(result), nil
}

// Cancel отменяет бронирование и возвращает слот в open.
// Отменить может организатор бронирования или менеджер центра.
func (s *Service) Cancel(ctx context.Context, actor domain.Actor, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("Cancel: actor=%d cancels reservation id=%d", actor.ID, id)

	now := s.timeProvider.Now()
	var result *domain.ReservationDetails

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		details, err := s.getDetails(txCtx, id)
		if err != nil {
			return err
		}

		if err := authz.Require(actor, authz.AnyOf(
			authz.OrganizerOf(details.OrganizerID),
			authz.ManagerOf(details.Slot.ManagerID),
		)); err != nil {
			return ErrAccessDenied
		}

		if details.IsCancelled() {
			return ErrAlreadyCancelled
		}

		if err := s.reservationRepo.MarkCancelled(txCtx, id, now); err != nil {
			if errors.Is(err, reservationRepo.ErrAlreadyCancelled) {
				return ErrAlreadyCancelled
			}
			return fmt.Errorf("%w: Cancel - mark cancelled: %w", ErrInternal, err)
		}

		if err := s.slotRepo.Release(txCtx, details.SlotID); err != nil {
			return fmt.Errorf("%w: Cancel - release slot: %w", ErrInternal, err)
		}

		details.Status = domain.ReservationCancelled
		details.CancelledAt = &now
		details.Slot.Status = domain.SlotOpen
		result = details
		return nil
	})
	if err != nil {
		s.logFailure("Cancel", id, err)
		return nil, err
	}

	s.metrics.IncReservationEvent(metrics.ReservationCancelled)
	s.logger.Info("Cancel: reservation id=%d cancelled, slot=%d is open again", id, result.SlotID)
	return models.FromDomainDetails(result), nil
}

// Complete менеджер отмечает бронирование оплаченным (pending -> paid).
// Подтверждение платежа при этом не меняется.
func (s *Service) Complete(ctx context.Context, actor domain.Actor, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("Complete: actor=%d completes reservation id=%d", actor.ID, id)

	var result *domain.ReservationDetails

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		details, err := s.getDetails(txCtx, id)
		if err != nil {
			return err
		}

		if err := authz.Require(actor, authz.ManagerOf(details.Slot.ManagerID)); err != nil {
			return ErrAccessDenied
		}

		if !details.CanBeCompleted() {
			return fmt.Errorf("%w: reservation is %s", ErrInvalidTransition, details.Status)
		}

		if err := s.reservationRepo.MarkPaid(txCtx, id); err != nil {
			if errors.Is(err, reservationRepo.ErrStatusChanged) {
				return fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
			}
			return fmt.Errorf("%w: Complete - mark paid: %w", ErrInternal, err)
		}

		details.Status = domain.ReservationPaid
		result = details
		return nil
	})
	if err != nil {
		s.logFailure("Complete", id, err)
		return nil, err
	}

	s.metrics.IncReservationEvent(metrics.ReservationCompleted)
	s.logger.Info("Complete: reservation id=%d is paid", id)
	return models.FromDomainDetails(result), nil
}

// Rate сохраняет оценки организатора и пересчитывает рейтинг центра в той же транзакции
func (s *Service) Rate(ctx context.Context, actor domain.Actor, id int64, req *models.RateRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Rate: actor=%d rates reservation id=%d", actor.ID, id)

	rating := req.ToDomain()
	if err := validateRating(rating); err != nil {
		s.logger.Warn("Rate: validation failed: %v", err)
		return nil, err
	}

	var result *domain.ReservationDetails

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		details, err := s.getDetails(txCtx, id)
		if err != nil {
			return err
		}

		if err := authz.Require(actor, authz.OrganizerOf(details.OrganizerID)); err != nil {
			return ErrAccessDenied
		}

		if !details.CanBeRated() {
			return ErrNotRatable
		}

		if err := s.reservationRepo.SetRating(txCtx, id, rating); err != nil {
			if errors.Is(err, reservationRepo.ErrStatusChanged) {
				return ErrNotRatable
			}
			return fmt.Errorf("%w: Rate - set rating: %w", ErrInternal, err)
		}

		avg, err := s.venueRepo.RecalculateRating(txCtx, details.Slot.VenueID)
		if err != nil {
			return fmt.Errorf("%w: Rate - recalculate venue rating: %w", ErrInternal, err)
		}
		s.logger.Info("Rate: venue=%d average rating is now %.1f", details.Slot.VenueID, avg)

		details.ServiceRating = rating.Service
		details.FacilityRating = rating.Facility
		details.CleanlinessRating = rating.Cleanliness
		details.Comment = rating.Comment
		result = details
		return nil
	})
	if err != nil {
		s.logFailure("Rate", id, err)
		return nil, err
	}

	s.metrics.IncReservationEvent(metrics.ReservationRated)
	return models.FromDomainDetails(result), nil
}

// GetByID получает бронирование. Доступно организатору и менеджеру центра.
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for actor=%d", id, actor.ID)

	details, err := s.getDetails(ctx, id)
	if err != nil {
		s.logFailure("GetByID", id, err)
		return nil, err
	}

	if err := authz.Require(actor, authz.AnyOf(
		authz.OrganizerOf(details.OrganizerID),
		authz.ManagerOf(details.Slot.ManagerID),
	)); err != nil {
		s.logger.Warn("GetByID: access denied for actor=%d to reservation id=%d", actor.ID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainDetails(details), nil
}

// ListMine бронирования организатора, новые первыми
func (s *Service) ListMine(ctx context.Context, actor domain.Actor) (*models.ReservationListResponse, error) {
	s.logger.Info("ListMine: fetching reservations for organizer=%d", actor.ID)

	if err := authz.Require(actor, authz.IsOrganizer()); err != nil {
		s.logger.Warn("ListMine: %v", err)
		return nil, ErrAccessDenied
	}

	list, err := s.reservationRepo.ListByOrganizer(ctx, actor.ID)
	if err != nil {
		s.logger.Error("ListMine: repository error for organizer=%d: %v", actor.ID, err)
		return nil, fmt.Errorf("%w: ListMine - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListMine: fetched %d reservations for organizer=%d", len(list), actor.ID)
	return models.FromDomainDetailsList(list), nil
}

// ListManaged бронирования центров менеджера с фильтрами
func (s *Service) ListManaged(ctx context.Context, actor domain.Actor, req *models.ManagedReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("ListManaged: fetching reservations for manager=%d", actor.ID)

	if err := authz.Require(actor, authz.IsManager()); err != nil {
		s.logger.Warn("ListManaged: %v", err)
		return nil, ErrAccessDenied
	}

	filter, err := toManagedFilter(actor.ID, req)
	if err != nil {
		s.logger.Warn("ListManaged: invalid filter: %v", err)
		return nil, err
	}

	list, err := s.reservationRepo.ListManaged(ctx, filter)
	if err != nil {
		s.logger.Error("ListManaged: repository error for manager=%d: %v", actor.ID, err)
		return nil, fmt.Errorf("%w: ListManaged - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListManaged: fetched %d reservations for manager=%d", len(list), actor.ID)
	return models.FromDomainDetailsList(list), nil
}

func (s *Service) getDetails(ctx context.Context, id int64) (*domain.ReservationDetails, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	details, err := s.reservationRepo.GetDetails(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("%w: get reservation: %v", ErrInternal, err)
	}
	return details, nil
}

func (s *Service) logFailure(op string, id int64, err error) {
	if errors.Is(err, ErrInternal) {
		s.logger.Error("%s: reservation id=%d: %v", op, id, err)
		return
	}
	s.logger.Warn("%s: reservation id=%d: %v", op, id, err)
}
