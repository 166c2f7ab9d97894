package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueBooking/internal/authz"
	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/internal/infra/blob"
	paymentRepo "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/payment"
	reservationRepo "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-VenueBooking/internal/service/payments/models"
	"github.com/m04kA/SMC-VenueBooking/pkg/metrics"
)

// Service подтверждение платежей и выдача чеков
type Service struct {
	paymentRepo     PaymentRepository
	reservationRepo ReservationRepository
	receipts        ReceiptStore
	metrics         Metrics
	logger          Logger
}

// NewService создает новый экземпляр сервиса платежей
func NewService(
	paymentRepo PaymentRepository,
	reservationRepo ReservationRepository,
	receipts ReceiptStore,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		paymentRepo:     paymentRepo,
		reservationRepo: reservationRepo,
		receipts:        receipts,
		metrics:         metrics,
		logger:          logger,
	}
}

// Confirm менеджер центра подтверждает получение платежа.
// Статус бронирования не меняется.
func (s *Service) Confirm(ctx context.Context, actor domain.Actor, id int64) (*models.PaymentResponse, error) {
	s.logger.Info("Confirm: actor=%d confirms payment id=%d", actor.ID, id)

	payment, details, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.Require(actor, authz.ManagerOf(details.Slot.ManagerID)); err != nil {
		s.logger.Warn("Confirm: %v", err)
		return nil, ErrAccessDenied
	}

	if !payment.Confirmed {
		if err := s.paymentRepo.Confirm(ctx, id); err != nil {
			if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
				return nil, ErrPaymentNotFound
			}
			s.logger.Error("Confirm: repository error for payment id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
		}
		payment.Confirmed = true
		s.metrics.IncPaymentEvent(metrics.PaymentConfirmed)
	}

	s.logger.Info("Confirm: payment id=%d confirmed", id)
	return models.FromDomainPayment(payment, details.Status), nil
}

// GetByID платеж доступен организатору бронирования и менеджеру центра
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.PaymentResponse, error) {
	payment, details, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.Require(actor, authz.AnyOf(
		authz.OrganizerOf(details.OrganizerID),
		authz.ManagerOf(details.Slot.ManagerID),
	)); err != nil {
		s.logger.Warn("GetByID: %v", err)
		return nil, ErrAccessDenied
	}

	return models.FromDomainPayment(payment, details.Status), nil
}

// GetReceipt отдает файл чека организатору бронирования или менеджеру центра
func (s *Service) GetReceipt(ctx context.Context, actor domain.Actor, ref string) (*models.ReceiptResponse, error) {
	s.logger.Info("GetReceipt: actor=%d requests receipt %s", actor.ID, ref)

	if !blob.ValidRef(ref) {
		s.logger.Warn("GetReceipt: invalid reference %q", ref)
		return nil, fmt.Errorf("%w: invalid receipt reference", ErrInvalidInput)
	}

	payment, err := s.paymentRepo.GetByReceiptRef(ctx, ref)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Warn("GetReceipt: no payment references %s", ref)
			return nil, ErrReceiptNotFound
		}
		s.logger.Error("GetReceipt: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetReceipt - repository error: %v", ErrInternal, err)
	}

	details, err := s.getReservation(ctx, payment.ReservationID)
	if err != nil {
		return nil, err
	}

	if err := authz.Require(actor, authz.AnyOf(
		authz.OrganizerOf(details.OrganizerID),
		authz.ManagerOf(details.Slot.ManagerID),
	)); err != nil {
		s.logger.Warn("GetReceipt: %v", err)
		return nil, ErrAccessDenied
	}

	receipt, err := s.receipts.Get(ctx, ref)
	if err != nil {
		if errors.Is(err, blob.ErrReceiptNotFound) {
			s.logger.Warn("GetReceipt: receipt %s is gone from storage", ref)
			return nil, ErrReceiptNotFound
		}
		s.logger.Error("GetReceipt: storage error: %v", err)
		return nil, fmt.Errorf("%w: GetReceipt - storage error: %v", ErrInternal, err)
	}

	return &models.ReceiptResponse{
		ContentType: receipt.ContentType,
		Data:        receipt.Data,
	}, nil
}

func (s *Service) load(ctx context.Context, id int64) (*domain.Payment, *domain.ReservationDetails, error) {
	if id <= 0 {
		return nil, nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Warn("payment id=%d not found", id)
			return nil, nil, ErrPaymentNotFound
		}
		s.logger.Error("failed to get payment id=%d: %v", id, err)
		return nil, nil, fmt.Errorf("%w: get payment: %v", ErrInternal, err)
	}

	details, err := s.getReservation(ctx, payment.ReservationID)
	if err != nil {
		return nil, nil, err
	}
	return payment, details, nil
}

func (s *Service) getReservation(ctx context.Context, id int64) (*domain.ReservationDetails, error) {
	details, err := s.reservationRepo.GetDetails(ctx, id)
	if err != nil {
		// платеж удаляется каскадно вместе с бронированием
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, ErrPaymentNotFound
		}
		s.logger.Error("failed to get reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: get reservation: %v", ErrInternal, err)
	}
	return details, nil
}
