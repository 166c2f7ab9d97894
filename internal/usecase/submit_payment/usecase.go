package submit_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueBooking/internal/authz"
	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	paymentRepo "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/payment"
	reservationRepo "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-VenueBooking/pkg/metrics"
	"github.com/m04kA/SMC-VenueBooking/pkg/pgerrors"
)

// UseCase use case для оплаты бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	paymentRepo     PaymentRepository
	receipts        ReceiptStore
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	paymentRepo PaymentRepository,
	receipts ReceiptStore,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		paymentRepo:     paymentRepo,
		receipts:        receipts,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute регистрирует платеж по бронированию.
// Платеж создается неподтвержденным, бронирование остается pending до завершения менеджером.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitPayment: organizer=%d, reservation=%d, amount=%s, receipt=%d bytes",
		req.Actor.ID, req.ReservationID, req.Amount, len(req.Receipt))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitPayment: validation failed: %v", err)
		return nil, err
	}
	if err := authz.Require(req.Actor, authz.IsOrganizer()); err != nil {
		uc.logger.Warn("SubmitPayment: %v", err)
		return nil, ErrAccessDenied
	}

	// 2. Сохраняем чек до транзакции
	var receiptRef *string
	if len(req.Receipt) > 0 {
		ref, err := uc.receipts.Put(ctx, req.ReceiptContentType, req.Receipt)
		if err != nil {
			uc.logger.Error("SubmitPayment: failed to store receipt: %v", err)
			return nil, fmt.Errorf("%w: failed to store receipt: %v", ErrInternal, err)
		}
		receiptRef = &ref
	}

	now := uc.timeProvider.Now()
	var (
		created *domain.Payment
		price   = req.Amount
	)

	// 3. Проверки и создание платежа в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		details, err := uc.reservationRepo.GetDetails(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to get reservation: %w", ErrInternal, err)
		}
		price = details.Slot.Price

		if err := authz.Require(req.Actor, authz.OrganizerOf(details.OrganizerID)); err != nil {
			return ErrAccessDenied
		}

		if !details.IsPayable() {
			return fmt.Errorf("%w: reservation is %s", ErrNotPayable, details.Status)
		}

		exists, err := uc.paymentRepo.ExistsForReservation(txCtx, req.ReservationID)
		if err != nil {
			return fmt.Errorf("%w: failed to check existing payment: %w", ErrInternal, err)
		}
		if exists {
			return ErrDuplicatePayment
		}

		if !domain.IsSufficientPayment(req.Amount, details.Slot.Price) {
			return fmt.Errorf("%w: minimum is %s", ErrInsufficientAmount, domain.MinimumPayment(details.Slot.Price))
		}

		created, err = uc.paymentRepo.Create(txCtx, &domain.Payment{
			ReservationID: req.ReservationID,
			Amount:        req.Amount,
			PaidAt:        now,
			Confirmed:     false,
			ReceiptRef:    receiptRef,
		})
		if err != nil {
			switch {
			case errors.Is(err, paymentRepo.ErrDuplicatePayment):
				return ErrDuplicatePayment
			case errors.Is(err, paymentRepo.ErrReservationNotFound):
				return ErrReservationNotFound
			case errors.Is(err, paymentRepo.ErrInvalidAmount):
				return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
			}
			return fmt.Errorf("%w: failed to create payment: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if pgerrors.IsSerializationFailure(err) {
			err = uc.resolveConflict(ctx, req.ReservationID, err)
		}
		uc.discardReceipt(receiptRef)

		if errors.Is(err, ErrInternal) {
			uc.logger.Error("SubmitPayment: reservation=%d: %v", req.ReservationID, err)
		} else {
			uc.metrics.IncPaymentEvent(metrics.PaymentRejected)
			uc.logger.Warn("SubmitPayment: reservation=%d rejected: %v", req.ReservationID, err)
		}
		return nil, err
	}

	uc.metrics.IncPaymentEvent(metrics.PaymentSubmitted)
	uc.logger.Info("SubmitPayment: payment id=%d created for reservation=%d", created.ID, req.ReservationID)

	return &Response{
		ID:                created.ID,
		ReservationID:     created.ReservationID,
		Amount:            created.Amount,
		MinimumAmount:     domain.MinimumPayment(price),
		PaidAt:            created.PaidAt,
		Confirmed:         created.Confirmed,
		ReceiptRef:        created.ReceiptRef,
		ReservationStatus: string(domain.ReservationPending),
	}, nil
}

// resolveConflict разбирает откат сериализации: дубль только если платеж уже сохранен
func (uc *UseCase) resolveConflict(ctx context.Context, reservationID int64, cause error) error {
	exists, err := uc.paymentRepo.ExistsForReservation(ctx, reservationID)
	if err != nil {
		return fmt.Errorf("%w: failed to recheck payment after conflict: %w", ErrInternal, err)
	}
	if exists {
		return ErrDuplicatePayment
	}
	return fmt.Errorf("%w: %v", ErrConcurrentUpdate, cause)
}

// discardReceipt удаляет сохраненный чек после неудачной транзакции
func (uc *UseCase) discardReceipt(ref *string) {
	if ref == nil {
		return
	}
	// запрос мог быть отменен, удаляем с отдельным контекстом
	if err := uc.receipts.Delete(context.Background(), *ref); err != nil {
		uc.logger.Warn("SubmitPayment: failed to delete orphan receipt %s: %v", *ref, err)
	}
}
