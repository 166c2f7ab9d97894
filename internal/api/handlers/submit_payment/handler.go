package submit_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueBooking/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBooking/internal/api/middleware"
	submitPayment "github.com/m04kA/SMC-VenueBooking/internal/usecase/submit_payment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidReceipt     = "чек должен быть в base64"
	msgInvalidInput       = "некорректные данные платежа"
	msgUnauthorized       = "требуется авторизация"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "оплатить может только организатор бронирования"
	msgNotPayable         = "бронирование не ожидает оплаты"
	msgDuplicatePayment   = "бронирование уже оплачено"
	msgInsufficientAmount = "сумма меньше половины стоимости слота"
	msgConcurrentUpdate   = "бронирование изменено параллельным запросом, повторите попытку"
)

type Handler struct {
	useCase SubmitPaymentUseCase
	logger  Logger
}

func NewHandler(useCase SubmitPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req SubmitPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /payments - Invalid receipt encoding: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReceipt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, submitPayment.ErrReservationNotFound):
			h.logger.Warn("POST /payments - Reservation not found: reservation_id=%d", req.ReservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, submitPayment.ErrAccessDenied):
			h.logger.Warn("POST /payments - Access denied: reservation_id=%d, actor_id=%d", req.ReservationID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, submitPayment.ErrDuplicatePayment):
			h.logger.Warn("POST /payments - Duplicate payment: reservation_id=%d", req.ReservationID)
			handlers.RespondConflict(w, msgDuplicatePayment)

		case errors.Is(err, submitPayment.ErrConcurrentUpdate):
			h.logger.Warn("POST /payments - Concurrent update: reservation_id=%d", req.ReservationID)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		case errors.Is(err, submitPayment.ErrNotPayable):
			handlers.RespondBadRequest(w, msgNotPayable)

		case errors.Is(err, submitPayment.ErrInsufficientAmount):
			handlers.RespondBadRequest(w, msgInsufficientAmount)

		case errors.Is(err, submitPayment.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /payments - Failed to submit payment: reservation_id=%d, actor_id=%d, error=%v",
				req.ReservationID, actor.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments - Payment submitted: payment_id=%d, reservation_id=%d, amount=%s",
		result.ID, result.ReservationID, result.Amount)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
