// Package payments HTTP обработчики платежей: подтверждение, просмотр, выдача чека.
package payments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VenueBooking/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBooking/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/internal/service/payments"
)

const (
	msgInvalidPaymentID = "некорректный ID платежа"
	msgUnauthorized     = "требуется авторизация"
	msgPaymentNotFound  = "платеж не найден"
	msgReceiptNotFound  = "чек не найден"
	msgForbidden        = "доступ запрещен"
	msgInvalidInput     = "некорректный запрос"

	receiptPrefix = "receipts/"
)

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Confirm PUT /api/v1/payments/{paymentId}/confirm
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	paymentID, actor, ok := h.prepare(w, r, "PUT /payments/{id}/confirm")
	if !ok {
		return
	}

	result, err := h.service.Confirm(r.Context(), actor, paymentID)
	if err != nil {
		h.respondError(w, "PUT /payments/{id}/confirm", err)
		return
	}

	h.logger.Info("PUT /payments/{id}/confirm - Payment confirmed: payment_id=%d, actor_id=%d", paymentID, actor.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/payments/{paymentId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	paymentID, actor, ok := h.prepare(w, r, "GET /payments/{id}")
	if !ok {
		return
	}

	result, err := h.service.GetByID(r.Context(), actor, paymentID)
	if err != nil {
		h.respondError(w, "GET /payments/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// GetReceipt GET /api/v1/receipts/{key}
// Отдает файл чека как есть, с сохраненным Content-Type
func (h *Handler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	ref := receiptPrefix + mux.Vars(r)["key"]
	receipt, err := h.service.GetReceipt(r.Context(), actor, ref)
	if err != nil {
		h.respondError(w, "GET /receipts/{key}", err)
		return
	}

	w.Header().Set("Content-Type", receipt.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(receipt.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(receipt.Data)
}

func (h *Handler) prepare(w http.ResponseWriter, r *http.Request, route string) (int64, domain.Actor, bool) {
	paymentID, err := handlers.PathID(r, "paymentId")
	if err != nil {
		h.logger.Warn("%s - Invalid payment ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return 0, domain.Actor{}, false
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return 0, domain.Actor{}, false
	}

	return paymentID, actor, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, payments.ErrPaymentNotFound):
		h.logger.Warn("%s - Payment not found", route)
		handlers.RespondNotFound(w, msgPaymentNotFound)

	case errors.Is(err, payments.ErrReceiptNotFound):
		h.logger.Warn("%s - Receipt not found", route)
		handlers.RespondNotFound(w, msgReceiptNotFound)

	case errors.Is(err, payments.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, payments.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
