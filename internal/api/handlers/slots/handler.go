// Package slots HTTP обработчики расписания пространств.
package slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-VenueBooking/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBooking/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/internal/service/slots"
	"github.com/m04kA/SMC-VenueBooking/internal/service/slots/models"
)

const (
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidResourceID  = "некорректный ID пространства"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "требуется авторизация"
	msgNotFound           = "слот не найден"
	msgResourceNotFound   = "пространство не найдено"
	msgInvalidRange       = "время начала должно быть раньше времени окончания"
	msgOverlap            = "слот пересекается с существующим"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "некорректные данные слота"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/slots
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.CreateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		h.respondError(w, "POST /slots", err)
		return
	}

	h.logger.Info("POST /slots - Slot created: slot_id=%d, resource_id=%d", result.ID, result.ResourceID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/slots/{slotId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	slotID, actor, ok := h.prepare(w, r)
	if !ok {
		return
	}

	var req models.UpdateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /slots/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), actor, slotID, &req)
	if err != nil {
		h.respondError(w, "PUT /slots/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// SetStatus PUT /api/v1/slots/{slotId}/status
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	slotID, actor, ok := h.prepare(w, r)
	if !ok {
		return
	}

	var req models.SetStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /slots/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SetStatus(r.Context(), actor, slotID, &req)
	if err != nil {
		h.respondError(w, "PUT /slots/{id}/status", err)
		return
	}

	h.logger.Info("PUT /slots/{id}/status - Slot status changed: slot_id=%d, status=%s", slotID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/slots/{slotId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	slotID, actor, ok := h.prepare(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), actor, slotID); err != nil {
		h.respondError(w, "DELETE /slots/{id}", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get GET /api/v1/slots/{slotId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	slotID, err := handlers.PathID(r, "slotId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	result, err := h.service.GetByID(r.Context(), slotID)
	if err != nil {
		h.respondError(w, "GET /slots/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// List GET /api/v1/slots
// Query params: resourceId, date, status (опционально)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := &models.ListSlotsRequest{}

	if raw := q.Get("resourceId"); raw != "" {
		resourceID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidResourceID)
			return
		}
		req.ResourceID = &resourceID
	}
	if v := q.Get("date"); v != "" {
		req.Date = &v
	}
	if v := q.Get("status"); v != "" {
		req.Status = &v
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.respondError(w, "GET /slots", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) prepare(w http.ResponseWriter, r *http.Request) (int64, domain.Actor, bool) {
	slotID, err := handlers.PathID(r, "slotId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return 0, domain.Actor{}, false
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return 0, domain.Actor{}, false
	}

	return slotID, actor, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, slots.ErrSlotNotFound):
		h.logger.Warn("%s - Slot not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, slots.ErrResourceNotFound):
		h.logger.Warn("%s - Resource not found", route)
		handlers.RespondNotFound(w, msgResourceNotFound)

	case errors.Is(err, slots.ErrSlotOverlap):
		h.logger.Warn("%s - Slot overlap", route)
		handlers.RespondConflict(w, msgOverlap)

	case errors.Is(err, slots.ErrInvalidRange):
		h.logger.Warn("%s - Invalid time range", route)
		handlers.RespondBadRequest(w, msgInvalidRange)

	case errors.Is(err, slots.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, slots.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
