package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueBooking/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBooking/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBooking/internal/service/reservations"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlotID      = "некорректный ID слота"
	msgUnauthorized       = "требуется авторизация"
	msgSlotNotFound       = "слот не найден"
	msgSlotNotAvailable   = "выбранный слот недоступен"
	msgForbidden          = "бронировать могут только организаторы"
	msgOrganizerNotFound  = "пользователь не найден"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.SlotID <= 0 {
		h.logger.Warn("POST /reservations - Invalid slot ID: %d", req.SlotID)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	result, err := h.service.Create(r.Context(), actor, req.SlotID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrSlotNotAvailable):
			h.logger.Warn("POST /reservations - Slot not available: slot_id=%d, actor_id=%d", req.SlotID, actor.ID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, reservations.ErrSlotNotFound):
			h.logger.Warn("POST /reservations - Slot not found: slot_id=%d", req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, reservations.ErrOrganizerNotFound):
			h.logger.Warn("POST /reservations - Organizer not found: actor_id=%d", actor.ID)
			handlers.RespondNotFound(w, msgOrganizerNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("POST /reservations - Access denied: actor_id=%d, role=%s", actor.ID, actor.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidSlotID)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: slot_id=%d, actor_id=%d, error=%v",
				req.SlotID, actor.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, slot_id=%d, actor_id=%d",
		result.ID, req.SlotID, actor.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
