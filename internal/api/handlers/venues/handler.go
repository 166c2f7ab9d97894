// Package venues HTTP обработчики каталога спортивных центров.
package venues

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/m04kA/SMC-VenueBooking/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBooking/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBooking/internal/service/venues"
	"github.com/m04kA/SMC-VenueBooking/internal/service/venues/models"
)

const (
	msgInvalidVenueID     = "некорректный ID центра"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "требуется авторизация"
	msgNotFound           = "центр не найден"
	msgAlreadyExists      = "центр с таким названием уже есть в этом городе"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "некорректные данные центра"
	msgManagerNotFound    = "менеджер не найден"
)

type Handler struct {
	service VenueService
	logger  Logger
}

func NewHandler(service VenueService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/venues
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.CreateVenueRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /venues - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		h.respondError(w, "POST /venues", err)
		return
	}

	h.logger.Info("POST /venues - Venue created: venue_id=%d, manager_id=%d", result.ID, actor.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/venues/{venueId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	venueID, err := handlers.PathID(r, "venueId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.UpdateVenueRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /venues/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), actor, venueID, &req)
	if err != nil {
		h.respondError(w, "PUT /venues/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/venues/{venueId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	venueID, err := handlers.PathID(r, "venueId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	if err := h.service.Delete(r.Context(), actor, venueID); err != nil {
		h.respondError(w, "DELETE /venues/{id}", err)
		return
	}

	h.logger.Info("DELETE /venues/{id} - Venue deleted: venue_id=%d", venueID)
	w.WriteHeader(http.StatusNoContent)
}

// Get GET /api/v1/venues/{venueId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	venueID, err := handlers.PathID(r, "venueId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	result, err := h.service.GetByID(r.Context(), venueID)
	if err != nil {
		h.respondError(w, "GET /venues/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Search GET /api/v1/venues
// Query params: name, city, region, category (опционально)
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.service.Search(r.Context(), &models.SearchVenuesRequest{
		Name:     optional(q, "name"),
		City:     optional(q, "city"),
		Region:   optional(q, "region"),
		Category: optional(q, "category"),
	})
	if err != nil {
		h.respondError(w, "GET /venues", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// ListMine GET /api/v1/manager/venues
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.service.ListMine(r.Context(), actor)
	if err != nil {
		h.respondError(w, "GET /manager/venues", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, venues.ErrVenueNotFound):
		h.logger.Warn("%s - Venue not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, venues.ErrManagerNotFound):
		h.logger.Warn("%s - Manager not found", route)
		handlers.RespondNotFound(w, msgManagerNotFound)

	case errors.Is(err, venues.ErrVenueAlreadyExists):
		h.logger.Warn("%s - Venue already exists", route)
		handlers.RespondConflict(w, msgAlreadyExists)

	case errors.Is(err, venues.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, venues.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}

func optional(q url.Values, key string) *string {
	v := q.Get(key)
	if v == "" {
		return nil
	}
	return &v
}
