// Package resources HTTP обработчики пространств (корты, поля, бассейны).
package resources

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-VenueBooking/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBooking/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBooking/internal/service/resources"
	"github.com/m04kA/SMC-VenueBooking/internal/service/resources/models"
)

const (
	msgInvalidResourceID  = "некорректный ID пространства"
	msgInvalidVenueID     = "некорректный ID центра"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "требуется авторизация"
	msgNotFound           = "пространство не найдено"
	msgVenueNotFound      = "центр не найден"
	msgAlreadyExists      = "пространство с таким названием уже есть в центре"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "некорректные данные пространства"
)

type Handler struct {
	service ResourceService
	logger  Logger
}

func NewHandler(service ResourceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/resources
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.CreateResourceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /resources - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		h.respondError(w, "POST /resources", err)
		return
	}

	h.logger.Info("POST /resources - Resource created: resource_id=%d, venue_id=%d", result.ID, req.VenueID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/resources/{resourceId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	resourceID, err := handlers.PathID(r, "resourceId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.UpdateResourceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /resources/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), actor, resourceID, &req)
	if err != nil {
		h.respondError(w, "PUT /resources/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/resources/{resourceId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	resourceID, err := handlers.PathID(r, "resourceId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	if err := h.service.Delete(r.Context(), actor, resourceID); err != nil {
		h.respondError(w, "DELETE /resources/{id}", err)
		return
	}

	h.logger.Info("DELETE /resources/{id} - Resource deleted: resource_id=%d", resourceID)
	w.WriteHeader(http.StatusNoContent)
}

// Get GET /api/v1/resources/{resourceId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	resourceID, err := handlers.PathID(r, "resourceId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	result, err := h.service.GetByID(r.Context(), resourceID)
	if err != nil {
		h.respondError(w, "GET /resources/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// List GET /api/v1/resources
// Query params: venueId, name, category (опционально)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := &models.ListResourcesRequest{}

	if raw := q.Get("venueId"); raw != "" {
		venueID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidVenueID)
			return
		}
		req.VenueID = &venueID
	}
	if v := q.Get("name"); v != "" {
		req.Name = &v
	}
	if v := q.Get("category"); v != "" {
		req.Category = &v
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.respondError(w, "GET /resources", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, resources.ErrResourceNotFound):
		h.logger.Warn("%s - Resource not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, resources.ErrVenueNotFound):
		h.logger.Warn("%s - Venue not found", route)
		handlers.RespondNotFound(w, msgVenueNotFound)

	case errors.Is(err, resources.ErrResourceAlreadyExists):
		h.logger.Warn("%s - Resource already exists", route)
		handlers.RespondConflict(w, msgAlreadyExists)

	case errors.Is(err, resources.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, resources.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
