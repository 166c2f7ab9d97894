// Package users HTTP обработчики регистрации и профиля.
package users

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueBooking/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBooking/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBooking/internal/service/actors"
	"github.com/m04kA/SMC-VenueBooking/internal/service/actors/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "требуется авторизация"
	msgNotFound           = "пользователь не найден"
	msgEmailTaken         = "email уже зарегистрирован"
	msgTaxIDTaken         = "CPF уже зарегистрирован"
	msgInvalidInput       = "некорректные данные пользователя"
)

type Handler struct {
	service ActorService
	logger  Logger
}

func NewHandler(service ActorService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register POST /api/v1/users
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /users - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /users", err)
		return
	}

	h.logger.Info("POST /users - User registered: user_id=%d, role=%s", result.ID, result.Role)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// CheckEmail POST /api/v1/users/check-email
func (h *Handler) CheckEmail(w http.ResponseWriter, r *http.Request) {
	var req models.CheckEmailRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /users/check-email - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.EmailExists(r.Context(), req.Email)
	if err != nil {
		h.respondError(w, "POST /users/check-email", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Me GET /api/v1/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.service.Get(r.Context(), actor)
	if err != nil {
		h.respondError(w, "GET /me", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, actors.ErrActorNotFound):
		h.logger.Warn("%s - User not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, actors.ErrEmailTaken):
		h.logger.Warn("%s - Email already registered", route)
		handlers.RespondConflict(w, msgEmailTaken)

	case errors.Is(err, actors.ErrTaxIDTaken):
		h.logger.Warn("%s - Tax ID already registered", route)
		handlers.RespondConflict(w, msgTaxIDTaken)

	case errors.Is(err, actors.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
