package get_statistics

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueBooking/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBooking/internal/api/middleware"
	getStatistics "github.com/m04kA/SMC-VenueBooking/internal/usecase/get_statistics"
)

const (
	msgUnauthorized = "требуется авторизация"
	msgForbidden    = "статистика доступна только менеджерам"
)

type Handler struct {
	useCase GetStatisticsUseCase
	logger  Logger
}

func NewHandler(useCase GetStatisticsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/manager/statistics
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getStatistics.Request{Actor: actor})
	if err != nil {
		if errors.Is(err, getStatistics.ErrAccessDenied) {
			h.logger.Warn("GET /manager/statistics - Access denied: actor_id=%d", actor.ID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		h.logger.Error("GET /manager/statistics - Failed to get statistics: actor_id=%d, error=%v", actor.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
