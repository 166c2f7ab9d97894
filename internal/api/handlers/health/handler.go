// Package health проверка готовности сервиса.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-VenueBooking/internal/api/handlers"
)

const checkTimeout = 2 * time.Second

// Check проверка одной зависимости
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

type Logger interface {
	Warn(format string, v ...interface{})
}

type Response struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type Handler struct {
	checks []Check
	logger Logger
}

func NewHandler(logger Logger, checks ...Check) *Handler {
	return &Handler{
		checks: checks,
		logger: logger,
	}
}

// Handle GET /health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	resp := Response{Status: "ok", Checks: make(map[string]string, len(h.checks))}
	status := http.StatusOK

	for _, c := range h.checks {
		if err := c.Ping(ctx); err != nil {
			h.logger.Warn("GET /health - %s unavailable: %v", c.Name, err)
			resp.Checks[c.Name] = "down"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[c.Name] = "up"
	}

	handlers.RespondJSON(w, status, resp)
}
