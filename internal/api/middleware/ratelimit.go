package middleware

import (
	"errors"
	"net"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-VenueBooking/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBooking/internal/infra/ratelimit"
)

const msgTooManyRequests = "слишком много запросов, попробуйте позже"

// RateLimit ограничивает запросы клиента: по ID пользователя, иначе по IP.
// Ошибки хранилища лимитов не блокируют запрос.
func RateLimit(limiter Limiter, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := limiter.Allow(r.Context(), clientKey(r))
			switch {
			case err == nil:
				next.ServeHTTP(w, r)
			case errors.Is(err, ratelimit.ErrLimitExceeded):
				logger.Warn("%s %s - Rate limit exceeded: client=%s", r.Method, r.URL.Path, clientKey(r))
				handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
			default:
				logger.Error("%s %s - Rate limiter failed: %v", r.Method, r.URL.Path, err)
				next.ServeHTTP(w, r)
			}
		})
	}
}

func clientKey(r *http.Request) string {
	if actor, ok := GetActor(r.Context()); ok {
		return "actor:" + strconv.FormatInt(actor.ID, 10)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
