package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-VenueBooking/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBooking/internal/domain"
)

const (
	msgMissingToken = "требуется авторизация"
	msgInvalidToken = "некорректный токен"
)

var errInvalidClaims = errors.New("invalid token claims")

type actorKey struct{}

// Claims полезная нагрузка токена: sub - ID пользователя, role - manager | organizer
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Auth проверяет Bearer JWT (HS256) и кладет пользователя в контекст
type Auth struct {
	secret []byte
	logger Logger
}

// NewAuth создает middleware аутентификации
func NewAuth(secret string, logger Logger) *Auth {
	return &Auth{
		secret: []byte(secret),
		logger: logger,
	}
}

// Middleware отвечает 401 без валидного токена
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			a.logger.Warn("%s %s - Missing bearer token", r.Method, r.URL.Path)
			handlers.RespondUnauthorized(w, msgMissingToken)
			return
		}

		actor, err := a.Parse(strings.TrimSpace(token))
		if err != nil {
			a.logger.Warn("%s %s - Invalid token: %v", r.Method, r.URL.Path, err)
			handlers.RespondUnauthorized(w, msgInvalidToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// Parse проверяет подпись, срок действия и claims токена
func (a *Auth) Parse(token string) (domain.Actor, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return domain.Actor{}, err
	}
	if !parsed.Valid {
		return domain.Actor{}, errInvalidClaims
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return domain.Actor{}, fmt.Errorf("%w: sub %q", errInvalidClaims, claims.Subject)
	}

	role := domain.Role(claims.Role)
	if !role.IsValid() {
		return domain.Actor{}, fmt.Errorf("%w: role %q", errInvalidClaims, claims.Role)
	}

	return domain.Actor{ID: id, Role: role}, nil
}

// WithActor кладет пользователя в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// GetActor пользователь из контекста (после Auth.Middleware)
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	return actor, ok
}
