package middleware

import (
	"context"
	"time"
)

// HTTPMetrics сборщик HTTP метрик (*metrics.Metrics)
type HTTPMetrics interface {
	ObserveHTTPRequest(method, route, status string, duration time.Duration)
}

// Limiter ограничитель частоты запросов (*ratelimit.RedisLimiter)
type Limiter interface {
	Allow(ctx context.Context, clientKey string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
