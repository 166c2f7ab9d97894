// Package ratelimit ограничивает частоту запросов клиента в фиксированных окнах (Redis) или не ограничивает вовсе (noop).
package ratelimit

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrLimitExceeded возвращается, когда клиент исчерпал лимит окна
var ErrLimitExceeded = errors.New("ratelimit: limit exceeded")

// Limiter проверяет, можно ли выполнить еще один запрос клиента
type Limiter interface {
	Allow(ctx context.Context, clientKey string) error
}

// RedisLimiter лимит запросов на клиента в фиксированных окнах.
// Счетчик общий для всех экземпляров сервиса.
type RedisLimiter struct {
	client    *redis.Client
	limit     int
	window    time.Duration
	keyPrefix string
}

// NewRedisLimiter создает лимитер
func NewRedisLimiter(client *redis.Client, limit int, window time.Duration, prefix string) *RedisLimiter {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &RedisLimiter{
		client:    client,
		limit:     limit,
		window:    window,
		keyPrefix: prefix,
	}
}

// Allow увеличивает счетчик окна и возвращает ErrLimitExceeded сверх лимита
func (l *RedisLimiter) Allow(ctx context.Context, clientKey string) error {
	if l.client == nil || l.limit <= 0 || l.window <= 0 {
		// некорректная конфигурация - пропускаем все
		return nil
	}

	key := l.buildKey(clientKey)
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("ratelimit: incr %s: %w", key, err)
	}

	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return fmt.Errorf("ratelimit: expire %s: %w", key, err)
		}
	}

	if int(count) > l.limit {
		return ErrLimitExceeded
	}

	return nil
}

func (l *RedisLimiter) buildKey(clientKey string) string {
	hash := sha1.Sum([]byte(clientKey))
	return fmt.Sprintf("%s:%s", l.keyPrefix, hex.EncodeToString(hash[:]))
}

// Noop пропускает все запросы
type Noop struct{}

func (Noop) Allow(context.Context, string) error {
	return nil
}

var (
	_ Limiter = (*RedisLimiter)(nil)
	_ Limiter = Noop{}
)
