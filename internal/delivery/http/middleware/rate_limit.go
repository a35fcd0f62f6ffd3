package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"
)

// Counter increments a windowed counter. An error means the backing store is
// unavailable and the request is let through.
type Counter interface {
	IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error)
}

type RateLimitMiddleware struct {
	counter Counter
	name    string
	limit   int64
	window  time.Duration
	log     zerolog.Logger
}

func NewRateLimitMiddleware(counter Counter, name string, limit int64, window time.Duration, logger zerolog.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{counter: counter, name: name, limit: limit, window: window, log: logger}
}

// Middleware limits requests per authenticated user and must run after
// AuthMiddleware.
func (m *RateLimitMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if m.counter == nil || m.limit <= 0 {
			return c.Next()
		}
		uid, ok := UserID(c)
		if !ok {
			return c.Next()
		}

		key := fmt.Sprintf("ratelimit:%s:%s", m.name, uid)
		n, err := m.counter.IncrWindow(c.Context(), key, m.window)
		if err != nil {
			m.log.Debug().Err(err).Str("limiter", m.name).Msg("rate limit bypassed")
			return c.Next()
		}

		remaining := m.limit - n
		if remaining < 0 {
			remaining = 0
		}
		c.Set("X-RateLimit-Limit", strconv.FormatInt(m.limit, 10))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if n > m.limit {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(m.window.Seconds())))
			return NewAppError(fiber.StatusTooManyRequests, "Too many requests", nil, nil)
		}
		return c.Next()
	}
}
