package rate

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	identifierKeyPrefix = "fd:thr:id:"
	ipKeyPrefix         = "fd:thr:ip:"
)

// Config controls the credential-route throttle.
type Config struct {
	// EnableIPThrottle additionally counts attempts per source address.
	EnableIPThrottle bool
	// MaxAttempts is the number of attempts allowed inside one cooldown window.
	MaxAttempts int
	// Cooldown is the fixed window after the first attempt.
	Cooldown time.Duration
}

// Limiter tracks failed attempts against credential routes in Redis.
type Limiter struct {
	redis  redis.UniversalClient
	config Config
}

// New creates a limiter backed by the given Redis client.
func New(client redis.UniversalClient, cfg Config) *Limiter {
	return &Limiter{redis: client, config: cfg}
}

// Check reports whether the identifier (and optionally the source IP)
// is currently over budget without recording a new attempt.
func (l *Limiter) Check(ctx context.Context, identifier, ip string) error {
	if err := l.checkCounter(ctx, identifierKeyPrefix+identifier); err != nil {
		return err
	}
	if l.config.EnableIPThrottle && ip != "" {
		if err := l.checkCounter(ctx, ipKeyPrefix+ip); err != nil {
			return err
		}
	}
	return nil
}

// Hit records one attempt and returns ErrRateLimited once the budget
// for the window is exhausted.
func (l *Limiter) Hit(ctx context.Context, identifier, ip string) error {
	count, err := l.incrementWithTTL(ctx, identifierKeyPrefix+identifier)
	if err != nil {
		return err
	}
	if count > int64(l.config.MaxAttempts) {
		return ErrRateLimited
	}
	if l.config.EnableIPThrottle && ip != "" {
		ipCount, err := l.incrementWithTTL(ctx, ipKeyPrefix+ip)
		if err != nil {
			return err
		}
		if ipCount > int64(l.config.MaxAttempts) {
			return ErrRateLimited
		}
	}
	return nil
}

// Reset clears the counters after a successful attempt so a legitimate
// caller does not carry stale failures into the next window.
func (l *Limiter) Reset(ctx context.Context, identifier, ip string) error {
	keys := []string{identifierKeyPrefix + identifier}
	if l.config.EnableIPThrottle && ip != "" {
		keys = append(keys, ipKeyPrefix+ip)
	}
	if err := l.redis.Del(ctx, keys...).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

// Attempts returns the current attempt count for an identifier.
func (l *Limiter) Attempts(ctx context.Context, identifier string) (int64, error) {
	count, err := l.redis.Get(ctx, identifierKeyPrefix+identifier).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, ErrRedisUnavailable
	}
	return count, nil
}

func (l *Limiter) checkCounter(ctx context.Context, key string) error {
	count, err := l.redis.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return ErrRedisUnavailable
	}
	if count >= int64(l.config.MaxAttempts) {
		return ErrRateLimited
	}
	return nil
}

// incrementWithTTL bumps a fixed-window counter. The TTL is set only on
// the first increment so the window does not slide with every attempt.
func (l *Limiter) incrementWithTTL(ctx context.Context, key string) (int64, error) {
	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return 0, ErrRedisUnavailable
	}
	if count == 1 {
		if err := l.redis.Expire(ctx, key, l.config.Cooldown).Err(); err != nil {
			return 0, ErrRedisUnavailable
		}
	}
	return count, nil
}
