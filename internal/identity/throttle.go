package identity

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	failKeyPrefix = "auth:fail:" // failed attempt counter: auth:fail:{email}
	defaultLimit  = 5
	defaultWindow = 15 * time.Minute
)

// Throttle damps brute-force login attempts with a TTL'd per-email failure
// counter in Redis. A nil Throttle (or nil client) disables throttling.
type Throttle struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
}

func NewThrottle(rdb *redis.Client) *Throttle {
	return &Throttle{rdb: rdb, limit: defaultLimit, window: defaultWindow}
}

func NewThrottleWithLimits(rdb *redis.Client, limit int64, window time.Duration) *Throttle {
	return &Throttle{rdb: rdb, limit: limit, window: window}
}

func (t *Throttle) enabled() bool { return t != nil && t.rdb != nil }

// Allow reports whether a login attempt for this email may proceed.
func (t *Throttle) Allow(ctx context.Context, email string) (bool, error) {
	if !t.enabled() {
		return true, nil
	}

	n, err := t.rdb.Get(ctx, failKeyPrefix+email).Int64()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return true, err
	}
	return n < t.limit, nil
}

// RecordFailure bumps the failure counter, starting the window on the first
// failure.
func (t *Throttle) RecordFailure(ctx context.Context, email string) error {
	if !t.enabled() {
		return nil
	}

	key := failKeyPrefix + email
	pipe := t.rdb.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, t.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	return nil
}

// Reset clears the counter after a successful login.
func (t *Throttle) Reset(ctx context.Context, email string) error {
	if !t.enabled() {
		return nil
	}
	return t.rdb.Del(ctx, failKeyPrefix+email).Err()
}
