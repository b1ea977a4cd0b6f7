package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultLimiterPrefix = "authgw:rl:"

// LimitResult is the outcome of a single Allow call.
type LimitResult struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// FixedWindowLimiter counts hits per key in fixed windows (INCR + EXPIRE).
// Key format: <prefix><key>:<window_start_unix>
type FixedWindowLimiter struct {
	client *redis.Client
	prefix string
	max    int64
	window time.Duration
}

// NewFixedWindowLimiter allows max hits per key in every window.
func NewFixedWindowLimiter(client *redis.Client, prefix string, max int, window time.Duration) *FixedWindowLimiter {
	if prefix == "" {
		prefix = defaultLimiterPrefix
	}
	if window <= 0 {
		window = time.Minute
	}
	return &FixedWindowLimiter{client: client, prefix: prefix, max: int64(max), window: window}
}

func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) (LimitResult, error) {
	now := time.Now().UTC()
	start := now.Truncate(l.window)
	redisKey := l.key(key, start)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return LimitResult{}, fmt.Errorf("rate limit: %w", err)
	}

	hits := incr.Val()
	remaining := l.max - hits
	if remaining < 0 {
		remaining = 0
	}
	res := LimitResult{Allowed: hits <= l.max, Remaining: remaining}
	if !res.Allowed {
		res.RetryAfter = start.Add(l.window).Sub(now)
	}
	return res, nil
}

func (l *FixedWindowLimiter) key(key string, windowStart time.Time) string {
	return fmt.Sprintf("%s%s:%d", l.prefix, strings.ReplaceAll(key, " ", "_"), windowStart.Unix())
}
