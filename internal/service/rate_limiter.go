package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/prperemyshlev/api-marketplace/pkg/database"
	"github.com/redis/go-redis/v9"
)

// RateLimitDecision is the outcome of one rate limit check
type RateLimitDecision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// RateLimiter decides whether a caller may make another request
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (RateLimitDecision, error)
}

// RedisRateLimiter is a sliding window log limiter backed by a Redis sorted set
type RedisRateLimiter struct {
	redis *database.Redis
	now   func() time.Time
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(redis *database.Redis) *RedisRateLimiter {
	return &RedisRateLimiter{redis: redis, now: time.Now}
}

// Allow records the request if the key is under its limit for the window
func (r *RedisRateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (RateLimitDecision, error) {
	now := r.now()
	windowStart := now.Add(-window)
	redisKey := fmt.Sprintf("ratelimit:%s", key)

	var (
		count  *redis.IntCmd
		oldest *redis.ZSliceCmd
	)
	_, err := r.redis.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowStart.UnixMilli(), 10))
		count = pipe.ZCard(ctx, redisKey)
		oldest = pipe.ZRangeWithScores(ctx, redisKey, 0, 0)
		return nil
	})
	if err != nil {
		return RateLimitDecision{}, fmt.Errorf("failed to read rate limit window: %w", err)
	}

	used := int(count.Val())
	if used >= limit {
		decision := RateLimitDecision{RetryAfter: window}
		if entries := oldest.Val(); len(entries) > 0 {
			oldestAt := time.UnixMilli(int64(entries[0].Score))
			decision.RetryAfter = max(window-now.Sub(oldestAt), time.Second).Round(time.Second)
		}
		return decision, nil
	}

	_, err = r.redis.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, redisKey, redis.Z{
			Score:  float64(now.UnixMilli()),
			Member: strconv.FormatInt(now.UnixNano(), 10),
		})
		pipe.Expire(ctx, redisKey, window+time.Minute)
		return nil
	})
	if err != nil {
		return RateLimitDecision{}, fmt.Errorf("failed to record request: %w", err)
	}

	return RateLimitDecision{Allowed: true, Remaining: limit - used - 1}, nil
}
