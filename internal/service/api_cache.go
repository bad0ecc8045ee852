package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prperemyshlev/api-marketplace/internal/domain"
	"github.com/prperemyshlev/api-marketplace/pkg/database"
	"github.com/redis/go-redis/v9"
)

// APICache caches API details looked up by id
type APICache interface {
	Get(ctx context.Context, id string) (*domain.API, bool, error)
	Set(ctx context.Context, api *domain.API) error
	Invalidate(ctx context.Context, id string) error
}

// RedisAPICache stores API details in Redis
type RedisAPICache struct {
	redis *database.Redis
	ttl   time.Duration
}

// NewRedisAPICache creates a new Redis backed API cache
func NewRedisAPICache(redis *database.Redis, ttl time.Duration) *RedisAPICache {
	return &RedisAPICache{redis: redis, ttl: ttl}
}

func apiCacheKey(id string) string {
	return fmt.Sprintf("cache:api:%s", id)
}

// Get returns the cached API, reporting false on a miss
func (c *RedisAPICache) Get(ctx context.Context, id string) (*domain.API, bool, error) {
	raw, err := c.redis.Client.Get(ctx, apiCacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read api cache: %w", err)
	}

	var api domain.API
	if err := json.Unmarshal(raw, &api); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached api: %w", err)
	}
	return &api, true, nil
}

// Set stores the API for the configured TTL
func (c *RedisAPICache) Set(ctx context.Context, api *domain.API) error {
	raw, err := json.Marshal(api)
	if err != nil {
		return fmt.Errorf("failed to encode api: %w", err)
	}
	if err := c.redis.Client.Set(ctx, apiCacheKey(api.ID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write api cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached API
func (c *RedisAPICache) Invalidate(ctx context.Context, id string) error {
	if err := c.redis.Client.Del(ctx, apiCacheKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate api cache: %w", err)
	}
	return nil
}
