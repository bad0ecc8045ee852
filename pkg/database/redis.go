package database

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis wraps the shared go-redis client used for caching and rate limiting
type Redis struct {
	Client *redis.Client
}

// NewRedis connects and verifies the server answers a PING
func NewRedis(ctx context.Context, addr, password string, db int) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Redis{Client: client}, nil
}

func (r *Redis) Close() error {
	return r.Client.Close()
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}
