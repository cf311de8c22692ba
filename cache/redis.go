package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Redis stores chosen columns in Redis so that several processes share them.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to addr and verifies the connection with a ping.
func NewRedis(ctx context.Context, addr, password string, ttl time.Duration) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	log.Info().Msgf("connected to redis at %s", addr)
	return &Redis{client: client, ttl: ttl}, nil
}

func (r *Redis) Get(ctx context.Context, key string) (int, bool, error) {
	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	column, err := strconv.Atoi(value)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt cache entry %s=%q: %w", key, value, err)
	}
	return column, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, column int) error {
	return r.client.Set(ctx, key, column, r.ttl).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
