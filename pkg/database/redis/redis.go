// Package redis opens the connection behind the shared product embedding
// cache. A failure here means "no shared cache"; the runner falls back to the
// in-process one.
package redis

import (
	"context"
	"fmt"
	"time"

	"basketDebate/pkg/config"

	"github.com/redis/go-redis/v9"
)

const (
	cacheDialTimeout = 5 * time.Second
	cacheIOTimeout   = 3 * time.Second
	cachePingTimeout = 5 * time.Second

	// one runner looks embeddings up one basket line at a time
	cachePoolSize     = 10
	cacheMinIdleConns = 5
)

func cacheOptions(cfg config.RedisConfig) *redis.Options {
	return &redis.Options{
		Addr:         fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  cacheDialTimeout,
		ReadTimeout:  cacheIOTimeout,
		WriteTimeout: cacheIOTimeout,
		PoolSize:     cachePoolSize,
		MinIdleConns: cacheMinIdleConns,
	}
}

// NewRedisClient connects to the embedding cache backend and pings it.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(cacheOptions(cfg.Redis))

	ctx, cancel := context.WithTimeout(context.Background(), cachePingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("embedding cache backend at %s unreachable: %w", client.Options().Addr, err)
	}

	return client, nil
}

// CloseRedisClient releases the cache connection pool. A nil client is a no-op.
func CloseRedisClient(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}

	return nil
}
