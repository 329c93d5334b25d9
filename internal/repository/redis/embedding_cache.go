package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"basketDebate/pkg/embedding"
	"basketDebate/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// EmbeddingCache keeps encoded product embeddings in Redis so every runner
// process shares one warm cache.
type EmbeddingCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewEmbeddingCache(client *redis.Client, ttl time.Duration) *EmbeddingCache {
	return &EmbeddingCache{
		client: client,
		ttl:    ttl,
	}
}

// key format: "embedding:product:{product_id}"
const embeddingKeyPrefix = "embedding:product:"

func embeddingKey(productID int64) string {
	return fmt.Sprintf("%s%d", embeddingKeyPrefix, productID)
}

// Get reports a miss as (nil, false, nil).
func (c *EmbeddingCache) Get(ctx context.Context, productID int64) ([]float32, bool, error) {
	raw, err := c.client.Get(ctx, embeddingKey(productID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get embedding from Redis: %w", err)
	}

	v, err := embedding.Decode(raw)
	if err != nil {
		// a corrupt entry is dropped and treated as a miss
		logger.Warn("embedding_cache_corrupt_entry", "product_id", productID, "err", err)
		if err := c.evict(ctx, productID); err != nil {
			logger.Warn("embedding_cache_evict_failed", "product_id", productID, "err", err)
		}
		return nil, false, nil
	}
	return v, v != nil, nil
}

func (c *EmbeddingCache) evict(ctx context.Context, productID int64) error {
	if err := c.client.Del(ctx, embeddingKey(productID)).Err(); err != nil {
		return fmt.Errorf("failed to evict embedding from Redis: %w", err)
	}
	return nil
}

func (c *EmbeddingCache) Set(ctx context.Context, productID int64, v []float32) error {
	if len(v) == 0 {
		return nil
	}
	if err := c.client.Set(ctx, embeddingKey(productID), embedding.Encode(v), c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store embedding in Redis: %w", err)
	}
	return nil
}

// Clear removes every cached embedding.
func (c *EmbeddingCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, embeddingKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to clear embedding cache: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan embedding cache: %w", err)
	}
	return nil
}
