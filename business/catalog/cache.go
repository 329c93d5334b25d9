package catalog

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru"
)

const defaultCacheSize = 10000

// EmbeddingCache maps product ids to embedding vectors. A miss is
// (nil, false, nil); errors are reserved for a broken backend.
type EmbeddingCache interface {
	Get(ctx context.Context, productID int64) ([]float32, bool, error)
	Set(ctx context.Context, productID int64, v []float32) error
}

// MemoryCache is an in-process EmbeddingCache bounded to a fixed number of
// vectors; the least recently used ones are evicted first. Safe for
// concurrent use.
type MemoryCache struct {
	entries *lru.Cache
}

func NewMemoryCache(size int) (*MemoryCache, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	c, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding cache: %w", err)
	}
	return &MemoryCache{entries: c}, nil
}

func (m *MemoryCache) Get(_ context.Context, productID int64) ([]float32, bool, error) {
	v, ok := m.entries.Get(productID)
	if !ok {
		return nil, false, nil
	}
	return v.([]float32), true, nil
}

func (m *MemoryCache) Set(_ context.Context, productID int64, v []float32) error {
	if len(v) == 0 {
		return nil
	}
	m.entries.Add(productID, v)
	return nil
}

// Len is the number of cached vectors.
func (m *MemoryCache) Len() int {
	return m.entries.Len()
}
