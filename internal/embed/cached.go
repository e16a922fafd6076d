package embed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ethicswatch/ethicswatch/internal/cache"
)

// CachedEmbedder decorates an Embedder with a byte cache keyed by the
// text's hash. Vectors are stored JSON-encoded so the same cache layer
// serves memory, disk and layered backends.
type CachedEmbedder struct {
	inner Embedder
	cache cache.Cache
}

// NewCachedEmbedder wraps an embedder with a cache
func NewCachedEmbedder(inner Embedder, c cache.Cache) *CachedEmbedder {
	return &CachedEmbedder{inner: inner, cache: c}
}

// Name returns the underlying embedder name
func (e *CachedEmbedder) Name() string {
	return e.inner.Name()
}

// Embed returns the cached vector when present, otherwise delegates and
// caches the result.
func (e *CachedEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	key := cache.Key(e.inner.Name() + ":" + text)

	if data, found := e.cache.Get(key); found {
		var vec []float64
		if err := json.Unmarshal(data, &vec); err == nil {
			return vec, nil
		}
		// Corrupt entry: drop it and recompute.
		_ = e.cache.Delete(key)
	}

	vec, err := e.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(vec)
	if err != nil {
		return nil, fmt.Errorf("marshal vector: %w", err)
	}
	if err := e.cache.Set(key, data, 0); err != nil {
		return nil, fmt.Errorf("cache vector: %w", err)
	}

	return vec, nil
}
