package embed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethicswatch/ethicswatch/internal/cache"
)

type countingEmbedder struct {
	calls int
	err   error
}

func (e *countingEmbedder) Name() string { return "counting" }

func (e *countingEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	return []float64{float64(len(text)), 1}, nil
}

func TestCachedEmbedderHitsCache(t *testing.T) {
	inner := &countingEmbedder{}
	e := NewCachedEmbedder(inner, cache.NewMemoryCache(time.Minute, time.Minute))

	first, err := e.Embed(context.Background(), "same text")
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	second, err := e.Embed(context.Background(), "same text")
	if err != nil {
		t.Fatalf("embed: %v", err)
	}

	if inner.calls != 1 {
		t.Errorf("inner embedder called %d times, want 1", inner.calls)
	}
	if len(first) != len(second) || first[0] != second[0] {
		t.Errorf("cached vector differs: %v vs %v", first, second)
	}
}

func TestCachedEmbedderDistinctTexts(t *testing.T) {
	inner := &countingEmbedder{}
	e := NewCachedEmbedder(inner, cache.NewMemoryCache(time.Minute, time.Minute))

	_, _ = e.Embed(context.Background(), "first")
	_, _ = e.Embed(context.Background(), "second")

	if inner.calls != 2 {
		t.Errorf("inner embedder called %d times, want 2", inner.calls)
	}
}

func TestCachedEmbedderRecoversFromCorruptEntry(t *testing.T) {
	inner := &countingEmbedder{}
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	e := NewCachedEmbedder(inner, c)

	key := cache.Key(inner.Name() + ":" + "text")
	if err := c.Set(key, []byte("not json"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	vec, err := e.Embed(context.Background(), "text")
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	if len(vec) != 2 {
		t.Errorf("unexpected vector: %v", vec)
	}
	if inner.calls != 1 {
		t.Errorf("corrupt entry should force recompute, calls = %d", inner.calls)
	}
}

func TestCachedEmbedderPropagatesErrors(t *testing.T) {
	inner := &countingEmbedder{err: errors.New("backend down")}
	e := NewCachedEmbedder(inner, cache.NewMemoryCache(time.Minute, time.Minute))

	if _, err := e.Embed(context.Background(), "text"); err == nil {
		t.Error("expected error from inner embedder")
	}
}
