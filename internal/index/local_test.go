package index

import (
	"context"
	"errors"
	"testing"
)

// stubEmbedder returns canned vectors per text, with a fallback.
type stubEmbedder struct {
	vectors  map[string][]float64
	fallback []float64
	err      error
}

func (e *stubEmbedder) Name() string { return "stub" }

func (e *stubEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	if e.err != nil {
		return nil, e.err
	}
	if v, ok := e.vectors[text]; ok {
		return v, nil
	}
	return e.fallback, nil
}

func newTestStore(t *testing.T, embedder *stubEmbedder) *LocalStore {
	t.Helper()
	store, err := NewLocalStore(t.TempDir(), embedder)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return store
}

func TestLocalStoreEmptySearch(t *testing.T) {
	store := newTestStore(t, &stubEmbedder{fallback: []float64{1, 0}})

	hits, err := store.SimilaritySearch(context.Background(), "anything", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("expected no hits on empty corpus, got %d", len(hits))
	}
}

func TestLocalStoreRanking(t *testing.T) {
	embedder := &stubEmbedder{
		vectors: map[string][]float64{
			"query":    {1, 0},
			"close":    {0.9, 0.1},
			"far":      {0, 1},
			"opposite": {-1, 0},
		},
	}
	store := newTestStore(t, embedder)

	docs := []Document{
		{ID: "1", Content: "far"},
		{ID: "2", Content: "close"},
		{ID: "3", Content: "opposite"},
	}
	if err := store.Add(context.Background(), docs); err != nil {
		t.Fatalf("add: %v", err)
	}

	hits, err := store.SimilaritySearch(context.Background(), "query", 2)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0].Content != "close" {
		t.Errorf("best hit = %q, want close", hits[0].Content)
	}
	if hits[0].Score <= hits[1].Score {
		t.Errorf("hits not in descending similarity: %f <= %f", hits[0].Score, hits[1].Score)
	}
}

func TestLocalStoreKLargerThanCorpus(t *testing.T) {
	store := newTestStore(t, &stubEmbedder{fallback: []float64{1, 0}})

	if err := store.Add(context.Background(), []Document{{ID: "1", Content: "only"}}); err != nil {
		t.Fatalf("add: %v", err)
	}

	hits, err := store.SimilaritySearch(context.Background(), "query", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 1 {
		t.Errorf("expected 1 hit, got %d", len(hits))
	}
}

func TestLocalStorePersistence(t *testing.T) {
	embedder := &stubEmbedder{fallback: []float64{1, 0}}
	dir := t.TempDir()

	store, err := NewLocalStore(dir, embedder)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	docs := []Document{{ID: "1", Content: "remembered", Metadata: map[string]interface{}{"source": "x"}}}
	if err := store.Add(context.Background(), docs); err != nil {
		t.Fatalf("add: %v", err)
	}

	reopened, err := NewLocalStore(dir, embedder)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	if reopened.Count() != 1 {
		t.Fatalf("expected 1 document after reopen, got %d", reopened.Count())
	}

	hits, err := reopened.SimilaritySearch(context.Background(), "query", 1)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if hits[0].Content != "remembered" {
		t.Errorf("content = %q", hits[0].Content)
	}
	if hits[0].Metadata["source"] != "x" {
		t.Errorf("metadata = %#v", hits[0].Metadata)
	}
}

func TestLocalStoreAddRejectsEmptyContent(t *testing.T) {
	store := newTestStore(t, &stubEmbedder{fallback: []float64{1}})

	err := store.Add(context.Background(), []Document{{ID: "1"}})
	if !errors.Is(err, ErrMalformedRecord) {
		t.Errorf("expected ErrMalformedRecord, got %v", err)
	}
}

func TestLocalStoreSearchEmbedFailure(t *testing.T) {
	embedder := &stubEmbedder{fallback: []float64{1, 0}}
	store := newTestStore(t, embedder)
	if err := store.Add(context.Background(), []Document{{ID: "1", Content: "doc"}}); err != nil {
		t.Fatalf("add: %v", err)
	}

	embedder.err = errors.New("backend down")
	if _, err := store.SimilaritySearch(context.Background(), "query", 1); err == nil {
		t.Error("expected error when query embedding fails")
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2}, []float64{1, 2}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"length mismatch", []float64{1, 0}, []float64{1}, 0},
		{"zero norm", []float64{0, 0}, []float64{1, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cosineSimilarity(tt.a, tt.b)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("got %f, want %f", got, tt.want)
			}
		})
	}
}
