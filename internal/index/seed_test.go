package index

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSeedFile(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "incidents.jsonl")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	return path
}

func TestSeedFromJSONL(t *testing.T) {
	store := newTestStore(t, &stubEmbedder{fallback: []float64{1, 0}})

	path := writeSeedFile(t,
		`{"id": "inc-1", "page_content": "Chatbot gave harmful medical advice", "metadata": {"source": "news", "tags": ["health", "llm"]}}`,
		``,
		`{"page_content": "Facial recognition misidentified suspects"}`,
	)

	n, err := SeedFromJSONL(context.Background(), store, path)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != 2 {
		t.Errorf("seeded %d, want 2", n)
	}
	if store.Count() != 2 {
		t.Errorf("store holds %d, want 2", store.Count())
	}

	hits, err := store.SimilaritySearch(context.Background(), "medical chatbot", 2)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	for _, h := range hits {
		if h.Content == "Chatbot gave harmful medical advice" {
			if h.Metadata["tags"] != "health, llm" {
				t.Errorf("tags not sanitized to scalar: %#v", h.Metadata["tags"])
			}
			return
		}
	}
	t.Error("seeded document not found in search results")
}

func TestSeedFromJSONLMalformedLine(t *testing.T) {
	store := newTestStore(t, &stubEmbedder{fallback: []float64{1}})

	path := writeSeedFile(t,
		`{"page_content": "valid record"}`,
		`{not json at all`,
	)

	_, err := SeedFromJSONL(context.Background(), store, path)
	if !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error should name the line: %v", err)
	}
	if store.Count() != 0 {
		t.Errorf("malformed seed must not partially load, store holds %d", store.Count())
	}
}

func TestSeedFromJSONLMissingContent(t *testing.T) {
	store := newTestStore(t, &stubEmbedder{fallback: []float64{1}})

	path := writeSeedFile(t, `{"id": "inc-1", "metadata": {"source": "x"}}`)

	_, err := SeedFromJSONL(context.Background(), store, path)
	if !errors.Is(err, ErrMalformedRecord) {
		t.Errorf("expected ErrMalformedRecord, got %v", err)
	}
}

func TestSeedFromJSONLGeneratesIDs(t *testing.T) {
	store := newTestStore(t, &stubEmbedder{fallback: []float64{1}})

	path := writeSeedFile(t, `{"page_content": "no id on this one"}`)

	if _, err := SeedFromJSONL(context.Background(), store, path); err != nil {
		t.Fatalf("seed: %v", err)
	}

	store.mu.RLock()
	defer store.mu.RUnlock()
	if store.docs[0].ID == "" {
		t.Error("expected a generated id")
	}
}

func TestSeedFromJSONLEmptyFile(t *testing.T) {
	store := newTestStore(t, &stubEmbedder{fallback: []float64{1}})

	n, err := SeedFromJSONL(context.Background(), store, writeSeedFile(t, ""))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != 0 {
		t.Errorf("seeded %d from empty file", n)
	}
}

func TestSeedFromJSONLMissingFile(t *testing.T) {
	store := newTestStore(t, &stubEmbedder{fallback: []float64{1}})

	if _, err := SeedFromJSONL(context.Background(), store, "/nonexistent/path.jsonl"); err == nil {
		t.Error("expected error for missing file")
	}
}
