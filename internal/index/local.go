package index

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/ethicswatch/ethicswatch/internal/embed"
)

const indexFile = "incidents.json"

// LocalStore is a file-backed similarity index: documents and their
// embedding vectors live in one JSON file, loaded into memory at open,
// searched by cosine similarity. Reads take no lock beyond the RWMutex;
// writes happen only through Add (the ingestion path).
type LocalStore struct {
	dir      string
	embedder embed.Embedder

	mu   sync.RWMutex
	docs []Document
}

// NewLocalStore opens (or creates) a local index in dir.
func NewLocalStore(dir string, embedder embed.Embedder) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create index dir: %w", err)
	}

	s := &LocalStore{dir: dir, embedder: embedder}

	data, err := os.ReadFile(s.path())
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	if err := json.Unmarshal(data, &s.docs); err != nil {
		return nil, fmt.Errorf("parse index: %w", err)
	}

	return s, nil
}

// Count returns the number of stored documents
func (s *LocalStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Add embeds and persists documents. Documents that already carry a
// vector are stored as-is.
func (s *LocalStore) Add(ctx context.Context, docs []Document) error {
	for i := range docs {
		if docs[i].Content == "" {
			return fmt.Errorf("%w: document %q has no content", ErrMalformedRecord, docs[i].ID)
		}
		if docs[i].Vector != nil {
			continue
		}
		vec, err := s.embedder.Embed(ctx, docs[i].Content)
		if err != nil {
			return fmt.Errorf("embed document %q: %w", docs[i].ID, err)
		}
		docs[i].Vector = vec
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs = append(s.docs, docs...)
	return s.persist()
}

// SimilaritySearch embeds the query and returns the k nearest documents
// by cosine similarity, descending. An empty corpus yields an empty
// result with no error; an embedding failure is an unavailability error.
func (s *LocalStore) SimilaritySearch(ctx context.Context, query string, k int) ([]Hit, error) {
	s.mu.RLock()
	docs := s.docs
	s.mu.RUnlock()

	if len(docs) == 0 {
		return nil, nil
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits := make([]Hit, 0, len(docs))
	for _, d := range docs {
		hits = append(hits, Hit{
			Content:  d.Content,
			Metadata: d.Metadata,
			Score:    cosineSimilarity(queryVec, d.Vector),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// persist writes the index atomically. Caller holds the write lock.
func (s *LocalStore) persist() error {
	data, err := json.Marshal(s.docs)
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}

	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	if err := os.Rename(tmp, s.path()); err != nil {
		return fmt.Errorf("replace index: %w", err)
	}
	return nil
}

func (s *LocalStore) path() string {
	return filepath.Join(s.dir, indexFile)
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched or zero-norm vectors score 0.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
