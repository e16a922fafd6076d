// Package index provides the persistent incident corpus: a similarity
// index over historical incident texts with scalar-only metadata.
package index

import (
	"context"
	"errors"
)

// ErrMalformedRecord marks a corpus record that cannot be ingested.
var ErrMalformedRecord = errors.New("malformed corpus record")

// Document is one stored incident.
type Document struct {
	ID       string                 `json:"id"`
	Content  string                 `json:"content"`
	Metadata map[string]interface{} `json:"metadata,omitempty"` // Scalar-only, see SanitizeMetadata
	Vector   []float64              `json:"vector,omitempty"`
}

// Hit is one similarity search result.
type Hit struct {
	Content  string
	Metadata map[string]interface{}
	Score    float64 // Cosine similarity, higher is more similar
}

// Store is the similarity index collaborator interface. Implementations
// must report "no results" (empty slice, nil error) distinctly from
// "unavailable" (non-nil error).
type Store interface {
	// SimilaritySearch returns up to k hits ranked by descending similarity.
	SimilaritySearch(ctx context.Context, query string, k int) ([]Hit, error)

	// Add ingests documents, computing vectors for those without one.
	Add(ctx context.Context, docs []Document) error

	// Count returns the number of stored documents.
	Count() int
}
