// Package retrieve queries the similarity index for incidents similar to
// the assessed text and projects them to evidence records.
package retrieve

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethicswatch/ethicswatch/internal/index"
	"github.com/ethicswatch/ethicswatch/internal/model"
)

// ErrUnavailable marks an unreachable similarity index. Emptiness and
// unavailability are distinct outcomes: an empty corpus returns an empty
// slice and nil error, an unreachable index returns this.
var ErrUnavailable = errors.New("similarity index unavailable")

// DefaultTopK is the sane retrieval depth callers fall back to.
const DefaultTopK = 3

// Retriever fetches the incidents most similar to a text. It never
// re-ranks: the collaborator's similarity ordering is preserved.
type Retriever struct {
	store index.Store
}

// NewRetriever creates a retriever over the given index
func NewRetriever(store index.Store) *Retriever {
	return &Retriever{store: store}
}

// Retrieve returns at most k evidence records, ranked by descending
// similarity. k values below 1 are coerced to DefaultTopK.
func (r *Retriever) Retrieve(ctx context.Context, text string, k int) ([]model.Evidence, error) {
	if k < 1 {
		k = DefaultTopK
	}

	hits, err := r.store.SimilaritySearch(ctx, text, k)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	evidence := make([]model.Evidence, 0, len(hits))
	for _, h := range hits {
		evidence = append(evidence, model.Evidence{
			Snippet: h.Content,
			Source:  metadataSource(h.Metadata),
		})
	}
	return evidence, nil
}

// metadataSource pulls the provenance string out of hit metadata. A
// missing source is not an error, just absent provenance.
func metadataSource(md map[string]interface{}) string {
	if md == nil {
		return ""
	}
	if s, ok := md["source"].(string); ok {
		return s
	}
	return ""
}
