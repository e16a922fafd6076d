package retrieve

import (
	"context"
	"errors"
	"testing"

	"github.com/ethicswatch/ethicswatch/internal/index"
)

type fakeStore struct {
	hits  []index.Hit
	err   error
	lastK int
}

func (s *fakeStore) SimilaritySearch(_ context.Context, _ string, k int) ([]index.Hit, error) {
	s.lastK = k
	if s.err != nil {
		return nil, s.err
	}
	return s.hits, nil
}

func (s *fakeStore) Add(context.Context, []index.Document) error { return nil }
func (s *fakeStore) Count() int                                  { return len(s.hits) }

func TestRetrieveProjectsHits(t *testing.T) {
	store := &fakeStore{hits: []index.Hit{
		{Content: "Hiring model discriminated by gender", Metadata: map[string]interface{}{"source": "aiid"}},
		{Content: "No provenance on this one"},
		{Content: "Non-string source", Metadata: map[string]interface{}{"source": 42}},
	}}
	r := NewRetriever(store)

	evidence, err := r.Retrieve(context.Background(), "hiring bias", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(evidence) != 3 {
		t.Fatalf("expected 3 evidence records, got %d", len(evidence))
	}
	if evidence[0].Snippet != "Hiring model discriminated by gender" || evidence[0].Source != "aiid" {
		t.Errorf("evidence 0 = %+v", evidence[0])
	}
	if evidence[1].Source != "" {
		t.Errorf("missing metadata should give empty source, got %q", evidence[1].Source)
	}
	if evidence[2].Source != "" {
		t.Errorf("non-string source should give empty source, got %q", evidence[2].Source)
	}
}

func TestRetrieveEmptyCorpus(t *testing.T) {
	r := NewRetriever(&fakeStore{})

	evidence, err := r.Retrieve(context.Background(), "anything", 3)
	if err != nil {
		t.Fatalf("empty corpus must not be an error: %v", err)
	}
	if len(evidence) != 0 {
		t.Errorf("expected no evidence, got %d", len(evidence))
	}
}

func TestRetrieveUnavailable(t *testing.T) {
	r := NewRetriever(&fakeStore{err: errors.New("connection refused")})

	_, err := r.Retrieve(context.Background(), "anything", 3)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestRetrieveCoercesK(t *testing.T) {
	tests := []struct {
		name  string
		k     int
		wantK int
	}{
		{"zero", 0, DefaultTopK},
		{"negative", -5, DefaultTopK},
		{"explicit", 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			r := NewRetriever(store)
			if _, err := r.Retrieve(context.Background(), "q", tt.k); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if store.lastK != tt.wantK {
				t.Errorf("store saw k=%d, want %d", store.lastK, tt.wantK)
			}
		})
	}
}
