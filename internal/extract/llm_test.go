package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/ethicswatch/ethicswatch/internal/llm"
)

type fakeProvider struct {
	text    string
	err     error
	lastReq llm.GenerateRequest
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &llm.GenerateResponse{Text: f.text, Model: req.Model}, nil
}

func (f *fakeProvider) IsAvailable(context.Context) bool { return true }

func TestLLMExtract(t *testing.T) {
	provider := &fakeProvider{text: "- The earth is flat\n- Vaccines contain microchips"}
	e := NewLLMExtractor(provider, "test-model")

	claims, err := e.Extract(context.Background(), "some article text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(claims) != 2 {
		t.Fatalf("expected 2 claims, got %d", len(claims))
	}
	if claims[0].Text != "The earth is flat" {
		t.Errorf("claim 0 = %q", claims[0].Text)
	}
}

func TestLLMExtractDeterministicTemperature(t *testing.T) {
	provider := &fakeProvider{text: "- claim"}
	e := NewLLMExtractor(provider, "test-model")

	if _, err := e.Extract(context.Background(), "text"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if provider.lastReq.Temperature != 0 {
		t.Errorf("temperature = %f, want 0", provider.lastReq.Temperature)
	}
	if provider.lastReq.Model != "test-model" {
		t.Errorf("model = %q, want test-model", provider.lastReq.Model)
	}
}

func TestLLMExtractNoLengthFilter(t *testing.T) {
	provider := &fakeProvider{text: "- short"}
	e := NewLLMExtractor(provider, "m")

	claims, err := e.Extract(context.Background(), "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(claims) != 1 || claims[0].Text != "short" {
		t.Errorf("short bullet should survive the slow path: %+v", claims)
	}
}

func TestLLMExtractPropagatesError(t *testing.T) {
	provider := &fakeProvider{err: llm.ErrUnavailable}
	e := NewLLMExtractor(provider, "m")

	_, err := e.Extract(context.Background(), "text")
	if !errors.Is(err, llm.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}
