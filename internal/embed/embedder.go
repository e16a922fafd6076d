// Package embed provides text embedding clients for the incident index.
package embed

import (
	"context"

	"github.com/ethicswatch/ethicswatch/internal/model"
)

// Embedder computes a dense vector for a piece of text.
type Embedder interface {
	// Name returns the embedder name
	Name() string

	// Embed computes the embedding vector for the text.
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Config holds embedder configuration
type Config struct {
	// Provider name: "openai", "ollama"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int
}

// ConfigFromModel converts model.EmbeddingConfig to embed.Config
func ConfigFromModel(mc model.EmbeddingConfig) Config {
	return Config{
		Provider: mc.Provider,
		Model:    mc.Model,
		APIKey:   mc.APIKey,
		BaseURL:  mc.BaseURL,
		Timeout:  mc.Timeout,
	}
}
