package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrUnavailable marks a generative collaborator failure: unreachable,
// rate-limited, or returning an unparseable response. Callers discriminate
// it with errors.Is.
var ErrUnavailable = errors.New("generative provider unavailable")

// GenerateRequest is the uniform request contract for text generation.
type GenerateRequest struct {
	// Prompt is the full prompt text.
	Prompt string

	// Model overrides the provider's configured model when non-empty.
	Model string

	// Temperature controls sampling. Zero means deterministic extraction.
	Temperature float32

	// MaxTokens limits the response length (0 = provider default).
	MaxTokens int

	// Stream, when non-nil, receives tokens as they are produced and the
	// response text is left empty. When nil, the full response is buffered
	// and returned. Both modes share one code path per provider,
	// parameterized only by the sink's presence.
	Stream io.Writer
}

// GenerateResponse contains the generation output.
type GenerateResponse struct {
	// Text is the complete response, or "" when it was streamed to a sink.
	Text string

	// Model is the model that produced the response.
	Model string

	// TokensUsed tracks token consumption when the provider reports it.
	TokensUsed int
}

// Provider is the narrow interface to a generative text collaborator.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Generate produces text for the prompt, blocking or streamed.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// IsAvailable checks if the provider is properly configured and reachable
	IsAvailable(ctx context.Context) bool
}

// Config holds generative provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Timeout:   60,
		MaxTokens: 512,
	}
}

// unavailable tags a provider failure so callers can match ErrUnavailable.
func unavailable(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrUnavailable, fmt.Sprintf(format, args...))
}

// deliver routes buffered text through the stream sink when one is set.
// Providers that cannot stream natively fall back to writing the complete
// text to the sink in one piece, preserving the contract that streamed
// responses return "".
func deliver(req GenerateRequest, text string) (string, error) {
	if req.Stream == nil {
		return text, nil
	}
	if _, err := io.WriteString(req.Stream, text); err != nil {
		return "", fmt.Errorf("write stream sink: %w", err)
	}
	return "", nil
}
