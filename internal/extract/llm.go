package extract

import (
	"context"
	"strings"

	"github.com/ethicswatch/ethicswatch/internal/llm"
	"github.com/ethicswatch/ethicswatch/internal/model"
	"github.com/ethicswatch/ethicswatch/internal/prompt"
)

// LLMExtractor is the slow path: claim extraction delegated to the
// generative collaborator at zero temperature. No length filtering is
// applied to the parsed bullets; malformed bullets become short or long
// claims and that noise is accepted. Generation failures propagate
// verbatim, there is no local fallback.
type LLMExtractor struct {
	provider llm.Provider
	model    string
}

// NewLLMExtractor creates an LLM-backed claim extractor
func NewLLMExtractor(provider llm.Provider, model string) *LLMExtractor {
	return &LLMExtractor{provider: provider, model: model}
}

// Extract asks the collaborator for bulleted claims and keeps every
// non-empty line that starts with "- ".
func (e *LLMExtractor) Extract(ctx context.Context, text string) ([]model.Claim, error) {
	resp, err := e.provider.Generate(ctx, llm.GenerateRequest{
		Prompt:      prompt.BuildClaimExtraction(text),
		Model:       e.model,
		Temperature: 0,
	})
	if err != nil {
		return nil, err
	}

	return ParseBullets(resp.Text), nil
}

// ParseBullets extracts one claim per "- " line, marker stripped and
// whitespace trimmed.
func ParseBullets(text string) []model.Claim {
	var claims []model.Claim
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "- ") {
			continue
		}
		claim := strings.TrimSpace(strings.TrimPrefix(line, "- "))
		if claim == "" {
			continue
		}
		claims = append(claims, model.Claim{Text: claim})
	}
	return claims
}
