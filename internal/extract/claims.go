// Package extract turns raw text into candidate factual claims. Two
// implementations exist behind one interface: a rule-based sentence
// splitter (the fast path) and an LLM-backed extractor (the slow path),
// selected at construction time by configuration.
package extract

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/ethicswatch/ethicswatch/internal/model"
)

// Extractor extracts candidate claims from free text.
type Extractor interface {
	Extract(ctx context.Context, text string) ([]model.Claim, error)
}

// Bounds for the rule path: segments outside [MinClaimLen, MaxClaimLen]
// characters are fragments or run-ons and get dropped; MaxClaims bounds
// prompt size and UI noise.
const (
	MinClaimLen = 20
	MaxClaimLen = 280
	MaxClaims   = 6
)

// RuleExtractor is the fast path: sentence segmentation plus length
// filtering. Pure function of its input, never fails.
type RuleExtractor struct{}

// NewRuleExtractor creates a rule-based claim extractor
func NewRuleExtractor() *RuleExtractor {
	return &RuleExtractor{}
}

// Extract segments text into sentences and keeps medium-length statements,
// earliest first, capped at MaxClaims. Empty or whitespace-only input
// yields no claims.
func (e *RuleExtractor) Extract(_ context.Context, text string) ([]model.Claim, error) {
	var claims []model.Claim
	for _, sentence := range splitSentences(text) {
		sentence = strings.TrimSpace(sentence)
		n := utf8.RuneCountInString(sentence)
		if n < MinClaimLen || n > MaxClaimLen {
			continue
		}
		claims = append(claims, model.Claim{Text: sentence})
		if len(claims) == MaxClaims {
			break
		}
	}
	return claims, nil
}

// splitSentences splits on sentence-terminal punctuation followed by
// whitespace. A boundary exists wherever one of .!? is immediately
// followed by a whitespace byte; trailing text without a terminator is
// kept as a final segment.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)

		if r == '.' || r == '!' || r == '?' {
			if i+1 < len(text) && isSpaceByte(text[i+1]) {
				sentences = append(sentences, current.String())
				current.Reset()
			}
		}
	}

	if current.Len() > 0 {
		sentences = append(sentences, current.String())
	}

	return sentences
}

func isSpaceByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
