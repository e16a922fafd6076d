// Package analyze produces ethical-risk analyses of prospective AI use
// cases, grounded in similar incidents from the index.
package analyze

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/ethicswatch/ethicswatch/internal/llm"
	"github.com/ethicswatch/ethicswatch/internal/model"
	"github.com/ethicswatch/ethicswatch/internal/prompt"
	"github.com/ethicswatch/ethicswatch/internal/retrieve"
	"github.com/ethicswatch/ethicswatch/internal/telemetry"
)

// Retriever fetches incidents similar to a use-case description.
type Retriever interface {
	Retrieve(ctx context.Context, text string, k int) ([]model.Evidence, error)
}

// Options control one analysis.
type Options struct {
	TopK   int
	Stream io.Writer
	Model  string
}

// Analyzer grounds use-case analyses in retrieved incidents before asking
// the generative collaborator for risks and mitigations.
type Analyzer struct {
	retriever Retriever
	provider  llm.Provider
	log       *logrus.Logger

	temperature   float32
	promptLogMode string
	promptPreview int
}

// New creates a use-case analyzer
func New(retriever Retriever, provider llm.Provider, log *logrus.Logger, cfg model.WatchdogConfig, temperature float32) *Analyzer {
	return &Analyzer{
		retriever:     retriever,
		provider:      provider,
		log:           log,
		temperature:   temperature,
		promptLogMode: cfg.PromptLog,
		promptPreview: cfg.PromptPreview,
	}
}

// Analyze retrieves incidents similar to the use case and generates the
// risk analysis. When Options.Stream is set, tokens go to the sink and the
// returned string is empty.
func (a *Analyzer) Analyze(ctx context.Context, useCase string, opts Options) (string, error) {
	k := opts.TopK
	if k < 1 {
		k = retrieve.DefaultTopK
	}

	incidents, err := a.retriever.Retrieve(ctx, useCase, k)
	if err != nil {
		return "", fmt.Errorf("retrieve: %w", err)
	}

	p := prompt.BuildUseCaseAnalysis(useCase, incidents)
	telemetry.LogPrompt(a.log.WithField("stage", "analyze"), p, a.promptLogMode, a.promptPreview)

	resp, err := a.provider.Generate(ctx, llm.GenerateRequest{
		Prompt:      p,
		Model:       opts.Model,
		Temperature: a.temperature,
		Stream:      opts.Stream,
	})
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	a.log.WithFields(logrus.Fields{
		"incidents":  len(incidents),
		"result.len": len(resp.Text),
	}).Info("analyze.done")

	return resp.Text, nil
}
