// Package watchdog sequences the misinformation assessment pipeline:
// claim extraction, incident retrieval, heuristic scoring, summary
// generation and risk aggregation, under per-stage tracing and structured
// logs keyed by a run correlation id.
package watchdog

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ethicswatch/ethicswatch/internal/extract"
	"github.com/ethicswatch/ethicswatch/internal/llm"
	"github.com/ethicswatch/ethicswatch/internal/model"
	"github.com/ethicswatch/ethicswatch/internal/prompt"
	"github.com/ethicswatch/ethicswatch/internal/retrieve"
	"github.com/ethicswatch/ethicswatch/internal/risk"
	"github.com/ethicswatch/ethicswatch/internal/score"
	"github.com/ethicswatch/ethicswatch/internal/telemetry"
)

// Retriever fetches incidents similar to the assessed text.
type Retriever interface {
	Retrieve(ctx context.Context, text string, k int) ([]model.Evidence, error)
}

// Options control one pipeline run.
type Options struct {
	// TopK is the retrieval depth; values below 1 fall back to the default.
	TopK int

	// Stream, when non-nil, receives summary tokens as they are produced
	// and the report's LLMSummary is left empty.
	Stream io.Writer

	// Model overrides the configured generation model.
	Model string
}

// Watchdog runs the assessment pipeline. Runs are fully independent: the
// only shared state is the read-mostly incident index and the provider's
// own internals, and the correlation id is scoped per call.
type Watchdog struct {
	extractor extract.Extractor
	scorer    *score.Scorer
	retriever Retriever
	provider  llm.Provider
	log       *logrus.Logger
	tracer    trace.Tracer

	temperature   float32
	promptLogMode string
	promptPreview int
}

// New creates a watchdog pipeline. The temperature applies to summary
// generation only; claim extraction always runs deterministic.
func New(extractor extract.Extractor, scorer *score.Scorer, retriever Retriever, provider llm.Provider, log *logrus.Logger, cfg model.WatchdogConfig, temperature float32) *Watchdog {
	return &Watchdog{
		extractor:     extractor,
		scorer:        scorer,
		retriever:     retriever,
		provider:      provider,
		log:           log,
		tracer:        otel.Tracer("ethicswatch.watchdog"),
		temperature:   temperature,
		promptLogMode: cfg.PromptLog,
		promptPreview: cfg.PromptPreview,
	}
}

// Run executes the pipeline on the text and assembles the report.
//
// Stages run strictly sequentially (claims, retrieve, heuristics, summary,
// aggregate), each under its own span. Any stage failure aborts the run:
// a degraded report with a fabricated low risk score would be worse than a
// visible failure, so there is no partial result. Empty retrieval and
// empty claims are valid absences, not failures. Cancellation is checked
// between stages.
func (w *Watchdog) Run(ctx context.Context, text string, opts Options) (rep *model.WatchReport, err error) {
	runID := NewRunID()
	t0 := time.Now()

	k := opts.TopK
	if k < 1 {
		k = retrieve.DefaultTopK
	}

	ctx, span := w.tracer.Start(ctx, "watchdog.run", trace.WithAttributes(
		attribute.String("watchdog.run_id", runID),
		attribute.Int("watchdog.k", k),
		attribute.String("watchdog.model", opts.Model),
		attribute.Bool("watchdog.stream", opts.Stream != nil),
	))
	defer span.End()

	log := w.log.WithField("run_id", runID)
	log.WithField("stage", "start").Info("watchdog.run.start")

	defer func() {
		if err != nil {
			log.WithError(err).Error("watchdog.run.error")
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	// 1) claims
	claims, err := w.runClaims(ctx, log, text)
	if err != nil {
		return nil, fmt.Errorf("claims: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 2) retrieve similar incidents
	related, err := w.runRetrieve(ctx, log, text, k)
	if err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 3) heuristics
	signals := w.runHeuristics(ctx, log, text)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 4) LLM reasoning summary
	summary, err := w.runSummary(ctx, log, text, claims, signals, related, opts)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 5) aggregate final report
	report := w.runAggregate(ctx, log, claims, signals, related, summary)

	log.WithFields(logrus.Fields{
		"stage":      "end",
		"elapsed_ms": time.Since(t0).Milliseconds(),
		"label":      report.Label,
		"risk":       fmt.Sprintf("%.2f", report.OverallRisk),
	}).Info("watchdog.run.end")

	return report, nil
}

func (w *Watchdog) runClaims(ctx context.Context, log *logrus.Entry, text string) ([]model.Claim, error) {
	ctx, span := w.tracer.Start(ctx, "claims")
	defer span.End()
	s0 := time.Now()

	claims, err := w.extractor.Extract(ctx, text)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("claims.count", len(claims)))
	log.WithFields(logrus.Fields{
		"stage":        "claims",
		"elapsed_ms":   time.Since(s0).Milliseconds(),
		"claims.count": len(claims),
	}).Info("claims.done")

	return claims, nil
}

func (w *Watchdog) runRetrieve(ctx context.Context, log *logrus.Entry, text string, k int) ([]model.Evidence, error) {
	ctx, span := w.tracer.Start(ctx, "retrieve")
	defer span.End()
	s0 := time.Now()

	related, err := w.retriever.Retrieve(ctx, text, k)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("retrieve.count", len(related)))
	log.WithFields(logrus.Fields{
		"stage":          "retrieve",
		"elapsed_ms":     time.Since(s0).Milliseconds(),
		"retrieve.count": len(related),
	}).Info("retrieve.done")

	return related, nil
}

func (w *Watchdog) runHeuristics(ctx context.Context, log *logrus.Entry, text string) []model.Signal {
	_, span := w.tracer.Start(ctx, "heuristics")
	defer span.End()
	s0 := time.Now()

	signals := w.scorer.Score(text)

	span.SetAttributes(attribute.Int("signals.count", len(signals)))
	log.WithFields(logrus.Fields{
		"stage":         "heuristics",
		"elapsed_ms":    time.Since(s0).Milliseconds(),
		"signals.count": len(signals),
	}).Info("heuristics.done")

	return signals
}

func (w *Watchdog) runSummary(ctx context.Context, log *logrus.Entry, text string, claims []model.Claim, signals []model.Signal, related []model.Evidence, opts Options) (string, error) {
	ctx, span := w.tracer.Start(ctx, "llm.summary", trace.WithAttributes(
		attribute.String("model", opts.Model),
		attribute.Bool("stream", opts.Stream != nil),
	))
	defer span.End()
	s0 := time.Now()

	p := prompt.BuildWatchdogSummary(text, claims, signals, related)
	telemetry.LogPrompt(log.WithField("stage", "llm"), p, w.promptLogMode, w.promptPreview)

	resp, err := w.provider.Generate(ctx, llm.GenerateRequest{
		Prompt:      p,
		Model:       opts.Model,
		Temperature: w.temperature,
		Stream:      opts.Stream,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	span.SetAttributes(attribute.Int("summary.len", len(resp.Text)))
	log.WithFields(logrus.Fields{
		"stage":       "llm",
		"elapsed_ms":  time.Since(s0).Milliseconds(),
		"summary.len": len(resp.Text),
	}).Info("llm.summary.done")

	return resp.Text, nil
}

func (w *Watchdog) runAggregate(ctx context.Context, log *logrus.Entry, claims []model.Claim, signals []model.Signal, related []model.Evidence, summary string) *model.WatchReport {
	_, span := w.tracer.Start(ctx, "aggregate")
	defer span.End()
	s0 := time.Now()

	overall, label := risk.Aggregate(signals, related)

	report := &model.WatchReport{
		OverallRisk:      overall,
		Label:            label,
		Claims:           claims,
		Signals:          signals,
		RelatedIncidents: related,
		LLMSummary:       summary,
	}

	span.SetAttributes(
		attribute.String("label", string(label)),
		attribute.Float64("risk.overall", overall),
	)
	log.WithFields(logrus.Fields{
		"stage":      "aggregate",
		"elapsed_ms": time.Since(s0).Milliseconds(),
		"label":      label,
	}).Info("aggregate.done")

	return report
}

// NewRunID generates the 8-hex-character run correlation identifier
// attached to all logs and spans of one invocation.
func NewRunID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
