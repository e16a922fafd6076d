package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ethicswatch/ethicswatch/internal/analyze"
	"github.com/ethicswatch/ethicswatch/internal/cache"
	"github.com/ethicswatch/ethicswatch/internal/embed"
	"github.com/ethicswatch/ethicswatch/internal/extract"
	"github.com/ethicswatch/ethicswatch/internal/index"
	"github.com/ethicswatch/ethicswatch/internal/llm"
	"github.com/ethicswatch/ethicswatch/internal/model"
	"github.com/ethicswatch/ethicswatch/internal/retrieve"
	"github.com/ethicswatch/ethicswatch/internal/score"
	"github.com/ethicswatch/ethicswatch/internal/telemetry"
	"github.com/ethicswatch/ethicswatch/internal/watchdog"
)

// app holds the wired pipeline components shared by commands.
type app struct {
	cfg       *model.Config
	log       *logrus.Logger
	store     *index.LocalStore
	retriever *retrieve.Retriever
	provider  llm.Provider
	watchdog  *watchdog.Watchdog
	analyzer  *analyze.Analyzer

	shutdownTracing func(context.Context) error
}

// loadConfig merges defaults, the YAML config file and environment
// variables, lowest to highest priority.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if file := viper.ConfigFileUsed(); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	if verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// applyEnv overlays provider credentials and endpoints from the
// environment so secrets never have to live in the config file.
func applyEnv(cfg *model.Config) {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		if cfg.LLM.Provider == "openai" {
			cfg.LLM.APIKey = key
		}
		if cfg.Embedding.Provider == "openai" {
			cfg.Embedding.APIKey = key
		}
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" && (cfg.LLM.Provider == "anthropic" || cfg.LLM.Provider == "claude") {
		cfg.LLM.APIKey = key
	}
	if base := os.Getenv("OLLAMA_BASE_URL"); base != "" {
		if cfg.LLM.Provider == "ollama" {
			cfg.LLM.BaseURL = base
		}
		if cfg.Embedding.Provider == "ollama" {
			cfg.Embedding.BaseURL = base
		}
	}
}

// buildApp wires the full pipeline from configuration.
func buildApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := telemetry.NewLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("telemetry: %w", err)
	}

	embedder, err := embed.NewEmbedder(embed.ConfigFromModel(cfg.Embedding))
	if err != nil {
		return nil, fmt.Errorf("embedder: %w", err)
	}
	if cfg.Cache.Enabled {
		layered := cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		embedder = embed.NewCachedEmbedder(embedder, layered)
	}

	store, err := index.NewLocalStore(cfg.Index.Path, embedder)
	if err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}

	retriever := retrieve.NewRetriever(store)

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("llm: %w", err)
	}

	var extractor extract.Extractor = extract.NewRuleExtractor()
	if cfg.Watchdog.LLMClaims {
		extractor = extract.NewLLMExtractor(provider, cfg.LLM.Model)
	}

	return &app{
		cfg:             cfg,
		log:             log,
		store:           store,
		retriever:       retriever,
		provider:        provider,
		watchdog:        watchdog.New(extractor, score.NewScorer(), retriever, provider, log, cfg.Watchdog, cfg.LLM.Temperature),
		analyzer:        analyze.New(retriever, provider, log, cfg.Watchdog, cfg.LLM.Temperature),
		shutdownTracing: shutdown,
	}, nil
}

// Close flushes telemetry.
func (a *app) Close(ctx context.Context) {
	if a.shutdownTracing != nil {
		if err := a.shutdownTracing(ctx); err != nil {
			a.log.WithError(err).Warn("telemetry shutdown")
		}
	}
}
