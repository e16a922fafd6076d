package model

import "time"

// Config holds the complete ethicswatch configuration
type Config struct {
	LLM       LLMConfig       `yaml:"llm"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Index     IndexConfig     `yaml:"index"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Watchdog  WatchdogConfig  `yaml:"watchdog"`
	API       APIConfig       `yaml:"api"`
	Log       LogConfig       `yaml:"log"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Cache     CacheConfig     `yaml:"cache"`
	Batch     BatchConfig     `yaml:"batch"`
}

// LLMConfig configures the generative text collaborator
type LLMConfig struct {
	Provider    string  `yaml:"provider"` // "openai", "anthropic", "ollama"
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"api_key,omitempty"`
	BaseURL     string  `yaml:"base_url,omitempty"`
	Timeout     int     `yaml:"timeout"` // seconds
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float32 `yaml:"temperature"`
}

// EmbeddingConfig configures the embedding collaborator used by the index
type EmbeddingConfig struct {
	Provider string `yaml:"provider"` // "openai", "ollama"
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key,omitempty"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Timeout  int    `yaml:"timeout"` // seconds
}

// IndexConfig configures the persistent incident corpus
type IndexConfig struct {
	Path string `yaml:"path"` // Directory for the persisted index file
}

// RetrievalConfig configures incident retrieval
type RetrievalConfig struct {
	TopK int `yaml:"top_k"` // Default number of similar incidents to fetch
}

// WatchdogConfig configures the assessment pipeline
type WatchdogConfig struct {
	LLMClaims     bool   `yaml:"llm_claims"`     // Use LLM-backed claim extraction instead of rules
	PromptLog     string `yaml:"prompt_log"`     // "off", "preview", "full"
	PromptPreview int    `yaml:"prompt_preview"` // Preview length in bytes
}

// APIConfig configures the HTTP API surface
type APIConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig configures structured logging
type LogConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn", "error"
	JSON  bool   `yaml:"json"`  // JSON output instead of key=value text
	File  string `yaml:"file"`  // Optional log file path (appended)
}

// TelemetryConfig configures OpenTelemetry tracing
type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Exporter string `yaml:"exporter"` // "console" or "otlp"
	Endpoint string `yaml:"endpoint"` // OTLP collector endpoint
}

// CacheConfig configures the embedding cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// BatchConfig configures concurrent batch assessment
type BatchConfig struct {
	Workers           int     `yaml:"workers"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
	OutputDir         string  `yaml:"output_dir"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:    "ollama",
			Model:       "llama3.1:8b",
			Timeout:     60,
			MaxTokens:   512,
			Temperature: 0.2,
		},
		Embedding: EmbeddingConfig{
			Provider: "ollama",
			Model:    "nomic-embed-text",
			Timeout:  30,
		},
		Index: IndexConfig{
			Path: "./data/index",
		},
		Retrieval: RetrievalConfig{
			TopK: 3,
		},
		Watchdog: WatchdogConfig{
			LLMClaims:     false,
			PromptLog:     "preview",
			PromptPreview: 240,
		},
		API: APIConfig{
			Addr: ":8080",
		},
		Log: LogConfig{
			Level: "info",
		},
		Telemetry: TelemetryConfig{
			Enabled:  false,
			Exporter: "console",
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "./data/cache",
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Batch: BatchConfig{
			Workers:           4,
			RequestsPerSecond: 2,
			Burst:             5,
			OutputDir:         "./ethicswatch-reports",
		},
	}
}
