package config

import (
	"log/slog"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the summarization server's runtime configuration.
type Config struct {
	// Server
	Port     int    `env:"PORT" envDefault:"5001"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Requests per client IP per minute on /summarize; 0 disables the limit
	RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"10"`

	// LLM
	LLMProvider     string `env:"LLM_PROVIDER" envDefault:"gemini"` // "gemini" or "openai"
	GeminiAPIKey    string `env:"GEMINI_API_KEY"`
	GeminiModel     string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	GeminiBaseURL   string `env:"GEMINI_BASE_URL"`
	OpenAIKey       string `env:"OPENAI_API_KEY"`
	LLMModel        string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	SummaryLanguage string `env:"SUMMARY_LANGUAGE" envDefault:"Brazilian Portuguese (Português do Brasil)"`

	// Transcripts
	TranscriptLanguages []string `env:"TRANSCRIPT_LANGUAGES" envSeparator:"," envDefault:"pt-BR,en"`
	MaxTranscriptChars  int      `env:"MAX_TRANSCRIPT_CHARS" envDefault:"100000"`

	// Cache
	CacheProvider string `env:"CACHE_PROVIDER" envDefault:"redis"` // "redis" or "none"
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	CacheTTL      int    `env:"CACHE_TTL" envDefault:"86400"` // seconds

	// Request log; disabled when empty
	DBURL string `env:"DB_URL"`
}

// CacheTTLDuration returns CacheTTL as a duration.
func (c Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}

// WidgetConfig configures the widget command.
type WidgetConfig struct {
	Endpoint string        `env:"SUMMARIZER_ENDPOINT" envDefault:"http://localhost:5001/summarize"`
	Timeout  time.Duration `env:"SUMMARIZER_TIMEOUT" envDefault:"60s"`
	LogLevel string        `env:"LOG_LEVEL" envDefault:"warn"`
}

// LoadWidget reads the widget configuration from environment variables with defaults.
func LoadWidget() WidgetConfig {
	var cfg WidgetConfig
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}
