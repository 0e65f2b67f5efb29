package app

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/openai/openai-go/v3"

	"yt-summarizer/internal/cache"
	"yt-summarizer/internal/config"
	"yt-summarizer/internal/llm"
	"yt-summarizer/internal/logger"
	"yt-summarizer/internal/store"
	"yt-summarizer/internal/summarize"
	"yt-summarizer/internal/transcript"
)

// Deps bundles the summarization server's runtime dependencies.
type Deps struct {
	Config     config.Config
	Log        *slog.Logger
	Summarizer summarize.Summarizer
	Store      store.Store
	Cache      cache.Cache
}

// Close releases the cache and store connections.
func (d Deps) Close() error {
	var errs []error
	if d.Cache != nil {
		errs = append(errs, d.Cache.Close())
	}
	if d.Store != nil {
		errs = append(errs, d.Store.Close())
	}
	return errors.Join(errs...)
}

// LoadEnv loads a .env file when one exists.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load environment variables: %w", err)
	}
	return nil
}

// Build loads env, config, and shared components.
func Build() (Deps, error) {
	if err := LoadEnv(); err != nil {
		return Deps{}, err
	}
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	llmClient, err := buildLLM(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize LLM: %w", err)
	}
	st, err := buildStore(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize store: %w", err)
	}
	c := buildCache(cfg, log)
	fetcher := transcript.NewYouTubeFetcher(log, cfg.TranscriptLanguages)

	svc := summarize.New(log, fetcher, c, llmClient, st, summarize.Options{
		MaxTranscriptChars: cfg.MaxTranscriptChars,
		CacheTTL:           cfg.CacheTTLDuration(),
	})

	return Deps{
		Config:     cfg,
		Log:        log,
		Summarizer: svc,
		Store:      st,
		Cache:      c,
	}, nil
}

func buildLLM(cfg config.Config, log *slog.Logger) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required when LLM_PROVIDER=gemini")
		}
		client, err := llm.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.SummaryLanguage, cfg.GeminiBaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
		}
		log.Info("using Gemini LLM client", "model", cfg.GeminiModel)
		return client, nil
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER=openai")
		}
		client, err := llm.NewOpenAIClient(cfg.OpenAIKey, openai.ChatModel(cfg.LLMModel), cfg.SummaryLanguage)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
		}
		log.Info("using OpenAI LLM client", "model", cfg.LLMModel)
		return client, nil
	default:
		return nil, fmt.Errorf("invalid LLM_PROVIDER: %s (valid options: gemini, openai)", cfg.LLMProvider)
	}
}

func buildStore(cfg config.Config, log *slog.Logger) (store.Store, error) {
	if cfg.DBURL == "" {
		log.Info("DB_URL not set; request log disabled")
		return store.NewNoOpStore(), nil
	}
	db, err := store.NewPostgres(cfg.DBURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Postgres: %w", err)
	}
	log.Info("using Postgres request log")
	return db, nil
}

// buildCache never fails: an unreachable Redis degrades to no caching.
func buildCache(cfg config.Config, log *slog.Logger) cache.Cache {
	switch cfg.CacheProvider {
	case "redis":
		c, err := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Warn("redis unavailable; transcript cache disabled", "addr", cfg.RedisAddr, "err", err)
			return cache.NewNoOpCache()
		}
		log.Info("using Redis transcript cache", "addr", cfg.RedisAddr, "ttl_seconds", cfg.CacheTTL)
		return c
	case "none", "":
		log.Info("transcript cache disabled")
		return cache.NewNoOpCache()
	default:
		log.Warn("unknown CACHE_PROVIDER; transcript cache disabled", "provider", cfg.CacheProvider)
		return cache.NewNoOpCache()
	}
}
