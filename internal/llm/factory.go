package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sant0-9/curator/internal/config"
)

// NewProvider creates a provider from config
func NewProvider(ctx context.Context, cfg *config.Config) (Provider, error) {
	switch cfg.Provider {
	case "gemini":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini requires an API key")
		}
		return NewGeminiProvider(ctx, cfg.APIKey, cfg.Model, cfg.BaseURL)

	case "ollama":
		host := "http://localhost:11434"
		if cfg.BaseURL != "" {
			host = cfg.BaseURL
		}
		return NewOllamaProvider(host, cfg.Model), nil

	case "groq":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("groq requires an API key")
		}
		return NewGroqProvider(cfg.APIKey, cfg.Model), nil

	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai requires an API key")
		}
		return NewOpenAIProvider(cfg.APIKey, cfg.Model), nil

	case "anthropic":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("anthropic requires an API key")
		}
		return NewAnthropicProvider(cfg.APIKey, cfg.Model), nil

	case "openrouter":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openrouter requires an API key")
		}
		return NewOpenRouterProvider(cfg.APIKey, cfg.Model), nil

	case "custom":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("custom provider requires base_url")
		}
		return NewCustomProvider(cfg.BaseURL, cfg.APIKey, cfg.Model), nil

	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

// Build creates the configured provider wrapped in the middleware stack:
// logging, then retry, then rate limiting closest to the wire.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Provider, error) {
	p, err := NewProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return Chain(p,
		WithLogging(logger),
		WithRetry(cfg.Retry.MaxAttempts, cfg.Retry.BaseDelay),
		WithRateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
	), nil
}
