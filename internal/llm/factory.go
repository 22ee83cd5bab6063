package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/quizdeck/internal/store"
)

// NewProvider builds the vendor adapter named by cfg.Provider and layers
// the middleware on top, outermost first: timeout, retry, audit logging.
// Each retry attempt is therefore logged as its own event. A nil repo
// turns logging off. The mock provider is returned bare.
func NewProvider(ctx context.Context, cfg Config, repo store.EventRepo) (Provider, error) {
	if cfg.Provider == ProviderMock {
		return NewMockProvider(), nil
	}
	base, err := newVendor(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := base
	if repo != nil {
		p = WithLogging(p, cfg.Provider, repo)
	}
	p = WithRetry(p, cfg.Retry)
	if cfg.Timeout > 0 {
		p = WithTimeout(p, cfg.Timeout)
	}
	return p, nil
}

func newVendor(ctx context.Context, cfg Config) (Provider, error) {
	switch cfg.Provider {
	case ProviderAnthropic:
		return NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		return NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		return NewOpenRouterProvider(cfg.OpenRouter)
	}
	return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
}

// NewProviderFromEnv is NewProvider over ResolveConfig.
func NewProviderFromEnv(ctx context.Context, repo store.EventRepo) (Provider, error) {
	cfg, err := ResolveConfig()
	if err != nil {
		return nil, err
	}
	return NewProvider(ctx, cfg, repo)
}
