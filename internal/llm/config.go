package llm

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects a provider and carries the settings of every vendor so
// switching QUIZDECK_LLM_PROVIDER needs no other change.
type Config struct {
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call, retries included. Zero means no bound.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // for OpenAI-compatible servers
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// vendor binds a provider name to its settings inside Config and to the
// environment variables that fill them. The order of vendors is the
// discovery order used when no provider is named.
type vendor struct {
	name   string
	env    string // QUIZDECK_<env>_*
	stdKey string // the vendor's own API key variable
	key    func(*Config) *string
	model  func(*Config) *string
	base   func(*Config) *string
}

var vendors = []vendor{
	{
		name:   ProviderGemini,
		env:    "GEMINI",
		stdKey: "GEMINI_API_KEY",
		key:    func(c *Config) *string { return &c.Gemini.APIKey },
		model:  func(c *Config) *string { return &c.Gemini.Model },
	},
	{
		name:   ProviderOpenAI,
		env:    "OPENAI",
		stdKey: "OPENAI_API_KEY",
		key:    func(c *Config) *string { return &c.OpenAI.APIKey },
		model:  func(c *Config) *string { return &c.OpenAI.Model },
		base:   func(c *Config) *string { return &c.OpenAI.BaseURL },
	},
	{
		name:   ProviderAnthropic,
		env:    "ANTHROPIC",
		stdKey: "ANTHROPIC_API_KEY",
		key:    func(c *Config) *string { return &c.Anthropic.APIKey },
		model:  func(c *Config) *string { return &c.Anthropic.Model },
	},
	{
		name:   ProviderOpenRouter,
		env:    "OPENROUTER",
		stdKey: "OPENROUTER_API_KEY",
		key:    func(c *Config) *string { return &c.OpenRouter.APIKey },
		model:  func(c *Config) *string { return &c.OpenRouter.Model },
		base:   func(c *Config) *string { return &c.OpenRouter.BaseURL },
	},
}

func lookupVendor(name string) (vendor, bool) {
	for _, v := range vendors {
		if v.name == name {
			return v, true
		}
	}
	return vendor{}, false
}

func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: time.Minute,
	}
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// ConfigFromEnv overlays QUIZDECK_* variables on DefaultConfig. Malformed
// numeric or duration values are ignored.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	setFromEnv(&cfg.Provider, "QUIZDECK_LLM_PROVIDER")
	for _, v := range vendors {
		prefix := "QUIZDECK_" + v.env + "_"
		setFromEnv(v.key(&cfg), prefix+"API_KEY")
		setFromEnv(v.model(&cfg), prefix+"MODEL")
		if v.base != nil {
			setFromEnv(v.base(&cfg), prefix+"BASE_URL")
		}
	}

	if d, err := time.ParseDuration(os.Getenv("QUIZDECK_LLM_TIMEOUT")); err == nil {
		cfg.Timeout = d
	}
	if n, err := strconv.Atoi(os.Getenv("QUIZDECK_LLM_MAX_ATTEMPTS")); err == nil && n > 0 {
		cfg.Retry.MaxAttempts = n
	}
	return cfg
}

// DiscoverConfig picks the first vendor whose standard API key variable
// is set, checking Gemini, OpenAI, Anthropic and OpenRouter in turn.
func DiscoverConfig() (Config, bool) {
	for _, v := range vendors {
		if k := os.Getenv(v.stdKey); k != "" {
			cfg := DefaultConfig()
			cfg.Provider = v.name
			*v.key(&cfg) = k
			return cfg, true
		}
	}
	return Config{}, false
}

// ResolveConfig prefers an explicit QUIZDECK_LLM_PROVIDER and otherwise
// falls back to discovery.
func ResolveConfig() (Config, error) {
	if os.Getenv("QUIZDECK_LLM_PROVIDER") != "" {
		cfg := ConfigFromEnv()
		return cfg, cfg.Validate()
	}
	if cfg, ok := DiscoverConfig(); ok {
		return cfg, nil
	}
	std := make([]string, len(vendors))
	for i, v := range vendors {
		std[i] = v.stdKey
	}
	return Config{}, fmt.Errorf("no LLM API key found: set QUIZDECK_LLM_PROVIDER or one of %s", strings.Join(std, ", "))
}

// Validate reports an unknown provider or a missing API key.
func (c Config) Validate() error {
	if c.Provider == ProviderMock {
		return nil
	}
	v, ok := lookupVendor(c.Provider)
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if *v.key(&c) == "" {
		return errors.New("QUIZDECK_" + v.env + "_API_KEY is required for the " + v.name + " provider")
	}
	return nil
}
