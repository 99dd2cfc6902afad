package llm

import (
	"fmt"
	"strconv"
	"time"
)

// Provider names.
const (
	ProviderNone       = ""
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures the tutor's model provider.
type Config struct {
	// Provider is one of the Provider* names. Empty disables the model
	// and the tutor answers from its canned replies.
	Provider string `yaml:"provider" validate:"omitempty,oneof=anthropic openai gemini openrouter mock"`

	Anthropic  KeyModel    `yaml:"anthropic"`
	OpenAI     KeyModelURL `yaml:"openai"`
	Gemini     KeyModel    `yaml:"gemini"`
	OpenRouter KeyModelURL `yaml:"openrouter"`
	Retry      RetryConfig `yaml:"retry"`

	// Timeout bounds one request including retries.
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
}

// KeyModel is an API key and a model name or alias.
type KeyModel struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// KeyModelURL is KeyModel for OpenAI-compatible endpoints.
type KeyModelURL struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// RetryConfig is the backoff policy for transient failures.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts" validate:"gte=0"`
	InitialWait time.Duration `yaml:"initial_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
	Multiplier  float64       `yaml:"multiplier"`
}

// DefaultConfig has no provider selected and the default model of each.
func DefaultConfig() Config {
	return Config{
		Anthropic:  KeyModel{Model: "claude-haiku"},
		OpenAI:     KeyModelURL{Model: "gpt-4o-mini"},
		Gemini:     KeyModel{Model: "gemini-flash"},
		OpenRouter: KeyModelURL{Model: "google/gemini-2.0-flash-exp", BaseURL: defaultOpenRouterBaseURL},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
}

// ApplyEnv overrides fields from PLAYARCADE_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}
	str("PLAYARCADE_LLM_PROVIDER", &c.Provider)
	str("PLAYARCADE_ANTHROPIC_API_KEY", &c.Anthropic.APIKey)
	str("PLAYARCADE_ANTHROPIC_MODEL", &c.Anthropic.Model)
	str("PLAYARCADE_OPENAI_API_KEY", &c.OpenAI.APIKey)
	str("PLAYARCADE_OPENAI_MODEL", &c.OpenAI.Model)
	str("PLAYARCADE_OPENAI_BASE_URL", &c.OpenAI.BaseURL)
	str("PLAYARCADE_GEMINI_API_KEY", &c.Gemini.APIKey)
	str("PLAYARCADE_GEMINI_MODEL", &c.Gemini.Model)
	str("PLAYARCADE_OPENROUTER_API_KEY", &c.OpenRouter.APIKey)
	str("PLAYARCADE_OPENROUTER_MODEL", &c.OpenRouter.Model)

	if v, ok := lookup("PLAYARCADE_LLM_TIMEOUT"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		}
	}
	if v, ok := lookup("PLAYARCADE_LLM_MAX_ATTEMPTS"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.Retry.MaxAttempts = n
		}
	}
}

// Discover picks a provider from the vendors' own key variables when none
// is selected, probing Gemini, OpenAI, Anthropic and OpenRouter in that
// order. It reports whether a key was found.
func (c *Config) Discover(lookup func(string) (string, bool)) bool {
	if c.Provider != ProviderNone {
		return true
	}
	probes := []struct {
		env      string
		provider string
		key      *string
	}{
		{"GEMINI_API_KEY", ProviderGemini, &c.Gemini.APIKey},
		{"OPENAI_API_KEY", ProviderOpenAI, &c.OpenAI.APIKey},
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &c.Anthropic.APIKey},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, &c.OpenRouter.APIKey},
	}
	for _, p := range probes {
		if v, ok := lookup(p.env); ok && v != "" {
			c.Provider = p.provider
			*p.key = v
			return true
		}
	}
	return false
}

// Validate checks that the selected provider has a key.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case ProviderNone, ProviderMock:
		return nil
	case ProviderAnthropic:
		key, env = c.Anthropic.APIKey, "PLAYARCADE_ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		key, env = c.OpenAI.APIKey, "PLAYARCADE_OPENAI_API_KEY"
	case ProviderGemini:
		key, env = c.Gemini.APIKey, "PLAYARCADE_GEMINI_API_KEY"
	case ProviderOpenRouter:
		key, env = c.OpenRouter.APIKey, "PLAYARCADE_OPENROUTER_API_KEY"
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}
