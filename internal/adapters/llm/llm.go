// Package llm picks and builds the remote text generator from config
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"textpolish/internal/adapters/llm/anthropic"
	"textpolish/internal/adapters/llm/gemini"
	"textpolish/internal/adapters/llm/openai"
	"textpolish/internal/core/polish"
	"textpolish/internal/platform/config"
)

// Provider names accepted in LLM_PROVIDER
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// Completion is the generator result
type Completion = polish.Completion

// Config selects and tunes the provider
type Config struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
	// Label overrides the provider name reported as api_used
	Label string
}

var defaultModels = map[string]string{
	ProviderOpenAI:    "deepseek-chat",
	ProviderAnthropic: "claude-3-5-haiku-latest",
	ProviderGemini:    "gemini-1.5-flash",
}

// ConfigFromEnv reads LLM_*. DEEPSEEK_API_KEY is honoured when LLM_API_KEY is unset.
func ConfigFromEnv(cfg config.Conf) Config {
	c := cfg.Prefix("LLM_")
	provider := c.MayEnum("PROVIDER", ProviderOpenAI, ProviderOpenAI, ProviderAnthropic, ProviderGemini)

	baseURL := ""
	if provider == ProviderOpenAI {
		baseURL = "https://api.deepseek.com/v1"
	}
	return Config{
		Provider:    provider,
		APIKey:      c.MayString("API_KEY", cfg.MayString("DEEPSEEK_API_KEY", "")),
		BaseURL:     strings.TrimRight(c.MayString("BASE_URL", baseURL), "/"),
		Model:       c.MayString("MODEL", defaultModels[provider]),
		Timeout:     c.MayDuration("TIMEOUT", 30*time.Second),
		Temperature: c.MayFloat64("TEMPERATURE", 0.3),
		MaxTokens:   c.MayInt("MAX_TOKENS", 2000),
		Label:       c.MayString("LABEL", ""),
	}
}

// New builds the configured generator. No API key means no generator and
// a nil error: the polisher then runs in permanent fallback mode.
func New(ctx context.Context, c Config) (polish.Generator, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, nil
	}
	model := c.Model
	if model == "" {
		model = defaultModels[c.Provider]
	}
	switch c.Provider {
	case ProviderOpenAI, "":
		return openai.New(openai.Options{APIKey: c.APIKey, BaseURL: c.BaseURL, Model: model, Timeout: c.Timeout}), nil
	case ProviderAnthropic:
		return anthropic.New(anthropic.Options{APIKey: c.APIKey, BaseURL: c.BaseURL, Model: model, Timeout: c.Timeout}), nil
	case ProviderGemini:
		return gemini.New(ctx, gemini.Options{APIKey: c.APIKey, Model: model})
	}
	return nil, fmt.Errorf("llm: unknown provider %q", c.Provider)
}

// NewPolisher wires the generator for c into a polish.Polisher
func NewPolisher(ctx context.Context, c Config) (*polish.Polisher, polish.Generator, error) {
	gen, err := New(ctx, c)
	if err != nil {
		return nil, nil, err
	}
	return polish.New(gen, polish.Options{
		Timeout:     c.Timeout,
		Temperature: c.Temperature,
		MaxTokens:   c.MaxTokens,
		Label:       c.Label,
	}), gen, nil
}
