package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/playarcade/internal/store"
)

// New builds the configured provider wrapped as caller → retry → observer
// → provider. It returns ErrNoProvider when cfg selects none.
func New(ctx context.Context, cfg Config, logger *zap.Logger, journal store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderNone:
		return nil, ErrNoProvider
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithRetry(WithObserver(base, cfg.Provider, logger, journal), cfg.Retry), nil
}
