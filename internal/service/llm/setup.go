package llm

import (
	"fmt"
	"log/slog"

	"blueprint/internal/config"
	"blueprint/internal/service/llm/providers/anthropic"
	"blueprint/internal/service/llm/providers/lorem"
)

// Setup builds the completion provider selected by configuration. An unknown
// provider name or a missing API key fails here, at startup, rather than on
// the first chat turn.
func Setup(cfg *config.Config, logger *slog.Logger) (Provider, error) {
	switch cfg.LLMProvider {
	case "anthropic":
		provider, err := anthropic.NewProvider(cfg.AnthropicAPIKey, cfg.DefaultModel)
		if err != nil {
			return nil, fmt.Errorf("setup anthropic provider: %w", err)
		}
		logger.Info("completion provider configured", "provider", provider.Name(), "model", cfg.DefaultModel)
		return provider, nil

	case "lorem":
		// Offline provider for development and tests; no API key needed.
		provider := lorem.NewProvider()
		logger.Warn("using mock lorem completion provider")
		return provider, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}
