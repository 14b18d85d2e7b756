package ai

import (
	"context"
	"fmt"

	"github.com/arturoeanton/roadmapai/internal/port"
	"github.com/arturoeanton/roadmapai/pkg/config"
)

// FromConfig builds the generator selected by cfg.AIProvider. It returns a
// nil generator for "none" and for gemini without an API key; the assistant
// then answers from its canned replies.
func FromConfig(ctx context.Context, cfg *config.Config) (port.TextGenerator, error) {
	switch cfg.AIProvider {
	case "", "none":
		return nil, nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, nil
		}
		p, err := NewGeminiProvider(ctx, GeminiConfig{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel})
		if err != nil {
			return nil, err
		}
		return p, nil
	case "ollama":
		return NewOllamaProvider(OllamaEndpointConfig{
			BaseURL: cfg.OllamaChatURL,
			Model:   cfg.OllamaChatModel,
			Token:   cfg.OllamaChatToken,
		}), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.AIProvider)
	}
}
