package llm

import (
	"context"
	"fmt"
)

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateContent generates text content using the specified model tier
	GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GetModel returns the provider model name for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a client for the configured provider. Provider failures returned by the
// client are *ProviderError values.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	var (
		client Client
		err    error
	)
	switch config.Provider {
	case ProviderGemini, "":
		client, err = NewGeminiClient(ctx, config, apiKey)
	case ProviderOpenAI:
		client, err = NewOpenAIClient(config, apiKey)
	case ProviderZhipu:
		client, err = NewZhipuClient(config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
	if err != nil {
		return nil, err
	}
	return Instrument(client, config.Provider), nil
}
