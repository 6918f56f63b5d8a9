package llm

import (
	"context"
	"fmt"

	"github.com/yankeguo/zhipu"
)

// ZhipuClient implements Client for Zhipu GLM models
type ZhipuClient struct {
	client *zhipu.Client
	config *Config
}

// NewZhipuClient creates a new Zhipu client
func NewZhipuClient(config *Config, apiKey string) (*ZhipuClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	client, err := zhipu.NewClient(zhipu.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Zhipu client: %w", err)
	}
	return &ZhipuClient{client: client, config: config}, nil
}

// GenerateContent sends the prompt as a single user message
func (c *ZhipuClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	completion, err := c.client.ChatCompletion(modelName).
		AddMessage(zhipu.ChatCompletionMessage{
			Role:    zhipu.RoleUser,
			Content: prompt,
		}).
		SetTemperature(float64(c.config.temperature())).
		Do(ctx)
	if err != nil {
		return "", classify(ProviderZhipu, err)
	}
	if len(completion.Choices) == 0 {
		return "", &ProviderError{Provider: ProviderZhipu, Kind: KindPermanent, Message: "no choices in response"}
	}
	return completion.Choices[0].Message.Content, nil
}

// GetModel returns the model name for a tier
func (c *ZhipuClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close is a no-op
func (c *ZhipuClient) Close() error {
	return nil
}
