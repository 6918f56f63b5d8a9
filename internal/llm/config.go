// Package llm provides the text-generation clients used to write tailored documents.
// Providers are swappable behind the Client interface and model choice is by tier.
package llm

import (
	"fmt"
	"strings"
)

// ModelTier represents the capability level of a model
type ModelTier string

const (
	// TierLite is for short, cheap generations
	TierLite ModelTier = "lite"
	// TierStandard is the default tier for document drafting
	TierStandard ModelTier = "standard"
	// TierAdvanced is for long or senior-level documents
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Supported providers
const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
	ProviderZhipu  Provider = "zhipu"
)

// DefaultTemperature keeps drafts close to the brief
const DefaultTemperature = 0.3

// Config holds the model configuration for one provider
type Config struct {
	Provider    Provider             `json:"provider" yaml:"provider"`
	Models      map[ModelTier]string `json:"models" yaml:"models"`
	BaseURL     string               `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Temperature float64              `json:"temperature,omitempty" yaml:"temperature,omitempty"`
}

// ParseProvider resolves a provider name. Empty input selects Gemini.
func ParseProvider(s string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return ProviderGemini, nil
	case ProviderGemini, ProviderOpenAI, ProviderZhipu:
		return p, nil
	default:
		return "", fmt.Errorf("unknown LLM provider %q", s)
	}
}

// DefaultConfig returns the default configuration (Gemini)
func DefaultConfig() *Config {
	return DefaultConfigFor(ProviderGemini)
}

// DefaultConfigFor returns the default models for a provider
func DefaultConfigFor(p Provider) *Config {
	switch p {
	case ProviderOpenAI:
		return &Config{
			Provider:    ProviderOpenAI,
			Temperature: DefaultTemperature,
			Models: map[ModelTier]string{
				TierLite:     "gpt-4o-mini",
				TierStandard: "gpt-4o",
				TierAdvanced: "gpt-4.1",
			},
		}
	case ProviderZhipu:
		return &Config{
			Provider:    ProviderZhipu,
			Temperature: DefaultTemperature,
			Models: map[ModelTier]string{
				TierLite:     "glm-4-flash",
				TierStandard: "glm-4-plus",
				TierAdvanced: "glm-4-plus",
			},
		}
	default:
		return &Config{
			Provider:    ProviderGemini,
			Temperature: DefaultTemperature,
			Models: map[ModelTier]string{
				TierLite:     "gemini-2.5-flash-lite",
				TierStandard: "gemini-2.5-flash",
				TierAdvanced: "gemini-2.5-pro",
			},
		}
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// fall back to standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of the Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := *c
	newConfig.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return &newConfig
}

func (c *Config) temperature() float32 {
	if c.Temperature <= 0 {
		return DefaultTemperature
	}
	return float32(c.Temperature)
}
