// Package config provides configuration loading and validation for the CLI, the API server
// and the queue worker.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/krishnachadda/ResumeTailor/internal/llm"
	"github.com/krishnachadda/ResumeTailor/internal/types"
)

// Defaults applied by MergeWithDefaults
const (
	DefaultTimeoutSeconds = 60
	DefaultMaxRetries     = 2
	DefaultPort           = 8080
	DefaultRequestQueue   = "tailor.requests"
	DefaultUpdatesQueue   = "tailor.updates"
	DefaultConcurrency    = 2
	DefaultRateLimit      = 2.0
	DefaultRateBurst      = 5
)

// Config is loaded from a JSON or YAML file. All fields are optional; CLI flags and
// environment variables fill or override them.
type Config struct {
	// Inputs
	Resume string `json:"resume,omitempty" yaml:"resume,omitempty"` // Path to resume text file
	Job    string `json:"job,omitempty" yaml:"job,omitempty"`       // Path to job posting text file
	JobURL string `json:"job_url,omitempty" yaml:"job_url,omitempty"`

	// Presentation choices
	Template string `json:"template,omitempty" yaml:"template,omitempty"`
	Industry string `json:"industry,omitempty" yaml:"industry,omitempty"`
	Level    string `json:"level,omitempty" yaml:"level,omitempty"`

	// Output
	OutDir string `json:"out_dir,omitempty" yaml:"out_dir,omitempty"`

	LLM     LLMConfig     `json:"llm,omitempty" yaml:"llm,omitempty"`
	Server  ServerConfig  `json:"server,omitempty" yaml:"server,omitempty"`
	Queue   QueueConfig   `json:"queue,omitempty" yaml:"queue,omitempty"`
	Logging LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`

	// Behavior
	TimeoutSeconds int  `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty"`
	MaxRetries     *int `json:"max_retries,omitempty" yaml:"max_retries,omitempty"`
	UseBrowser     bool `json:"use_browser,omitempty" yaml:"use_browser,omitempty"`
	Verbose        bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// LLMConfig selects and tunes the text-generation provider
type LLMConfig struct {
	Provider    string            `json:"provider,omitempty" yaml:"provider,omitempty"`
	APIKey      string            `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	BaseURL     string            `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Models      map[string]string `json:"models,omitempty" yaml:"models,omitempty"` // tier -> model
	Temperature float64           `json:"temperature,omitempty" yaml:"temperature,omitempty"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Port       int      `json:"port,omitempty" yaml:"port,omitempty"`
	RateLimit  float64  `json:"rate_limit,omitempty" yaml:"rate_limit,omitempty"` // requests per second per client
	RateBurst  int      `json:"rate_burst,omitempty" yaml:"rate_burst,omitempty"`
	CORSOrigin []string `json:"cors_origins,omitempty" yaml:"cors_origins,omitempty"`
}

// QueueConfig configures the RabbitMQ worker
type QueueConfig struct {
	URL          string `json:"url,omitempty" yaml:"url,omitempty"`
	RequestQueue string `json:"request_queue,omitempty" yaml:"request_queue,omitempty"`
	UpdatesQueue string `json:"updates_queue,omitempty" yaml:"updates_queue,omitempty"`
	Concurrency  int    `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`
}

// LoggingConfig selects the log format and level
type LoggingConfig struct {
	Format string `json:"format,omitempty" yaml:"format,omitempty"` // text or json
	Level  string `json:"level,omitempty" yaml:"level,omitempty"`
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required inputs are checked by each command after flags are merged.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}
	if _, err := types.ParseTemplateID(c.Template); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if _, err := types.ParseIndustry(c.Industry); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if _, err := types.ParseExperienceLevel(c.Level); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if _, err := llm.ParseProvider(c.LLM.Provider); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	for tier := range c.LLM.Models {
		switch llm.ModelTier(tier) {
		case llm.TierLite, llm.TierStandard, llm.TierAdvanced:
		default:
			return fmt.Errorf("config error: unknown model tier %q", tier)
		}
	}

	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'timeout_seconds' must be non-negative")
	}
	if c.MaxRetries != nil && *c.MaxRetries < 0 {
		return fmt.Errorf("config error: 'max_retries' must be non-negative")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("config error: 'llm.temperature' must be between 0 and 2")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' out of range")
	}
	if c.Server.RateLimit < 0 || c.Server.RateBurst < 0 {
		return fmt.Errorf("config error: rate limit values must be non-negative")
	}
	if c.Queue.Concurrency < 0 {
		return fmt.Errorf("config error: 'queue.concurrency' must be non-negative")
	}

	for name, p := range map[string]string{"resume": c.Resume, "job": c.Job} {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", name, p)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults,
// then from the built-in defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	fill := func(dst *string, vals ...string) {
		for _, v := range vals {
			if *dst != "" {
				return
			}
			*dst = v
		}
	}
	fill(&result.Resume, defaults.Resume)
	fill(&result.Job, defaults.Job)
	fill(&result.JobURL, defaults.JobURL)
	fill(&result.Template, defaults.Template, string(types.DefaultTemplate))
	fill(&result.Industry, defaults.Industry)
	fill(&result.Level, defaults.Level)
	fill(&result.OutDir, defaults.OutDir)
	fill(&result.LLM.Provider, defaults.LLM.Provider, string(llm.ProviderGemini))
	fill(&result.LLM.APIKey, defaults.LLM.APIKey)
	fill(&result.LLM.BaseURL, defaults.LLM.BaseURL)
	fill(&result.Queue.URL, defaults.Queue.URL)
	fill(&result.Queue.RequestQueue, defaults.Queue.RequestQueue, DefaultRequestQueue)
	fill(&result.Queue.UpdatesQueue, defaults.Queue.UpdatesQueue, DefaultUpdatesQueue)
	fill(&result.Logging.Format, defaults.Logging.Format)
	fill(&result.Logging.Level, defaults.Logging.Level)

	if len(result.LLM.Models) == 0 && len(defaults.LLM.Models) > 0 {
		result.LLM.Models = defaults.LLM.Models
	}
	if result.LLM.Temperature == 0 {
		result.LLM.Temperature = defaults.LLM.Temperature
	}
	if len(result.Server.CORSOrigin) == 0 {
		result.Server.CORSOrigin = defaults.Server.CORSOrigin
	}
	if result.MaxRetries == nil {
		result.MaxRetries = defaults.MaxRetries
	}
	if result.MaxRetries == nil {
		n := DefaultMaxRetries
		result.MaxRetries = &n
	}

	result.TimeoutSeconds = firstPositive(result.TimeoutSeconds, defaults.TimeoutSeconds, DefaultTimeoutSeconds)
	result.Server.Port = firstPositive(result.Server.Port, defaults.Server.Port, DefaultPort)
	result.Server.RateBurst = firstPositive(result.Server.RateBurst, defaults.Server.RateBurst, DefaultRateBurst)
	result.Queue.Concurrency = firstPositive(result.Queue.Concurrency, defaults.Queue.Concurrency, DefaultConcurrency)
	if result.Server.RateLimit == 0 {
		result.Server.RateLimit = defaults.Server.RateLimit
	}
	if result.Server.RateLimit == 0 {
		result.Server.RateLimit = DefaultRateLimit
	}

	// bools cannot distinguish unset from false, so CLI flags always win for them
	return result
}

// ApplyEnv fills empty secrets and endpoints from the environment. getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if c.LLM.Provider == "" {
		c.LLM.Provider = getenv("LLM_PROVIDER")
	}
	if c.LLM.APIKey == "" {
		c.LLM.APIKey = getenv(APIKeyEnv(c.LLM.Provider))
	}
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = getenv("LLM_BASE_URL")
	}
	if c.Queue.URL == "" {
		c.Queue.URL = getenv("RABBITMQ_URL")
	}
	if c.Logging.Level == "" {
		c.Logging.Level = getenv("LOG_LEVEL")
	}
	if c.Logging.Format == "" {
		c.Logging.Format = getenv("LOG_FORMAT")
	}
}

// APIKeyEnv names the environment variable holding the key for provider
func APIKeyEnv(provider string) string {
	switch p, _ := llm.ParseProvider(provider); p {
	case llm.ProviderOpenAI:
		return "OPENAI_API_KEY"
	case llm.ProviderZhipu:
		return "ZHIPU_API_KEY"
	default:
		return "GEMINI_API_KEY"
	}
}

// Timeout is the synthesis timeout as a duration
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Retries is the configured retry limit, or DefaultMaxRetries when unset
func (c *Config) Retries() int {
	if c.MaxRetries == nil {
		return DefaultMaxRetries
	}
	return *c.MaxRetries
}

// LLMClientConfig builds the provider configuration, starting from the provider's default models
func (c *Config) LLMClientConfig() (*llm.Config, error) {
	provider, err := llm.ParseProvider(c.LLM.Provider)
	if err != nil {
		return nil, err
	}
	cfg := llm.DefaultConfigFor(provider)
	for tier, model := range c.LLM.Models {
		cfg = cfg.WithModel(llm.ModelTier(tier), model)
	}
	cfg.BaseURL = c.LLM.BaseURL
	if c.LLM.Temperature > 0 {
		cfg.Temperature = c.LLM.Temperature
	}
	return cfg, nil
}

// Request builds a TailoringRequest from the presentation settings and the given texts
func (c *Config) Request(resume, jobDescription string) (*types.TailoringRequest, error) {
	tmpl, err := types.ParseTemplateID(c.Template)
	if err != nil {
		return nil, err
	}
	industry, err := types.ParseIndustry(c.Industry)
	if err != nil {
		return nil, err
	}
	level, err := types.ParseExperienceLevel(c.Level)
	if err != nil {
		return nil, err
	}
	return &types.TailoringRequest{
		Resume:          resume,
		JobDescription:  jobDescription,
		Template:        tmpl,
		Industry:        industry,
		ExperienceLevel: level,
	}, nil
}

func firstPositive(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}
