package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/krishnachadda/ResumeTailor/internal/config"
	"github.com/krishnachadda/ResumeTailor/internal/ingestion"
	"github.com/krishnachadda/ResumeTailor/internal/llm"
	"github.com/krishnachadda/ResumeTailor/internal/observability"
	"github.com/krishnachadda/ResumeTailor/internal/pipeline"
	"github.com/krishnachadda/ResumeTailor/internal/synthesis"
)

// inputFlags are shared by tailor and analyze
type inputFlags struct {
	configPath string
	resume     string
	job        string
	jobURL     string
	template   string
	industry   string
	level      string
	provider   string
	apiKey     string
	timeout    int
	retries    int
	outDir     string
	jsonOut    bool
	verbose    bool
	useBrowser bool
}

func (f *inputFlags) register(cmd *cobra.Command, withProvider bool) {
	flags := cmd.Flags()
	// Config file flag (processed first)
	flags.StringVar(&f.configPath, "config", "", "Path to a JSON or YAML config file (values can be overridden by other flags)")

	flags.StringVarP(&f.resume, "resume", "r", "", "Path to resume text file")
	flags.StringVarP(&f.job, "job", "j", "", "Path to job description text file (mutually exclusive with --job-url)")
	flags.StringVar(&f.jobURL, "job-url", "", "URL to fetch the job description from (mutually exclusive with --job)")
	flags.StringVarP(&f.template, "template", "t", "", "Template: executive, tech, creative or academic")
	flags.StringVar(&f.industry, "industry", "", "Target industry (e.g. Technology, Finance)")
	flags.StringVar(&f.level, "level", "", "Target experience level: entry, mid, senior or executive")
	flags.StringVarP(&f.outDir, "out", "o", "", "Directory to write results to")
	flags.BoolVar(&f.jsonOut, "json", false, "Print the result as JSON")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "Print detailed debug information")
	flags.BoolVar(&f.useBrowser, "use-browser", false, "Use headless browser for SPA job pages (requires Chrome)")

	if withProvider {
		flags.StringVar(&f.provider, "provider", "", "LLM provider: gemini, openai or zhipu (defaults to LLM_PROVIDER env var, then gemini)")
		flags.StringVar(&f.apiKey, "api-key", "", "Provider API key (defaults to the provider's *_API_KEY env var)")
		flags.IntVar(&f.timeout, "timeout", 0, "Synthesis timeout in seconds")
		flags.IntVar(&f.retries, "max-retries", 0, "Retries for transient provider failures")
	}
}

// resolveConfig loads the config file and applies flag overrides, environment fallbacks and defaults
func (f *inputFlags) resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	// Step 1: Load config file if provided
	var cfg config.Config
	if f.configPath != "" {
		loaded, err := config.LoadConfig(f.configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	// Step 2: Apply CLI overrides; only flags that were explicitly set
	changed := cmd.Flags().Changed
	if changed("resume") {
		cfg.Resume = f.resume
	}
	if changed("job") {
		cfg.Job = f.job
		cfg.JobURL = ""
	}
	if changed("job-url") {
		cfg.JobURL = f.jobURL
		if !changed("job") {
			cfg.Job = ""
		}
	}
	if changed("template") {
		cfg.Template = f.template
	}
	if changed("industry") {
		cfg.Industry = f.industry
	}
	if changed("level") {
		cfg.Level = f.level
	}
	if changed("out") {
		cfg.OutDir = f.outDir
	}
	if changed("provider") {
		cfg.LLM.Provider = f.provider
	}
	if changed("api-key") {
		cfg.LLM.APIKey = f.apiKey
	}
	if changed("timeout") {
		cfg.TimeoutSeconds = f.timeout
	}
	if changed("max-retries") {
		retries := f.retries
		cfg.MaxRetries = &retries
	}
	if changed("use-browser") {
		cfg.UseBrowser = f.useBrowser
	}
	if changed("verbose") {
		cfg.Verbose = f.verbose
	}

	// Step 3: Environment fallbacks, then defaults
	cfg.ApplyEnv(os.Getenv)
	cfg = cfg.MergeWithDefaults(config.Config{})

	// Step 4: Validate
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Resume == "" {
		return nil, fmt.Errorf("--resume must be provided (via flag or config)")
	}
	if cfg.Job == "" && cfg.JobURL == "" {
		return nil, fmt.Errorf("either --job or --job-url must be provided (via flag or config)")
	}
	return &cfg, nil
}

// setupCLILogger logs warnings and above to stderr, or everything when verbose
func setupCLILogger(w io.Writer, cfg *config.Config) error {
	level := slog.LevelWarn
	if cfg.Logging.Level != "" {
		parsed, err := observability.ParseLevel(cfg.Logging.Level)
		if err != nil {
			return err
		}
		level = parsed
	}
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	return observability.SetupLogger(w, cfg.Logging.Format, level)
}

// loadInputs reads the resume and the job description from files or the job URL
func loadInputs(ctx context.Context, cfg *config.Config) (resume, job string, err error) {
	resume, err = ingestion.ReadFile(cfg.Resume)
	if err != nil {
		return "", "", fmt.Errorf("failed to read resume: %w", err)
	}
	if cfg.JobURL != "" {
		job, err = ingestion.FromURL(ctx, cfg.JobURL, cfg.UseBrowser)
		if err != nil {
			return "", "", fmt.Errorf("failed to fetch job description: %w", err)
		}
		return resume, job, nil
	}
	job, err = ingestion.ReadFile(cfg.Job)
	if err != nil {
		return "", "", fmt.Errorf("failed to read job description: %w", err)
	}
	return resume, job, nil
}

// newOrchestrator builds the provider client and the orchestrator. The returned closer
// releases the client.
func newOrchestrator(ctx context.Context, cfg *config.Config) (*pipeline.Orchestrator, func(), error) {
	if cfg.LLM.APIKey == "" {
		return nil, nil, fmt.Errorf("%s environment variable or --api-key flag is required", config.APIKeyEnv(cfg.LLM.Provider))
	}
	llmCfg, err := cfg.LLMClientConfig()
	if err != nil {
		return nil, nil, err
	}
	client, err := llm.NewClient(ctx, llmCfg, cfg.LLM.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	orch := pipeline.New(synthesis.NewLLMGenerator(client), pipeline.Options{
		Timeout:    cfg.Timeout(),
		MaxRetries: cfg.Retries(),
	})
	closer := func() {
		if err := client.Close(); err != nil {
			slog.Warn("failed to close LLM client", "error", err)
		}
	}
	return orch, closer, nil
}
