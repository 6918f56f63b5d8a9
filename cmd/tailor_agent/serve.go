package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/krishnachadda/ResumeTailor/internal/config"
	"github.com/krishnachadda/ResumeTailor/internal/observability"
	"github.com/krishnachadda/ResumeTailor/internal/server"
)

// serviceFlags are shared by serve and worker
type serviceFlags struct {
	configPath string
	provider   string
	apiKey     string
	logFormat  string
	logLevel   string
}

func (f *serviceFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.configPath, "config", "", "Path to a JSON or YAML config file")
	flags.StringVar(&f.provider, "provider", "", "LLM provider: gemini, openai or zhipu")
	flags.StringVar(&f.apiKey, "api-key", "", "Provider API key (defaults to the provider's *_API_KEY env var)")
	flags.StringVar(&f.logFormat, "log-format", "", "Log format: text or json (default json)")
	flags.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn or error")
}

// resolve loads the config file, applies overrides, and installs the service logger
func (f *serviceFlags) resolve(cmd *cobra.Command, override func(*config.Config)) (*config.Config, error) {
	var cfg config.Config
	if f.configPath != "" {
		loaded, err := config.LoadConfig(f.configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	changed := cmd.Flags().Changed
	if changed("provider") {
		cfg.LLM.Provider = f.provider
	}
	if changed("api-key") {
		cfg.LLM.APIKey = f.apiKey
	}
	if changed("log-format") {
		cfg.Logging.Format = f.logFormat
	}
	if changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	override(&cfg)

	cfg.ApplyEnv(os.Getenv)
	cfg = cfg.MergeWithDefaults(config.Config{Logging: config.LoggingConfig{Format: observability.FormatJSON}})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, err := observability.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	if err := observability.SetupLogger(cmd.ErrOrStderr(), cfg.Logging.Format, level); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func newServeCmd() *cobra.Command {
	var (
		f    serviceFlags
		port int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  `Start an HTTP server that exposes /tailor, /tailor/stream, /analyze, /templates, /health and /metrics.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.resolve(cmd, func(c *config.Config) {
				if cmd.Flags().Changed("port") {
					c.Server.Port = port
				}
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			orch, closeClient, err := newOrchestrator(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeClient()

			srv, err := server.New(orch, server.Config{
				Port:        cfg.Server.Port,
				RateLimit:   cfg.Server.RateLimit,
				RateBurst:   cfg.Server.RateBurst,
				CORSOrigins: cfg.Server.CORSOrigin,
			})
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}
			return srv.Start(ctx)
		},
	}
	f.register(cmd)
	cmd.Flags().IntVar(&port, "port", config.DefaultPort, "Port to listen on")
	return cmd
}
