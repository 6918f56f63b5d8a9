package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/krishnachadda/ResumeTailor/internal/config"
	"github.com/krishnachadda/ResumeTailor/internal/queue"
)

func newWorkerCmd() *cobra.Command {
	var (
		f           serviceFlags
		concurrency int
		amqpURL     string
	)
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Consume tailoring jobs from RabbitMQ",
		Long: `Consumes {"id", "request"} messages from the request queue, runs them, and publishes
pending/done/failed updates to the updates queue.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.resolve(cmd, func(c *config.Config) {
				if cmd.Flags().Changed("concurrency") {
					c.Queue.Concurrency = concurrency
				}
				if cmd.Flags().Changed("amqp-url") {
					c.Queue.URL = amqpURL
				}
			})
			if err != nil {
				return err
			}
			if cfg.Queue.URL == "" {
				return fmt.Errorf("RABBITMQ_URL environment variable or --amqp-url flag is required")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			orch, closeClient, err := newOrchestrator(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeClient()

			consumer, err := queue.Dial(queue.Config{
				URL:          cfg.Queue.URL,
				RequestQueue: cfg.Queue.RequestQueue,
				UpdatesQueue: cfg.Queue.UpdatesQueue,
				Concurrency:  cfg.Queue.Concurrency,
			}, slog.Default())
			if err != nil {
				return err
			}
			defer consumer.Close()

			publisher, err := consumer.Publisher()
			if err != nil {
				return err
			}
			defer publisher.Close()

			slog.Info("worker pool starting",
				"queue", cfg.Queue.RequestQueue,
				"updates", cfg.Queue.UpdatesQueue,
				"concurrency", cfg.Queue.Concurrency,
			)
			return consumer.Run(ctx, queue.NewWorker(orch, publisher, slog.Default()))
		},
	}
	f.register(cmd)
	cmd.Flags().IntVar(&concurrency, "concurrency", config.DefaultConcurrency, "Number of concurrent workers")
	cmd.Flags().StringVar(&amqpURL, "amqp-url", "", "RabbitMQ URL (defaults to RABBITMQ_URL env var)")
	return cmd
}
