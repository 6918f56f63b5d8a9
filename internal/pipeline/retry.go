package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/ecodeclub/ekit/retry"

	"github.com/krishnachadda/ResumeTailor/internal/llm"
	"github.com/krishnachadda/ResumeTailor/internal/synthesis"
)

// retryingGenerator retries transient provider failures with exponential backoff.
// Permanent failures and cancellation return immediately.
type retryingGenerator struct {
	next       synthesis.Generator
	maxRetries int32
	initial    time.Duration
	maxWait    time.Duration
}

func (g *retryingGenerator) Generate(ctx context.Context, brief synthesis.Brief) (string, error) {
	// ekit treats a non-positive limit as unlimited
	if g.maxRetries <= 0 {
		return g.next.Generate(ctx, brief)
	}
	strategy, err := retry.NewExponentialBackoffRetryStrategy(g.initial, g.maxWait, g.maxRetries)
	if err != nil {
		return "", err
	}
	attempt := 1
	for {
		text, err := g.next.Generate(ctx, brief)
		if err == nil || !llm.IsTransient(err) || ctx.Err() != nil {
			return text, err
		}
		wait, ok := strategy.Next()
		if !ok {
			return "", err
		}
		slog.WarnContext(ctx, "transient provider failure, retrying",
			"document", brief.Kind,
			"attempt", attempt,
			"wait", wait,
			"error", err,
		)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", err
		case <-timer.C:
		}
		attempt++
	}
}
