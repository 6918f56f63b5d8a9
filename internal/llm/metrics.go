package llm

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestDuration = promauto.NewSummaryVec(prometheus.SummaryOpts{
	Name:       "llm_request_duration_seconds",
	Help:       "Duration of LLM provider calls",
	Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
}, []string{"provider", "tier", "outcome"})

// instrumented records call latency and outcome for a provider client
type instrumented struct {
	Client
	provider Provider
}

// Instrument wraps a client so every GenerateContent call is observed
func Instrument(client Client, provider Provider) Client {
	if provider == "" {
		provider = ProviderGemini
	}
	return &instrumented{Client: client, provider: provider}
}

func (c *instrumented) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	start := time.Now()
	text, err := c.Client.GenerateContent(ctx, prompt, tier)
	requestDuration.WithLabelValues(string(c.provider), string(tier), outcome(err)).
		Observe(time.Since(start).Seconds())
	return text, err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case IsTransient(err):
		return string(KindTransient)
	default:
		return string(KindPermanent)
	}
}
