package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tailor_runs_total",
		Help: "Tailoring runs by final state and outcome",
	}, []string{"state", "outcome"})

	runDuration = promauto.NewSummaryVec(prometheus.SummaryOpts{
		Name:       "tailor_run_duration_seconds",
		Help:       "Duration of tailoring runs",
		Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
	}, []string{"outcome"})
)

// observeRun records a finished run. state is where it ended or where it failed.
func observeRun(state State, outcome string, elapsed time.Duration) {
	runsTotal.WithLabelValues(string(state), outcome).Inc()
	runDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}
