// Package middleware holds net/http middleware shared by the API server.
package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsBuilder records request counts and latencies per route
type MetricsBuilder struct {
	summaryVec *prometheus.SummaryVec
	counterVec *prometheus.CounterVec
}

var (
	defaultBuilder *MetricsBuilder
	builderOnce    sync.Once
)

// NewMetricsBuilder returns the process-wide builder. The collectors are registered once
// with the default registry.
func NewMetricsBuilder() *MetricsBuilder {
	builderOnce.Do(func() {
		defaultBuilder = NewMetricsBuilderWith(prometheus.DefaultRegisterer)
	})
	return defaultBuilder
}

// NewMetricsBuilderWith registers the collectors with reg
func NewMetricsBuilderWith(reg prometheus.Registerer) *MetricsBuilder {
	factory := promauto.With(reg)
	summaryVec := factory.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP request duration in seconds",
			Objectives: map[float64]float64{
				0.5:  0.05,
				0.9:  0.01,
				0.95: 0.005,
				0.99: 0.001,
			},
		},
		[]string{"method", "path", "status_code"},
	)

	counterVec := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	return &MetricsBuilder{
		summaryVec: summaryVec,
		counterVec: counterVec,
	}
}

// Build wraps next. The path label is the matched route pattern so ids never reach label values.
func (a *MetricsBuilder) Build(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := NewStatusRecorder(w)

		next.ServeHTTP(rec, r)

		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		statusCode := strconv.Itoa(rec.Status())
		a.summaryVec.WithLabelValues(r.Method, path, statusCode).Observe(time.Since(start).Seconds())
		a.counterVec.WithLabelValues(r.Method, path, statusCode).Inc()
	})
}

// StatusRecorder captures the response status while passing writes and flushes through
type StatusRecorder struct {
	http.ResponseWriter
	status int
}

// NewStatusRecorder wraps w
func NewStatusRecorder(w http.ResponseWriter) *StatusRecorder {
	return &StatusRecorder{ResponseWriter: w}
}

// WriteHeader records the status code
func (s *StatusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *StatusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	return s.ResponseWriter.Write(b)
}

// Flush supports streaming responses
func (s *StatusRecorder) Flush() {
	if f, ok := s.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the underlying writer to http.ResponseController
func (s *StatusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// Status returns the recorded status, 200 when nothing was written
func (s *StatusRecorder) Status() int {
	if s.status == 0 {
		return http.StatusOK
	}
	return s.status
}
