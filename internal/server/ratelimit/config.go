package ratelimit

import (
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string  // Endpoint path pattern (supports prefix matching)
	Method string  // HTTP method (GET, POST, etc.)
	Rate   float64 // Sustained requests per second
	Burst  int     // Burst capacity (defaults to 1 if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultRate     float64
	DefaultBurst    int
	CleanupInterval time.Duration
	IdleTTL         time.Duration
	Whitelist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// NewConfig returns a configuration where the expensive endpoints share the given rate and burst
// and everything else gets a generous default.
func NewConfig(rps float64, burst int) *Config {
	if rps <= 0 {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultRate:     rps * 10,
		DefaultBurst:    burst * 10,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Whitelist:       make(map[string]bool),
		EndpointConfigs: DefaultEndpointConfigs(rps, burst),
	}
}

// DefaultEndpointConfigs returns the endpoint-specific limits. Endpoints that call the
// provider are the strictest.
func DefaultEndpointConfigs(rps float64, burst int) []EndpointConfig {
	return []EndpointConfig{
		{Path: "/tailor", Method: "POST", Rate: rps, Burst: burst},
		{Path: "/tailor/stream", Method: "POST", Rate: rps, Burst: burst},
		{Path: "/analyze", Method: "POST", Rate: rps * 5, Burst: burst * 5},
	}
}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns nil when no endpoint-specific limit applies.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	// health and metrics are never limited
	if method == "GET" && (path == "/health" || path == "/metrics") {
		return &EndpointConfig{}
	}
	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}
	return nil
}
