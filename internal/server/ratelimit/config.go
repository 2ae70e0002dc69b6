package ratelimit

import (
	"strings"
	"time"

	"github.com/jonathan/resume-matcher/internal/config"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // exact path, prefix ending in "/", or pattern with {name} segments
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// FromSettings builds a limiter Config from the service configuration.
func FromSettings(s config.RateLimitConfig) *Config {
	if !s.Enabled {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    s.DefaultLimit,
		DefaultWindow:   s.DefaultWindow,
		CleanupInterval: s.CleanupInterval,
		Whitelist:       ParseIPList(s.Whitelist),
		Blacklist:       ParseIPList(s.Blacklist),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// outbound fetches and file parsing
		{Path: "/jobs/from-url", Method: "POST", Limit: 20, Window: time.Hour, Burst: 5},
		{Path: "/upload_resume", Method: "POST", Limit: 60, Window: time.Hour, Burst: 10},

		// account writes
		{Path: "/users", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/auth/login", Method: "POST", Limit: 30, Window: time.Minute, Burst: 10},

		// scoring
		{Path: "/jobs", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/match", Method: "POST", Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/match/text", Method: "POST", Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/resumes/{id}/rankings", Method: "GET", Limit: 120, Window: time.Minute, Burst: 20},
	}
}

// ParseIPList parses a comma-separated list of IP addresses into a set.
func ParseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
