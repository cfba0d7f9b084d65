package ratelimit

import "time"

// Config holds rate limiting configuration. Limits apply per client IP.
type Config struct {
	Enabled           bool          `mapstructure:"enabled"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute" validate:"gte=1"`
	Burst             int           `mapstructure:"burst" validate:"gte=0"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
	IdleTTL           time.Duration `mapstructure:"idle_ttl"`
	Whitelist         []string      `mapstructure:"whitelist"`
	Blacklist         []string      `mapstructure:"blacklist"`
}

// DefaultConfig returns the limits used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Enabled:           true,
		RequestsPerMinute: 600,
		Burst:             60,
		CleanupInterval:   5 * time.Minute,
		IdleTTL:           time.Hour,
	}
}

// exempt reports whether path is never rate limited (health and metrics scrapes)
func exempt(path string) bool {
	return path == "/health" || path == "/metrics"
}

func toSet(list []string) map[string]bool {
	set := make(map[string]bool, len(list))
	for _, ip := range list {
		if ip != "" {
			set[ip] = true
		}
	}
	return set
}
