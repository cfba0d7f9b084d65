// Package config provides configuration loading and validation for the CLI.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/jonathan/connection-pathfinder/internal/resolver"
	"github.com/jonathan/connection-pathfinder/internal/server"
)

// EnvPrefix prefixes every environment variable override, e.g. PATHFINDER_LOGGING_LEVEL
const EnvPrefix = "PATHFINDER"

// Config represents the CLI configuration. Values come from defaults, an optional
// YAML or JSON file, and environment variables, in increasing order of precedence.
type Config struct {
	Resolver resolver.Config `mapstructure:"resolver"`
	Logging  LoggingConfig   `mapstructure:"logging"`
	Database DatabaseConfig  `mapstructure:"database"`
	Batch    BatchConfig     `mapstructure:"batch"`
	Server   server.Config   `mapstructure:"server"`
}

// LoggingConfig controls the zap logger
type LoggingConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

// DatabaseConfig locates the PostgreSQL graph store
type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	MaxConns int32  `mapstructure:"max_conns" validate:"gte=0"`
}

// BatchConfig controls parallel resolution in the batch command
type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency" validate:"gte=1,lte=64"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Resolver: resolver.DefaultConfig(),
		Logging:  LoggingConfig{Level: "info"},
		Database: DatabaseConfig{MaxConns: 4},
		Batch:    BatchConfig{Concurrency: 4},
		Server:   server.DefaultConfig(),
	}
}

// Load reads configuration from path (optional) and the environment.
// An empty path loads defaults and environment variables only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// the conventional unprefixed variable also works for the database
	if err := v.BindEnv("database.url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind database url: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) {
				return nil, fmt.Errorf("config file not found %s: %w", path, err)
			}
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, decodeHook); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key so that environment variables can override it.
func setDefaults(v *viper.Viper, d Config) {
	r := d.Resolver
	v.SetDefault("resolver.direct_threshold", r.DirectThreshold)
	v.SetDefault("resolver.intermediary_min_similarity", r.IntermediaryMinSimilarity)
	v.SetDefault("resolver.min_path_strength", r.MinPathStrength)
	v.SetDefault("resolver.intermediary_confidence_factor", r.IntermediaryConfidenceFactor)
	v.SetDefault("resolver.cold_floor", r.ColdFloor)
	v.SetDefault("resolver.cold_confidence_factor", r.ColdConfidenceFactor)
	v.SetDefault("resolver.none_confidence", r.NoneConfidence)
	v.SetDefault("resolver.hop_limit", r.HopLimit)
	v.SetDefault("resolver.graph_timeout", r.GraphTimeout.String())
	v.SetDefault("resolver.memo_size", r.MemoSize)

	v.SetDefault("resolver.weights.industry", r.Weights.Industry)
	v.SetDefault("resolver.weights.skills", r.Weights.Skills)
	v.SetDefault("resolver.weights.education", r.Weights.Education)
	v.SetDefault("resolver.weights.location", r.Weights.Location)
	v.SetDefault("resolver.weights.companies", r.Weights.Companies)

	v.SetDefault("resolver.sampling.max_connections", r.Sampling.MaxConnections)
	v.SetDefault("resolver.sampling.min_connections", r.Sampling.MinConnections)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("database.url", d.Database.URL)
	v.SetDefault("database.max_conns", d.Database.MaxConns)
	v.SetDefault("batch.concurrency", d.Batch.Concurrency)

	srv := d.Server
	v.SetDefault("server.port", srv.Port)
	v.SetDefault("server.shutdown_timeout", srv.ShutdownTimeout.String())
	v.SetDefault("server.rate_limit.enabled", srv.RateLimit.Enabled)
	v.SetDefault("server.rate_limit.requests_per_minute", srv.RateLimit.RequestsPerMinute)
	v.SetDefault("server.rate_limit.burst", srv.RateLimit.Burst)
	v.SetDefault("server.rate_limit.cleanup_interval", srv.RateLimit.CleanupInterval.String())
	v.SetDefault("server.rate_limit.idle_ttl", srv.RateLimit.IdleTTL.String())
	v.SetDefault("server.rate_limit.whitelist", srv.RateLimit.Whitelist)
	v.SetDefault("server.rate_limit.blacklist", srv.RateLimit.Blacklist)
}

var configValidator = validator.New()

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := c.Resolver.Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}
