// Package config loads harness configuration. The engine itself takes
// its policy as an explicit per-call value; this package only builds that
// value (plus observability settings) for the CLI.
package config

import (
	"fmt"

	"github.com/nportas/amm-arb-engine/internal/arbitrage"
	"github.com/spf13/viper"
)

// Config holds all configuration for the evaluator harness.
type Config struct {
	Engine        EngineConfig        `mapstructure:"engine"`
	Snapshot      SnapshotConfig      `mapstructure:"snapshot"`
	Observability ObservabilityConfig `mapstructure:"observability"`
	HTTP          HTTPConfig          `mapstructure:"http"`
}

// EngineConfig holds the evaluation policy handed to the engine.
type EngineConfig struct {
	GasCost             float64 `mapstructure:"gas_cost"`
	FlashloanFeePct     float64 `mapstructure:"flashloan_fee_pct"`
	MinPriceDiffPct     float64 `mapstructure:"min_price_diff_pct"`
	MaxTWAPDeviationPct float64 `mapstructure:"max_twap_deviation_pct"`
	MinProfitThreshold  float64 `mapstructure:"min_profit_threshold"`
	BatchConcurrency    int     `mapstructure:"batch_concurrency"`
}

// Policy converts the loaded settings into the engine's per-call policy
// value.
func (e EngineConfig) Policy() arbitrage.Config {
	return arbitrage.Config{
		GasCost:             e.GasCost,
		FlashloanFeePct:     e.FlashloanFeePct,
		MinPriceDiffPct:     e.MinPriceDiffPct,
		MaxTWAPDeviationPct: e.MaxTWAPDeviationPct,
		MinProfitThreshold:  e.MinProfitThreshold,
	}
}

// SnapshotConfig points at the pool snapshot the harness evaluates.
type SnapshotConfig struct {
	Path string `mapstructure:"path"`
}

// ObservabilityConfig holds observability settings.
type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or text
}

// MetricsConfig holds metrics settings.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// TracingConfig holds tracing settings.
type TracingConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

// HTTPConfig holds the metrics HTTP server settings.
type HTTPConfig struct {
	Port int `mapstructure:"port"`
}

// Load reads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine when env vars carry the settings.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("engine.gas_cost", 5.0)
	v.SetDefault("engine.flashloan_fee_pct", 0.0009)
	v.SetDefault("engine.min_price_diff_pct", 0.5)
	v.SetDefault("engine.max_twap_deviation_pct", 2.0)
	v.SetDefault("engine.min_profit_threshold", 1.0)
	v.SetDefault("engine.batch_concurrency", 4)

	v.SetDefault("snapshot.path", "config/snapshot.json")

	v.SetDefault("observability.logging.level", "info")
	v.SetDefault("observability.logging.format", "json")
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.tracing.enabled", false)
	v.SetDefault("observability.tracing.endpoint", "localhost:4317")

	v.SetDefault("http.port", 9091)
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if c.Engine.GasCost < 0 {
		return fmt.Errorf("engine.gas_cost must be >= 0")
	}
	if c.Engine.FlashloanFeePct < 0 {
		return fmt.Errorf("engine.flashloan_fee_pct must be >= 0")
	}
	if c.Engine.MinPriceDiffPct < 0 {
		return fmt.Errorf("engine.min_price_diff_pct must be >= 0")
	}
	if c.Engine.MaxTWAPDeviationPct < 0 {
		return fmt.Errorf("engine.max_twap_deviation_pct must be >= 0")
	}
	if c.Engine.BatchConcurrency <= 0 {
		return fmt.Errorf("engine.batch_concurrency must be > 0")
	}

	if c.Snapshot.Path == "" {
		return fmt.Errorf("snapshot.path is required")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Observability.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Observability.Logging.Level)
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Observability.Logging.Format] {
		return fmt.Errorf("invalid log format: %s", c.Observability.Logging.Format)
	}

	return nil
}
