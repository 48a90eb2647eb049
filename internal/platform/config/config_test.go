package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, "engine: {}\n"))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Engine.GasCost != 5.0 {
		t.Errorf("Expected default gas cost 5.0, got %f", cfg.Engine.GasCost)
	}
	if cfg.Engine.FlashloanFeePct != 0.0009 {
		t.Errorf("Expected default flashloan fee 0.0009, got %f", cfg.Engine.FlashloanFeePct)
	}
	if cfg.Engine.BatchConcurrency != 4 {
		t.Errorf("Expected default batch concurrency 4, got %d", cfg.Engine.BatchConcurrency)
	}
	if cfg.Observability.Logging.Level != "info" {
		t.Errorf("Expected default log level info, got %s", cfg.Observability.Logging.Level)
	}
	if cfg.HTTP.Port != 9091 {
		t.Errorf("Expected default http port 9091, got %d", cfg.HTTP.Port)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfigFile(t, `
engine:
  gas_cost: 12.5
  flashloan_fee_pct: 0.0005
  min_price_diff_pct: 1.5
  max_twap_deviation_pct: 3.0
  min_profit_threshold: 2.0
  batch_concurrency: 8
snapshot:
  path: /tmp/snapshot.json
observability:
  logging:
    level: debug
    format: text
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Engine.GasCost != 12.5 {
		t.Errorf("Expected gas cost 12.5, got %f", cfg.Engine.GasCost)
	}
	if cfg.Engine.BatchConcurrency != 8 {
		t.Errorf("Expected batch concurrency 8, got %d", cfg.Engine.BatchConcurrency)
	}
	if cfg.Snapshot.Path != "/tmp/snapshot.json" {
		t.Errorf("Unexpected snapshot path: %s", cfg.Snapshot.Path)
	}
	if cfg.Observability.Logging.Level != "debug" || cfg.Observability.Logging.Format != "text" {
		t.Errorf("Unexpected logging config: %+v", cfg.Observability.Logging)
	}
}

func TestPolicyConversion(t *testing.T) {
	engine := EngineConfig{
		GasCost:             7,
		FlashloanFeePct:     0.001,
		MinPriceDiffPct:     0.8,
		MaxTWAPDeviationPct: 2.5,
		MinProfitThreshold:  3,
	}

	policy := engine.Policy()
	if policy.GasCost != 7 || policy.FlashloanFeePct != 0.001 ||
		policy.MinPriceDiffPct != 0.8 || policy.MaxTWAPDeviationPct != 2.5 ||
		policy.MinProfitThreshold != 3 {
		t.Errorf("Policy conversion lost a field: %+v", policy)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(*Config) {}, false},
		{"negative gas cost", func(c *Config) { c.Engine.GasCost = -1 }, true},
		{"negative flashloan fee", func(c *Config) { c.Engine.FlashloanFeePct = -0.1 }, true},
		{"negative price diff floor", func(c *Config) { c.Engine.MinPriceDiffPct = -1 }, true},
		{"zero batch concurrency", func(c *Config) { c.Engine.BatchConcurrency = 0 }, true},
		{"empty snapshot path", func(c *Config) { c.Snapshot.Path = "" }, true},
		{"bad log level", func(c *Config) { c.Observability.Logging.Level = "verbose" }, true},
		{"bad log format", func(c *Config) { c.Observability.Logging.Format = "xml" }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load(writeConfigFile(t, "engine: {}\n"))
			if err != nil {
				t.Fatalf("Failed to load base config: %v", err)
			}
			tc.mutate(cfg)

			err = cfg.Validate()
			if tc.wantErr && err == nil {
				t.Error("Expected a validation error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("Unexpected validation error: %v", err)
			}
		})
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	path := writeConfigFile(t, `
engine:
  gas_cost: -5
`)

	if _, err := Load(path); err == nil {
		t.Error("Expected Load to reject a negative gas cost")
	}
}
