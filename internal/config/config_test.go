package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Risk.MaxOrderValue != 500 {
		t.Errorf("MaxOrderValue = %v, want 500", cfg.Risk.MaxOrderValue)
	}
	if cfg.Risk.HighRiskOrderValue != 250 {
		t.Errorf("HighRiskOrderValue = %v, want 250", cfg.Risk.HighRiskOrderValue)
	}
	if cfg.Risk.BuyLimitPercent != 0.05 {
		t.Errorf("BuyLimitPercent = %v, want 0.05", cfg.Risk.BuyLimitPercent)
	}
	if cfg.Risk.StopLossPercent != 0.30 {
		t.Errorf("StopLossPercent = %v, want 0.30", cfg.Risk.StopLossPercent)
	}
	if cfg.Broker.Mode != "paper" {
		t.Errorf("Broker.Mode = %q, want paper", cfg.Broker.Mode)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `[risk]
max_order_value = 1000.0
high_risk_order_value = 400.0
buy_limit_percent = 0.03
stop_loss_percent = 0.25

[logging]
level = "debug"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Risk.MaxOrderValue != 1000 {
		t.Errorf("MaxOrderValue = %v, want 1000", cfg.Risk.MaxOrderValue)
	}
	if cfg.Risk.BuyLimitPercent != 0.03 {
		t.Errorf("BuyLimitPercent = %v, want 0.03", cfg.Risk.BuyLimitPercent)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	// Sections absent from the file keep their defaults.
	if cfg.Broker.Mode != "paper" {
		t.Errorf("Broker.Mode = %q, want paper", cfg.Broker.Mode)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SIGNAL_TRADER_MAX_ORDER_VALUE", "750")
	t.Setenv("SIGNAL_TRADER_LOG_LEVEL", "debug")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Risk.MaxOrderValue != 750 {
		t.Errorf("MaxOrderValue = %v, want 750", cfg.Risk.MaxOrderValue)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero max order value", "[risk]\nmax_order_value = 0.0\n"},
		{"high risk above max", "[risk]\nmax_order_value = 100.0\nhigh_risk_order_value = 200.0\n"},
		{"buy limit out of range", "[risk]\nbuy_limit_percent = 1.5\n"},
		{"stop loss out of range", "[risk]\nstop_loss_percent = 1.0\n"},
		{"unknown broker mode", "[broker]\nmode = \"live\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(dir); err == nil {
				t.Error("Load succeeded, want validation error")
			}
		})
	}
}

func TestRiskSettings(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	settings := cfg.RiskSettings()
	if settings.MaxOrderValue != cfg.Risk.MaxOrderValue ||
		settings.HighRiskOrderValue != cfg.Risk.HighRiskOrderValue ||
		settings.BuyLimitPercent != cfg.Risk.BuyLimitPercent ||
		settings.StopLossPercent != cfg.Risk.StopLossPercent {
		t.Errorf("RiskSettings() = %+v does not mirror %+v", settings, cfg.Risk)
	}
}
