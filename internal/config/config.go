// Package config provides configuration management for the signal trader.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"

	"signal-trader/internal/models"
)

// Config holds all application configuration.
type Config struct {
	Risk    RiskConfig    `mapstructure:"risk"`
	Broker  BrokerConfig  `mapstructure:"broker"`
	Logging LoggingConfig `mapstructure:"logging"`
	Store   StoreConfig   `mapstructure:"store"`
}

// RiskConfig holds the order sizing settings.
type RiskConfig struct {
	// MaxOrderValue is the maximum dollar value of a standard open order.
	MaxOrderValue float64 `mapstructure:"max_order_value"`
	// HighRiskOrderValue is the order value applied when a signal carries
	// a high-risk marker.
	HighRiskOrderValue float64 `mapstructure:"high_risk_order_value"`
	// BuyLimitPercent is the fraction above the signal price for the buy
	// limit, e.g. 0.05.
	BuyLimitPercent float64 `mapstructure:"buy_limit_percent"`
	// StopLossPercent is the default fractional stop-loss drop, e.g. 0.30.
	StopLossPercent float64 `mapstructure:"stop_loss_percent"`
}

// BrokerConfig holds broker selection and paper-trading settings.
type BrokerConfig struct {
	// Mode selects the broker implementation; only "paper" ships here.
	Mode           string  `mapstructure:"mode"`
	InitialBalance float64 `mapstructure:"initial_balance"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
	File    bool   `mapstructure:"file"`
}

// StoreConfig holds the journal database location.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/signal-trader"
	}
	return filepath.Join(home, ".config", "signal-trader")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory. A missing
// config file yields the defaults.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("risk.max_order_value", 500.0)
	v.SetDefault("risk.high_risk_order_value", 250.0)
	v.SetDefault("risk.buy_limit_percent", 0.05)
	v.SetDefault("risk.stop_loss_percent", 0.30)
	v.SetDefault("broker.mode", "paper")
	v.SetDefault("broker.initial_balance", 25000.0)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", true)
	v.SetDefault("store.path", filepath.Join(DefaultConfigDir(), "trader.db"))
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SIGNAL_TRADER_MAX_ORDER_VALUE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Risk.MaxOrderValue = f
		}
	}
	if v := os.Getenv("SIGNAL_TRADER_HIGH_RISK_ORDER_VALUE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Risk.HighRiskOrderValue = f
		}
	}
	if v := os.Getenv("SIGNAL_TRADER_BROKER_MODE"); v != "" {
		cfg.Broker.Mode = v
	}
	if v := os.Getenv("SIGNAL_TRADER_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate validates the configuration. Settings must be valid before
// they reach the sizing engine, which assumes positive, sane values.
func (c *Config) Validate() error {
	if c.Risk.MaxOrderValue <= 0 {
		return fmt.Errorf("risk.max_order_value must be positive, got %v", c.Risk.MaxOrderValue)
	}
	if c.Risk.HighRiskOrderValue <= 0 {
		return fmt.Errorf("risk.high_risk_order_value must be positive, got %v", c.Risk.HighRiskOrderValue)
	}
	if c.Risk.HighRiskOrderValue > c.Risk.MaxOrderValue {
		return fmt.Errorf("risk.high_risk_order_value (%v) must not exceed risk.max_order_value (%v)",
			c.Risk.HighRiskOrderValue, c.Risk.MaxOrderValue)
	}
	if c.Risk.BuyLimitPercent <= 0 || c.Risk.BuyLimitPercent >= 1 {
		return fmt.Errorf("risk.buy_limit_percent must be in (0, 1), got %v", c.Risk.BuyLimitPercent)
	}
	if c.Risk.StopLossPercent < 0 || c.Risk.StopLossPercent >= 1 {
		return fmt.Errorf("risk.stop_loss_percent must be in [0, 1), got %v", c.Risk.StopLossPercent)
	}
	if c.Broker.Mode != "" && c.Broker.Mode != "paper" {
		return fmt.Errorf("broker.mode must be 'paper', got %q", c.Broker.Mode)
	}
	return nil
}

// RiskSettings converts the risk section into the sizing engine's
// settings value.
func (c *Config) RiskSettings() models.RiskSettings {
	return models.RiskSettings{
		MaxOrderValue:      c.Risk.MaxOrderValue,
		HighRiskOrderValue: c.Risk.HighRiskOrderValue,
		BuyLimitPercent:    c.Risk.BuyLimitPercent,
		StopLossPercent:    c.Risk.StopLossPercent,
	}
}
