// Package config loads and validates the application configuration from a
// YAML file with environment variable overrides. All forecasting parameters
// (target year, smoothing factor, ensemble weights) live here so the engine
// never reads ambient global state.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// DefaultPath is the config file location tried when none is given on the
// command line. A missing file at this path is not an error: the defaults
// fully describe a working setup.
const DefaultPath = "configs/config.yaml"

// Config represents the complete application configuration
type Config struct {
	Project   ProjectConfig   `mapstructure:"project"`
	Paths     PathsConfig     `mapstructure:"paths"`
	Forecast  ForecastConfig  `mapstructure:"forecast"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Notify    NotifyConfig    `mapstructure:"notify"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ProjectConfig holds project metadata and the projection horizon
type ProjectConfig struct {
	Name       string `mapstructure:"name"`
	Version    string `mapstructure:"version"`
	TargetYear int    `mapstructure:"target_year"`
}

// PathsConfig holds the data and output directory roots. Raw and processed
// data live under DataDir; figures and reports under OutputDir.
type PathsConfig struct {
	DataDir   string `mapstructure:"data_dir"`
	OutputDir string `mapstructure:"output_dir"`
}

// Raw returns the directory holding the persisted historical CSVs.
func (p PathsConfig) Raw() string { return filepath.Join(p.DataDir, "raw") }

// Processed returns the directory holding computed projection tables.
func (p PathsConfig) Processed() string { return filepath.Join(p.DataDir, "processed") }

// Figures returns the directory holding charts and dashboards.
func (p PathsConfig) Figures() string { return filepath.Join(p.OutputDir, "figures") }

// Reports returns the directory holding text reports.
func (p PathsConfig) Reports() string { return filepath.Join(p.OutputDir, "reports") }

// ForecastConfig holds the ensemble projection parameters
type ForecastConfig struct {
	Alpha            float64       `mapstructure:"alpha"`
	SmoothingPeriods int           `mapstructure:"smoothing_periods"`
	PolynomialDegree int           `mapstructure:"polynomial_degree"`
	Weights          WeightsConfig `mapstructure:"weights"`
}

// WeightsConfig holds the fixed ensemble weight vector. The weights must sum
// to 1; polynomial and CAGR are weighted higher by default because they best
// track compounding growth.
type WeightsConfig struct {
	Linear               float64 `mapstructure:"linear"`
	Polynomial           float64 `mapstructure:"polynomial"`
	ExponentialSmoothing float64 `mapstructure:"exponential_smoothing"`
	CAGR                 float64 `mapstructure:"cagr"`
}

// Sum returns the total of the four weights.
func (w WeightsConfig) Sum() float64 {
	return w.Linear + w.Polynomial + w.ExponentialSmoothing + w.CAGR
}

// DashboardConfig holds dashboard rendering dimensions (pixels)
type DashboardConfig struct {
	ComprehensiveHeight int `mapstructure:"comprehensive_height"`
	ExecutiveHeight     int `mapstructure:"executive_height"`
}

// NotifyConfig holds optional Telegram delivery of the executive summary
type NotifyConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	BotToken       string        `mapstructure:"bot_token"`
	ChatID         string        `mapstructure:"chat_id"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryDelayBase time.Duration `mapstructure:"retry_delay_base"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables. When path is
// DefaultPath and no file exists there, the built-in defaults are used.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	setDefaults(v)

	v.SetEnvPrefix("ROBOSCOPE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if !(errors.Is(err, fs.ErrNotExist) && path == DefaultPath) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	// Project defaults
	v.SetDefault("project.name", "Robotics Industry Projections")
	v.SetDefault("project.version", "1.0.0")
	v.SetDefault("project.target_year", 2026)

	// Path defaults
	v.SetDefault("paths.data_dir", "./data")
	v.SetDefault("paths.output_dir", "./outputs")

	// Forecast defaults
	v.SetDefault("forecast.alpha", 0.3)
	v.SetDefault("forecast.smoothing_periods", 2)
	v.SetDefault("forecast.polynomial_degree", 2)
	v.SetDefault("forecast.weights.linear", 0.2)
	v.SetDefault("forecast.weights.polynomial", 0.3)
	v.SetDefault("forecast.weights.exponential_smoothing", 0.2)
	v.SetDefault("forecast.weights.cagr", 0.3)

	// Dashboard defaults
	v.SetDefault("dashboard.comprehensive_height", 1600)
	v.SetDefault("dashboard.executive_height", 900)

	// Notify defaults
	v.SetDefault("notify.enabled", false)
	v.SetDefault("notify.max_retries", 3)
	v.SetDefault("notify.retry_delay_base", "1s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	// Validate Project config
	if c.Project.TargetYear < 2025 {
		return fmt.Errorf("project.target_year must be after the historical range (got %d)", c.Project.TargetYear)
	}

	// Validate Paths config
	if c.Paths.DataDir == "" {
		return fmt.Errorf("paths.data_dir is required")
	}
	if c.Paths.OutputDir == "" {
		return fmt.Errorf("paths.output_dir is required")
	}

	// Validate Forecast config
	if c.Forecast.Alpha <= 0.0 || c.Forecast.Alpha > 1.0 {
		return fmt.Errorf("forecast.alpha must be in (0, 1]")
	}
	if c.Forecast.SmoothingPeriods < 1 {
		return fmt.Errorf("forecast.smoothing_periods must be at least 1")
	}
	if c.Forecast.PolynomialDegree < 1 || c.Forecast.PolynomialDegree > 3 {
		return fmt.Errorf("forecast.polynomial_degree must be between 1 and 3")
	}
	w := c.Forecast.Weights
	for name, value := range map[string]float64{
		"linear":                w.Linear,
		"polynomial":            w.Polynomial,
		"exponential_smoothing": w.ExponentialSmoothing,
		"cagr":                  w.CAGR,
	} {
		if value < 0 {
			return fmt.Errorf("forecast.weights.%s must not be negative", name)
		}
	}
	if math.Abs(w.Sum()-1.0) > 1e-9 {
		return fmt.Errorf("forecast.weights must sum to 1.0 (got %g)", w.Sum())
	}

	// Validate Dashboard config
	if c.Dashboard.ComprehensiveHeight < 400 {
		return fmt.Errorf("dashboard.comprehensive_height must be at least 400")
	}
	if c.Dashboard.ExecutiveHeight < 400 {
		return fmt.Errorf("dashboard.executive_height must be at least 400")
	}

	// Validate Notify config
	if c.Notify.Enabled {
		if c.Notify.BotToken == "" {
			return fmt.Errorf("notify.bot_token is required when notify is enabled")
		}
		if c.Notify.ChatID == "" {
			return fmt.Errorf("notify.chat_id is required when notify is enabled")
		}
	}

	// Validate Logging config
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}
