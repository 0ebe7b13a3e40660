package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server         ServerConfig         `yaml:"server"`
	Database       DatabaseConfig       `yaml:"database"`
	Hermes         HermesConfig         `yaml:"hermes"`
	Flux           FluxConfig           `yaml:"flux"`
	Dose           DoseConfig           `yaml:"dose"`
	Shielding      ShieldingConfig      `yaml:"shielding"`
	Classification ClassificationConfig `yaml:"classification"`
	Assets         AssetsConfig         `yaml:"assets"`
	Logging        LoggingConfig        `yaml:"logging"`
}

type ServerConfig struct {
	Port              int `yaml:"port"`
	MetricsPort       int `yaml:"metrics_port"`
	RequestsPerMinute int `yaml:"requests_per_minute"`
}

// DatabaseConfig enables the Postgres assessment log when URL is set.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// HermesConfig enables event publishing when URL is set.
type HermesConfig struct {
	URL string `yaml:"url"`
}

type FluxConfig struct {
	Enabled   bool    `yaml:"enabled"`
	URL       string  `yaml:"url"`
	TimeoutMs int     `yaml:"timeout_ms"`
	Fallback  float64 `yaml:"fallback"`
}

// DoseConfig holds the illustrative rate constants.
type DoseConfig struct {
	// FluxToDailyDose converts flux to mSv/day in the mission calculator.
	FluxToDailyDose float64 `yaml:"flux_to_daily_dose"`
	// BaseDailyRateMSv is the unshielded daily rate for accumulated exposure.
	BaseDailyRateMSv float64 `yaml:"base_daily_rate_msv"`
}

type ShieldingConfig struct {
	Coefficients map[string]float64 `yaml:"coefficients"`
}

// ClassificationConfig overrides the built-in tables when tiers are given.
type ClassificationConfig struct {
	Acute      TableConfig `yaml:"acute"`
	Cumulative TableConfig `yaml:"cumulative"`
}

type TableConfig struct {
	ChartCap    float64      `yaml:"chart_cap"`
	ChartLabels []string     `yaml:"chart_labels"`
	Tiers       []TierConfig `yaml:"tiers"`
}

// TierConfig leaves UpperMSv unset for the final, unbounded tier.
type TierConfig struct {
	UpperMSv *float64 `yaml:"upper_msv"`
	Effect   string   `yaml:"effect"`
	Detail   string   `yaml:"detail"`
	Label    string   `yaml:"label"`
	Asset    string   `yaml:"asset"`
}

type AssetsConfig struct {
	// Dir contains images/; empty means the executable's directory.
	Dir string `yaml:"dir"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) FluxTimeout() time.Duration {
	return time.Duration(c.Flux.TimeoutMs) * time.Millisecond
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:              8700,
			MetricsPort:       8701,
			RequestsPerMinute: 120,
		},
		Flux: FluxConfig{
			Enabled:   true,
			URL:       "https://services.swpc.noaa.gov/json/goes/primary/differential-proton-flux-1-day.json",
			TimeoutMs: 5000,
			Fallback:  100,
		},
		Dose: DoseConfig{
			FluxToDailyDose:  0.00005,
			BaseDailyRateMSv: 0.00104,
		},
		Shielding: ShieldingConfig{
			Coefficients: map[string]float64{
				"aluminum":     0.36,
				"polyethylene": 0.69,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Flux.TimeoutMs <= 0 {
		return fmt.Errorf("flux.timeout_ms must be positive, got %d", c.Flux.TimeoutMs)
	}
	if c.Flux.Fallback < 0 {
		return fmt.Errorf("flux.fallback must not be negative, got %g", c.Flux.Fallback)
	}
	if c.Dose.FluxToDailyDose < 0 || c.Dose.BaseDailyRateMSv < 0 {
		return fmt.Errorf("dose rate constants must not be negative")
	}
	for m, mu := range c.Shielding.Coefficients {
		if mu <= 0 {
			return fmt.Errorf("shielding coefficient for %s must be positive, got %g", m, mu)
		}
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DOSEWATCH_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("DOSEWATCH_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("DOSEWATCH_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("DOSEWATCH_HERMES_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("DOSEWATCH_FLUX_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Flux.Enabled = b
		}
	}
	if v := os.Getenv("DOSEWATCH_FLUX_URL"); v != "" {
		cfg.Flux.URL = v
	}
	if v := os.Getenv("DOSEWATCH_FLUX_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Flux.TimeoutMs = n
		}
	}
	if v := os.Getenv("DOSEWATCH_ASSETS_DIR"); v != "" {
		cfg.Assets.Dir = v
	}
	if v := os.Getenv("DOSEWATCH_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("DOSEWATCH_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
