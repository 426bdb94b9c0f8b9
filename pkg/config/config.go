package config

import (
	"fmt"
	"os"
	"time"

	"StockDash/pkg/util"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Host            string        `yaml:"host" default:"0.0.0.0"`
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"15s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"60s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		SlowRequest     time.Duration `yaml:"slow_request" default:"5s"`
		CORSOrigins     []string      `yaml:"cors_origins" default:"[\"*\"]"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Log struct {
		Level      string `yaml:"level" default:"info"`
		Format     string `yaml:"format" default:"console"`
		Output     string `yaml:"output" default:"stdout"`
		MaxSizeMB  int    `yaml:"max_size_mb" default:"100"`
		MaxBackups int    `yaml:"max_backups" default:"3"`
		MaxAgeDays int    `yaml:"max_age_days" default:"7"`
		Compress   bool   `yaml:"compress" default:"true"`
	} `yaml:"log"`
	Provider struct {
		BaseURL    string        `yaml:"base_url" default:"https://query1.finance.yahoo.com"`
		UserAgent  string        `yaml:"user_agent" default:"Mozilla/5.0"`
		Timeout    time.Duration `yaml:"timeout" default:"20s"`
		RatePerSec float64       `yaml:"rate_per_sec" default:"5"`
		Burst      int           `yaml:"burst" default:"4"`
	} `yaml:"provider"`
	Dashboard struct {
		DefaultSymbol        string        `yaml:"default_symbol" default:"ADBE"`
		DisplayTimezone      string        `yaml:"display_timezone" default:"America/New_York"`
		IndicatorWindow      int           `yaml:"indicator_window" default:"20"`
		Watchlist            []string      `yaml:"watchlist" default:"[\"AAPL\",\"GOOGL\",\"AMZN\",\"MSFT\"]"`
		WatchlistConcurrency int           `yaml:"watchlist_concurrency" default:"4"`
		Timeout              time.Duration `yaml:"timeout" default:"45s"`
	} `yaml:"dashboard"`
}

// Default returns a configuration populated only from default tags.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}
	return &c, nil
}

// Load reads and parses a YAML configuration file on top of the defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	c, err := Default()
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	c.applyEnv()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("STOCKDASH_ENV"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("STOCKDASH_PORT"); v != "" {
		c.Server.Port = util.ParseIntDefault(v, c.Server.Port)
	}
	if v := os.Getenv("STOCKDASH_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("YAHOO_BASE_URL"); v != "" {
		c.Provider.BaseURL = v
	}
	if v := os.Getenv("DEFAULT_SYMBOL"); v != "" {
		c.Dashboard.DefaultSymbol = util.NormalizeSymbol(v)
	}
	if v := util.SplitCSV(os.Getenv("WATCHLIST")); len(v) > 0 {
		c.Dashboard.Watchlist = v
	}
	if v := os.Getenv("DISPLAY_TIMEZONE"); v != "" {
		c.Dashboard.DisplayTimezone = v
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if c.Provider.BaseURL == "" {
		return fmt.Errorf("provider.base_url is required")
	}
	if c.Provider.RatePerSec < 0 {
		return fmt.Errorf("provider.rate_per_sec cannot be negative")
	}
	if c.Dashboard.DefaultSymbol == "" {
		return fmt.Errorf("dashboard.default_symbol is required")
	}
	if c.Dashboard.IndicatorWindow < 1 {
		return fmt.Errorf("dashboard.indicator_window must be >= 1, got %d", c.Dashboard.IndicatorWindow)
	}
	if len(c.Dashboard.Watchlist) == 0 {
		return fmt.Errorf("dashboard.watchlist cannot be empty")
	}
	if _, err := time.LoadLocation(c.Dashboard.DisplayTimezone); err != nil {
		return fmt.Errorf("dashboard.display_timezone %q: %w", c.Dashboard.DisplayTimezone, err)
	}
	return nil
}
