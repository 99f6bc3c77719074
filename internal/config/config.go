// Package config loads the application configuration from environment
// variables (prefix CFEM) merged with an optional YAML file, and
// validates the result.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is the complete application configuration. Precedence is
// environment over file over built-in defaults.
type Config struct {
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Upload  UploadConfig  `yaml:"upload" envconfig:"UPLOAD"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`

	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration. Limiting is on
// unless explicitly disabled.
type RateLimitConfig struct {
	Disabled bool    `yaml:"disabled" envconfig:"DISABLED"`
	RPS      float64 `yaml:"rps" envconfig:"RPS" validate:"min=0"`
	Burst    int     `yaml:"burst" envconfig:"BURST" validate:"min=0"`
}

// UploadConfig bounds dataset uploads.
type UploadConfig struct {
	// MaxBytes caps the accepted upload size. The whole dataset lives in
	// memory, so this also bounds the working set.
	MaxBytes int64 `yaml:"max_bytes" envconfig:"MAX_BYTES" validate:"min=1"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format      string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// Load reads configuration from the optional YAML file named by
// CFEM_CONFIG_FILE (default config.yaml), overlays environment
// variables, fills remaining defaults and validates the result.
func Load() (*Config, error) {
	configFile := os.Getenv("CFEM_CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}

	var cfg Config
	if data, err := os.ReadFile(configFile); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", configFile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file %s: %w", configFile, err)
	}

	// Only variables actually set in the environment overwrite file
	// values; the struct carries no envconfig defaults.
	if err := envconfig.Process("CFEM", &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 60 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 30 * time.Second
	}
	if c.Server.RateLimit.RPS == 0 {
		c.Server.RateLimit.RPS = 50
	}
	if c.Server.RateLimit.Burst == 0 {
		c.Server.RateLimit.Burst = 25
	}
	if c.Upload.MaxBytes == 0 {
		c.Upload.MaxBytes = 50 << 20
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
}

// Validate checks the configuration invariants.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}
