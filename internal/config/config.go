// Package config loads client configuration from an optional YAML file, a
// .env file and MINICHESS_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables.
const (
	EnvArbiterURL     = "MINICHESS_ARBITER_URL"
	EnvRequestTimeout = "MINICHESS_REQUEST_TIMEOUT"
	EnvLogLevel       = "MINICHESS_LOG_LEVEL"
	EnvDataDir        = "MINICHESS_DATA_DIR"
	EnvSound          = "MINICHESS_SOUND"
)

// Defaults.
const (
	DefaultArbiterURL     = "http://localhost:8080"
	DefaultRequestTimeout = 10 * time.Second
	DefaultLogLevel       = "info"
)

// Config is the client configuration.
type Config struct {
	ArbiterURL     string
	RequestTimeout time.Duration
	LogLevel       string
	DataDir        string // empty means the platform data directory
	Sound          bool
}

// fileConfig is the YAML layout. Unset fields keep their defaults.
type fileConfig struct {
	ArbiterURL     string `yaml:"arbiter_url"`
	RequestTimeout string `yaml:"request_timeout"`
	LogLevel       string `yaml:"log_level"`
	DataDir        string `yaml:"data_dir"`
	Sound          *bool  `yaml:"sound"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ArbiterURL:     DefaultArbiterURL,
		RequestTimeout: DefaultRequestTimeout,
		LogLevel:       DefaultLogLevel,
		Sound:          true,
	}
}

// Load builds the configuration. path names an optional YAML file; an empty
// path skips it. A missing .env file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return cfg, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	if fc.ArbiterURL != "" {
		c.ArbiterURL = fc.ArbiterURL
	}
	if fc.RequestTimeout != "" {
		d, err := time.ParseDuration(fc.RequestTimeout)
		if err != nil {
			return fmt.Errorf("invalid request_timeout: %w", err)
		}
		c.RequestTimeout = d
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	if fc.DataDir != "" {
		c.DataDir = fc.DataDir
	}
	if fc.Sound != nil {
		c.Sound = *fc.Sound
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.ArbiterURL = getEnv(EnvArbiterURL, c.ArbiterURL)
	c.LogLevel = getEnv(EnvLogLevel, c.LogLevel)
	c.DataDir = getEnv(EnvDataDir, c.DataDir)

	if v := os.Getenv(EnvRequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvRequestTimeout, err)
		}
		c.RequestTimeout = d
	}
	if v := os.Getenv(EnvSound); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvSound, err)
		}
		c.Sound = b
	}
	return nil
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.ArbiterURL == "" {
		return errors.New("arbiter URL is required")
	}
	u, err := url.Parse(c.ArbiterURL)
	if err != nil {
		return fmt.Errorf("invalid arbiter URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid arbiter URL %q: scheme must be http or https", c.ArbiterURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid arbiter URL %q: missing host", c.ArbiterURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
