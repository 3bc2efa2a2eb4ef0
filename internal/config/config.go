package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Config is the application configuration. Values come from an optional
// YAML file with environment overrides on top.
type Config struct {
	Store  StoreConfig  `yaml:"store"`
	Logger LoggerConfig `yaml:"logger"`
	Stub   StubConfig   `yaml:"stub"`
}

// StoreConfig locates the remote ingredient store.
type StoreConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the per-request timeout for store calls.
func (s StoreConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// LoggerConfig selects the zap profile.
type LoggerConfig struct {
	Mode string `yaml:"mode"`
}

// StubConfig configures the development stub store server.
type StubConfig struct {
	Listen string `yaml:"listen"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Store:  StoreConfig{BaseURL: "http://localhost:8000", TimeoutSeconds: 10},
		Logger: LoggerConfig{Mode: "development"},
		Stub:   StubConfig{Listen: ":8000"},
	}
}

// Load reads the config file at path, falling back to defaults when the
// file does not exist, then applies environment overrides and validates.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// defaults apply
		case err != nil:
			return nil, errors.Wrapf(err, "read config %s", path)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrapf(err, "parse config %s", path)
			}
		}
	}

	if v := os.Getenv("SHELFLYFE_STORE_URL"); v != "" {
		cfg.Store.BaseURL = v
	}
	if v := os.Getenv("SHELFLYFE_STORE_TIMEOUT"); v != "" {
		cfg.Store.TimeoutSeconds = cast.ToInt(v)
	}
	if v := os.Getenv("SHELFLYFE_LOG_MODE"); v != "" {
		cfg.Logger.Mode = v
	}
	if v := os.Getenv("SHELFLYFE_STUB_LISTEN"); v != "" {
		cfg.Stub.Listen = v
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Store.BaseURL == "" {
		return errors.New("store.base_url must not be empty")
	}
	if c.Store.TimeoutSeconds <= 0 {
		return errors.New("store.timeout_seconds must be positive")
	}
	if c.Logger.Mode != "development" && c.Logger.Mode != "production" {
		return errors.Errorf("logger.mode %q is not development or production", c.Logger.Mode)
	}
	return nil
}
