// Package config loads the storefront configuration: defaults, then an
// optional YAML file, then environment variables (which win). A .env file
// in the working directory is honored for local development.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings.
type Config struct {
	// APIBaseURL is the remote backend the storefront consumes.
	APIBaseURL string `env:"STOREFRONT_API_URL" yaml:"api_base_url"`
	// ListenAddr is the address the local HTTP facade binds to.
	ListenAddr string `env:"STOREFRONT_ADDR" yaml:"listen_addr"`
	// StatePath points at the local slot file holding cart and session
	// state. Empty keeps state in memory only.
	StatePath string `env:"STOREFRONT_STATE_PATH" yaml:"state_path"`
	// RedisAddr switches local state to a shared Redis instance when set.
	RedisAddr string `env:"STOREFRONT_REDIS_ADDR" yaml:"redis_addr"`
	// HTTPTimeout bounds every backend call.
	HTTPTimeout time.Duration `env:"STOREFRONT_HTTP_TIMEOUT" yaml:"http_timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIBaseURL:  "http://localhost:8081",
		ListenAddr:  ":8080",
		HTTPTimeout: 10 * time.Second,
	}
}

// Load resolves the configuration. The YAML file at path is optional; pass
// "" to skip it. STOREFRONT_CONFIG overrides the path.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if v := os.Getenv("STOREFRONT_CONFIG"); v != "" {
		path = v
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := envdecode.Decode(&cfg); err != nil && err != envdecode.ErrNoTargetFieldsAreSet {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api base url is required")
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive")
	}
	if c.StatePath != "" && c.RedisAddr != "" {
		return fmt.Errorf("state_path and redis_addr are mutually exclusive")
	}
	return nil
}
