package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Process-level defaults
const (
	DefaultAPIBaseURL      = "http://localhost:5000/api"
	DefaultPollIntervalSec = 60
)

// Config holds process-level configuration. Values come from an optional
// YAML file, then environment variables override, then validation runs.
type Config struct {
	APIBaseURL      string `yaml:"api_base_url" envconfig:"CRYPTO_API_URL"`
	PollIntervalSec int    `yaml:"poll_interval_sec" envconfig:"CRYPTO_POLL_INTERVAL_SEC"`
}

// Load builds the process configuration. A missing file at path is fine; a
// malformed one is not.
func Load(path string) (*Config, error) {
	cfg := &Config{
		APIBaseURL:      DefaultAPIBaseURL,
		PollIntervalSec: DefaultPollIntervalSec,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// PollInterval returns the poll interval as a duration
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSec) * time.Second
}

func (c *Config) validate() error {
	parsed, err := url.Parse(c.APIBaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid API base URL: %q", c.APIBaseURL)
	}
	if c.PollIntervalSec <= 0 {
		return fmt.Errorf("poll interval must be positive, got %d", c.PollIntervalSec)
	}
	return nil
}
