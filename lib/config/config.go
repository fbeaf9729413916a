// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production is for production deployments.
	Production Environment = "production"
)

// Config is the master configuration for the Parley client.
type Config struct {
	// Environment identifies the deployment type (development, staging, production).
	Environment Environment `yaml:"environment"`

	// Server configures the chat backend.
	Server ServerConfig `yaml:"server"`

	// Sync configures the message synchronization loop.
	Sync SyncConfig `yaml:"sync"`

	// SessionFile overrides the saved-session path
	// (default: ~/.config/parley/session.json).
	SessionFile string `yaml:"session_file,omitempty"`

	// EnvironmentOverrides contains per-environment overrides,
	// applied after the base config is loaded.
	Development *Overrides `yaml:"development,omitempty"`
	Staging     *Overrides `yaml:"staging,omitempty"`
	Production  *Overrides `yaml:"production,omitempty"`
}

// Overrides contains fields that can be overridden per environment.
type Overrides struct {
	Server *ServerConfig `yaml:"server,omitempty"`
	Sync   *SyncConfig   `yaml:"sync,omitempty"`
}

// ServerConfig configures the chat backend connection.
type ServerConfig struct {
	// URL is the base URL of the backend (e.g., "http://localhost:8080").
	URL string `yaml:"url"`

	// RequestTimeout bounds each HTTP request. Default: 30s.
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// SyncConfig configures the message synchronization loop.
type SyncConfig struct {
	// PollInterval is the fixed re-fetch interval for open
	// conversations. Default: 3s.
	PollInterval time.Duration `yaml:"poll_interval"`
}

// Default returns the default configuration, pointing at a local
// development backend.
func Default() *Config {
	return &Config{
		Environment: Development,
		Server: ServerConfig{
			URL:            "http://localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Sync: SyncConfig{
			PollInterval: 3 * time.Second,
		},
	}
}

// Load loads configuration from the PARLEY_CONFIG environment variable.
// Returns Default() when PARLEY_CONFIG is not set — the client is
// usable against a local backend with zero setup.
func Load() (*Config, error) {
	configPath := os.Getenv("PARLEY_CONFIG")
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. The config
// file is the single source of truth; environment variables do not
// override individual values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	loaded := Default()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	loaded.applyOverrides()
	if err := loaded.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return loaded, nil
}

// applyOverrides merges the override section matching the configured
// environment into the base values.
func (c *Config) applyOverrides() {
	var overrides *Overrides
	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
	}
	if overrides == nil {
		return
	}

	if overrides.Server != nil {
		if overrides.Server.URL != "" {
			c.Server.URL = overrides.Server.URL
		}
		if overrides.Server.RequestTimeout != 0 {
			c.Server.RequestTimeout = overrides.Server.RequestTimeout
		}
	}
	if overrides.Sync != nil {
		if overrides.Sync.PollInterval != 0 {
			c.Sync.PollInterval = overrides.Sync.PollInterval
		}
	}
}

func (c *Config) validate() error {
	switch c.Environment {
	case Development, Staging, Production:
	default:
		return fmt.Errorf("unknown environment %q", c.Environment)
	}
	if c.Server.URL == "" {
		return fmt.Errorf("server.url is required")
	}
	if c.Sync.PollInterval <= 0 {
		return fmt.Errorf("sync.poll_interval must be positive, got %s", c.Sync.PollInterval)
	}
	return nil
}
