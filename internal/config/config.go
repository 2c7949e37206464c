// Package config resolves server settings from an optional YAML file
// and the standard AWS environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigPath points at an optional YAML config file.
	EnvConfigPath = "LOGSCOUT_CONFIG"

	DefaultRegion  = "us-east-1"
	DefaultMaxWait = 30 * time.Second
)

// Config holds everything the server needs to start.
type Config struct {
	// Region is the default AWS region for tools that omit one.
	Region string `yaml:"region"`
	// Profile selects a shared-config profile for credentials.
	Profile string `yaml:"profile"`
	// AccessKeyID/SecretAccessKey/SessionToken configure static
	// credentials. Ignored when Profile is set.
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	SessionToken    string `yaml:"session_token"`
	// MaxWaitSeconds bounds query polling when the tool call does not
	// pass maxTimeout.
	MaxWaitSeconds int `yaml:"max_wait_seconds"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Load reads the optional config file named by LOGSCOUT_CONFIG, then
// lets AWS_REGION and AWS_PROFILE override it. Missing file and unset
// env both fall back to defaults.
func Load() (Config, error) {
	cfg := Config{
		Region:   DefaultRegion,
		LogLevel: "info",
	}

	if path := os.Getenv(EnvConfigPath); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		if cfg.Region == "" {
			cfg.Region = DefaultRegion
		}
	}

	if v := os.Getenv("AWS_REGION"); v != "" {
		cfg.Region = v
	}
	if v := os.Getenv("AWS_PROFILE"); v != "" {
		cfg.Profile = v
	}

	return cfg, nil
}

// MaxWait returns the polling budget as a duration.
func (c Config) MaxWait() time.Duration {
	if c.MaxWaitSeconds <= 0 {
		return DefaultMaxWait
	}
	return time.Duration(c.MaxWaitSeconds) * time.Second
}
