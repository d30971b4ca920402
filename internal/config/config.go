// Package config loads and validates the bot configuration.
package config

import (
	"fmt"
	"strings"
)

// Config is the root configuration.
type Config struct {
	Slack   SlackConfig   `yaml:"slack"`
	Jenkins JenkinsConfig `yaml:"jenkins"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// SlackConfig configures the Slack session.
type SlackConfig struct {
	// Token is the xoxb- bot token.
	Token string `yaml:"token"`
}

// JenkinsConfig configures the Jenkins integration. The integration is only
// wired into the command tree when Enabled is true.
type JenkinsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	URL      string `yaml:"url"`
	Username string `yaml:"username"`
	APIToken string `yaml:"api_token"`

	// RefreshSchedule is a cron spec for reloading the job cache.
	RefreshSchedule string `yaml:"refresh_schedule"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig configures the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// ApplyDefaults fills in unset optional fields.
func (c *Config) ApplyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Jenkins.RefreshSchedule == "" {
		c.Jenkins.RefreshSchedule = "@every 10m"
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = ":9090"
	}
}

// Validate checks the configuration for startup-fatal problems.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Slack.Token) == "" {
		return fmt.Errorf("slack.token is required")
	}
	if c.Jenkins.Enabled {
		if strings.TrimSpace(c.Jenkins.URL) == "" {
			return fmt.Errorf("jenkins.url is required when jenkins is enabled")
		}
		if !strings.HasPrefix(c.Jenkins.URL, "http://") && !strings.HasPrefix(c.Jenkins.URL, "https://") {
			return fmt.Errorf("jenkins.url must be an http(s) URL")
		}
	}
	return nil
}
