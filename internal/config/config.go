package config

import (
	"strings"

	"github.com/quantmind-br/cw-release/internal/domain"
)

// Config represents the application configuration
type Config struct {
	Release  ReleaseConfig  `mapstructure:"release" yaml:"release"`
	Registry RegistryConfig `mapstructure:"registry" yaml:"registry"`
	Git      GitConfig      `mapstructure:"git" yaml:"git"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// ReleaseConfig contains release flow settings
type ReleaseConfig struct {
	Root      string         `mapstructure:"root" yaml:"root"`
	Manifest  string         `mapstructure:"manifest" yaml:"manifest"`
	Remote    string         `mapstructure:"remote" yaml:"remote"`
	TagPrefix string         `mapstructure:"tag_prefix" yaml:"tag_prefix"`
	Confirm   bool           `mapstructure:"confirm" yaml:"confirm"`
	DryRun    bool           `mapstructure:"dry_run" yaml:"dry_run"`
	NoTag     bool           `mapstructure:"no_tag" yaml:"no_tag"`
	Groups    []domain.Group `mapstructure:"groups" yaml:"groups"`
}

// RegistryConfig contains publish command settings
type RegistryConfig struct {
	Command       string   `mapstructure:"command" yaml:"command"`
	Prerequisites []string `mapstructure:"prerequisites" yaml:"prerequisites"`
}

// GitConfig contains credentials for pushing tags over HTTPS
type GitConfig struct {
	Username string `mapstructure:"username" yaml:"username"`
	Token    string `mapstructure:"token" yaml:"token"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Plan builds the release plan from the configured groups, falling
// back to the default groups when none are configured
func (c *Config) Plan() domain.Plan {
	if len(c.Release.Groups) == 0 {
		return domain.DefaultPlan()
	}
	return domain.NewPlan(c.Release.Groups...)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Release.Root) == "" {
		c.Release.Root = DefaultRoot
	}
	if strings.TrimSpace(c.Release.Manifest) == "" {
		c.Release.Manifest = DefaultManifest
	}
	if strings.TrimSpace(c.Release.Remote) == "" {
		return domain.NewValidationError("release.remote", "cannot be empty")
	}
	if strings.TrimSpace(c.Release.TagPrefix) == "" {
		return domain.NewValidationError("release.tag_prefix", "cannot be empty")
	}
	if strings.TrimSpace(c.Registry.Command) == "" {
		return domain.NewValidationError("registry.command", "cannot be empty")
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
	return c.Plan().Validate()
}
