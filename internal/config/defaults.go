package config

import (
	"os"
	"path/filepath"

	"github.com/quantmind-br/cw-release/internal/manifest"
)

// Default values
const (
	// Release defaults
	DefaultRoot      = "."
	DefaultManifest  = manifest.FileName
	DefaultRemote    = "origin"
	DefaultTagPrefix = "v"

	// Registry defaults
	DefaultPublishCommand = "cargo publish"

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// LocalConfigFile is the per-workspace config file, looked up in the
// current directory before the user config file
const LocalConfigFile = "cw-release.yaml"

// DefaultPrerequisites are the tools looked up before publishing
var DefaultPrerequisites = []string{"cargo"}

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cw-release"
	}
	return filepath.Join(home, ".cw-release")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Release: ReleaseConfig{
			Root:      DefaultRoot,
			Manifest:  DefaultManifest,
			Remote:    DefaultRemote,
			TagPrefix: DefaultTagPrefix,
		},
		Registry: RegistryConfig{
			Command:       DefaultPublishCommand,
			Prerequisites: DefaultPrerequisites,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
