package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides (CWRELEASE_*)
const EnvPrefix = "CWRELEASE"

// LoadFrom loads configuration into the given viper instance
func LoadFrom(v *viper.Viper) (*Config, error) {
	// Set defaults
	setDefaults(v)

	// Config file, unless one was set explicitly
	if v.ConfigFileUsed() == "" {
		path, err := findConfigFile()
		if err != nil {
			return nil, err
		}
		if path != "" {
			v.SetConfigFile(path)
		}
	}

	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	// Environment variables (CWRELEASE_*)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate and apply defaults for invalid values
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	// Release defaults
	v.SetDefault("release.root", DefaultRoot)
	v.SetDefault("release.manifest", DefaultManifest)
	v.SetDefault("release.remote", DefaultRemote)
	v.SetDefault("release.tag_prefix", DefaultTagPrefix)
	v.SetDefault("release.confirm", false)
	v.SetDefault("release.dry_run", false)
	v.SetDefault("release.no_tag", false)

	// Registry defaults
	v.SetDefault("registry.command", DefaultPublishCommand)
	v.SetDefault("registry.prerequisites", DefaultPrerequisites)

	// Git defaults
	v.SetDefault("git.username", "")
	v.SetDefault("git.token", "")

	// Logging defaults
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}

// findConfigFile returns the first existing config file: ./cw-release.yaml,
// then ~/.cw-release/config.yaml. It returns "" when neither exists.
func findConfigFile() (string, error) {
	for _, path := range []string{LocalConfigFile, ConfigFilePath()} {
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat config file: %w", err)
		}
	}
	return "", nil
}
