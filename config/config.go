// Package config provides configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "reacthub.yaml"

// Config is the root configuration structure.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Toolchain ToolchainConfig `yaml:"toolchain"`
	Defaults  DefaultsConfig  `yaml:"defaults"`
	Templates TemplatesConfig `yaml:"templates"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json", "console" or "auto"
}

// ToolchainConfig names the external binaries the generator drives.
type ToolchainConfig struct {
	NPM         string `yaml:"npm"`
	NPX         string `yaml:"npx"`
	Git         string `yaml:"git"`
	SkipInstall bool   `yaml:"skip_install"` // skip npm install of dependency sets
}

// DefaultsConfig supplies values a requirement document leaves empty.
type DefaultsConfig struct {
	APIEndpoint    string `yaml:"api_endpoint"`
	PrimaryColor   string `yaml:"primary_color"`   // css color, used as is
	SecondaryColor string `yaml:"secondary_color"` // css color, used as is
}

// TemplatesConfig configures template overrides.
type TemplatesConfig struct {
	Dir string `yaml:"dir"` // templates here replace built-ins by name
}

// MetricsConfig configures the metrics textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"` // empty disables export
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return finish(&cfg)
}

// LoadFromEnv creates configuration entirely from environment variables.
//
// Environment variables:
//
//	REACTHUB_LOG_LEVEL         - Log level: debug, info, warn, error (default: info)
//	REACTHUB_LOG_FORMAT        - Log format: json, console or auto (default: auto)
//	REACTHUB_NPM               - npm binary (default: npm)
//	REACTHUB_NPX               - npx binary (default: npx)
//	REACTHUB_GIT               - git binary (default: git)
//	REACTHUB_SKIP_INSTALL      - Skip dependency installs (default: false)
//	REACTHUB_API_ENDPOINT      - Fallback GraphQL endpoint
//	REACTHUB_PRIMARY_COLOR     - Fallback primary theme color
//	REACTHUB_SECONDARY_COLOR   - Fallback secondary theme color
//	REACTHUB_TEMPLATES_DIR     - Template override directory
//	REACTHUB_METRICS_TEXTFILE  - Metrics textfile path
func LoadFromEnv() (*Config, error) {
	return finish(&Config{})
}

// LoadWithFallback loads path when it is set, else DefaultFile when it
// exists, else the environment alone.
func LoadWithFallback(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		return Load(DefaultFile)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("stat config: %w", err)
	}
	return LoadFromEnv()
}

func finish(cfg *Config) (*Config, error) {
	applyEnvOverrides(cfg)
	setDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies REACTHUB_* environment variables to the config.
// Environment variables always override file-based configuration.
func applyEnvOverrides(cfg *Config) {
	str := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	str("REACTHUB_LOG_LEVEL", &cfg.Logging.Level)
	str("REACTHUB_LOG_FORMAT", &cfg.Logging.Format)

	str("REACTHUB_NPM", &cfg.Toolchain.NPM)
	str("REACTHUB_NPX", &cfg.Toolchain.NPX)
	str("REACTHUB_GIT", &cfg.Toolchain.Git)
	if v := os.Getenv("REACTHUB_SKIP_INSTALL"); v != "" {
		cfg.Toolchain.SkipInstall = parseBool(v)
	}

	str("REACTHUB_API_ENDPOINT", &cfg.Defaults.APIEndpoint)
	str("REACTHUB_PRIMARY_COLOR", &cfg.Defaults.PrimaryColor)
	str("REACTHUB_SECONDARY_COLOR", &cfg.Defaults.SecondaryColor)

	str("REACTHUB_TEMPLATES_DIR", &cfg.Templates.Dir)
	str("REACTHUB_METRICS_TEXTFILE", &cfg.Metrics.Textfile)
}

// parseBool parses a boolean from common string values.
func parseBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "1" || v == "yes" || v == "on"
}

func setDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "auto"
	}

	if cfg.Toolchain.NPM == "" {
		cfg.Toolchain.NPM = "npm"
	}
	if cfg.Toolchain.NPX == "" {
		cfg.Toolchain.NPX = "npx"
	}
	if cfg.Toolchain.Git == "" {
		cfg.Toolchain.Git = "git"
	}
}

func validate(cfg *Config) error {
	var errs []string

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		errs = append(errs, fmt.Sprintf("logging.level must be debug, info, warn or error, got %q", cfg.Logging.Level))
	}

	validFormats := map[string]bool{"json": true, "console": true, "auto": true}
	if !validFormats[cfg.Logging.Format] {
		errs = append(errs, fmt.Sprintf("logging.format must be json, console or auto, got %q", cfg.Logging.Format))
	}

	if ep := cfg.Defaults.APIEndpoint; ep != "" && !strings.HasPrefix(ep, "http://") && !strings.HasPrefix(ep, "https://") {
		errs = append(errs, fmt.Sprintf("defaults.api_endpoint must be an http(s) URL, got %q", ep))
	}

	if dir := cfg.Templates.Dir; dir != "" {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			errs = append(errs, fmt.Sprintf("templates.dir %q is not a directory", dir))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}
