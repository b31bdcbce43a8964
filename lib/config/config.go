// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvConfig names the environment variable read by [Load].
const EnvConfig = "OUTPUTS_CONFIG"

// Config is the complete configuration.
type Config struct {
	// Module is the default module name. A session description may
	// override it.
	Module string `yaml:"module"`

	// Paths configures directory locations.
	Paths PathsConfig `yaml:"paths"`

	// Artifacts configures generated artifact naming.
	Artifacts ArtifactsConfig `yaml:"artifacts"`

	// Manifest configures the package-part manifest.
	Manifest ManifestConfig `yaml:"manifest"`

	// Log configures structured logging.
	Log LogConfig `yaml:"log"`
}

// PathsConfig configures directory locations.
type PathsConfig struct {
	// Root is the base directory that relative paths are resolved
	// against. Available as ${OUTPUTS_ROOT} in the other paths.
	Root string `yaml:"root"`

	// Output is where artifacts are written. Relative paths are
	// resolved against Root. Default: out
	Output string `yaml:"output"`
}

// ArtifactsConfig configures generated artifact naming.
type ArtifactsConfig struct {
	// Extension is appended to internal names to form artifact paths.
	// Default: .bin
	Extension string `yaml:"extension"`
}

// ManifestConfig configures the package-part manifest.
type ManifestConfig struct {
	// Directory holds the manifest, relative to the output directory
	// and slash-separated. Default: empty (the output root).
	Directory string `yaml:"directory"`

	// Compression is one of none, lz4, zstd. Default: none
	Compression string `yaml:"compression"`

	// Compiled is the manifest of the previous compilation, merged
	// into the new one for incremental builds. Empty disables merging.
	Compiled string `yaml:"compiled"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error. Default: info
	Level string `yaml:"level"`
}

// Default returns the configuration used as a base before the file is
// applied.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Root:   ".",
			Output: "out",
		},
		Artifacts: ArtifactsConfig{
			Extension: ".bin",
		},
		Manifest: ManifestConfig{
			Compression: "none",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads the file named by OUTPUTS_CONFIG. It fails when the
// variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvConfig)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your outputs.yaml config file, or use --config flag", EnvConfig)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file, on top of
// [Default], and expands path variables.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Paths.Root = expandVars(c.Paths.Root, vars)
	vars["OUTPUTS_ROOT"] = c.Paths.Root

	c.Paths.Output = expandVars(c.Paths.Output, vars)
	if c.Paths.Output != "" && !filepath.IsAbs(c.Paths.Output) {
		c.Paths.Output = filepath.Join(c.Paths.Root, c.Paths.Output)
	}
	c.Manifest.Compiled = expandVars(c.Manifest.Compiled, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Provided vars first, then the environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Paths.Output == "" {
		errs = append(errs, errors.New("paths.output is required"))
	}
	if !strings.HasPrefix(c.Artifacts.Extension, ".") {
		errs = append(errs, fmt.Errorf("artifacts.extension %q must start with a dot", c.Artifacts.Extension))
	}
	if strings.HasPrefix(c.Manifest.Directory, "/") {
		errs = append(errs, fmt.Errorf("manifest.directory %q must be relative", c.Manifest.Directory))
	}
	switch c.Manifest.Compression {
	case "", "none", "lz4", "zstd":
	default:
		errs = append(errs, fmt.Errorf("manifest.compression %q must be none, lz4, or zstd", c.Manifest.Compression))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// SlogLevel returns the configured log level. Invalid levels, which
// Validate reports, fall back to info.
func (c *Config) SlogLevel() slog.Level {
	level, err := ParseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// ParseLevel parses a log level name.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log.level %q must be debug, info, warn, or error", name)
	}
}
