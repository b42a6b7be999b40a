package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full configuration for one engine invocation's I/O setup.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	IO      IOConfig      `yaml:"io"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type LoggingConfig struct {
	Level string `yaml:"level" default:"info"`
}

type IOConfig struct {
	// SearchPaths are directories consulted for inputs, in order,
	// before the bundle.
	SearchPaths []string `yaml:"search_paths"`

	// BundlePath points at the support-file bundle: a .zip archive or
	// an unpacked directory.
	BundlePath string `yaml:"bundle_path"`

	// FormatCacheDir holds precompiled format files. Empty disables
	// the format cache.
	FormatCacheDir string `yaml:"format_cache_dir"`

	// UseGenuineStdout routes the engine's stdout sink to the real
	// process stdout instead of the in-memory buffer.
	UseGenuineStdout bool `yaml:"use_genuine_stdout"`

	// WritesToFilesystem lets the first search path accept output
	// opens; otherwise outputs land in memory.
	WritesToFilesystem bool `yaml:"writes_to_filesystem"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load reads a yaml config file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
	}
}
