package config

import (
	"os"
	"strconv"
	"strings"
)

// LoadFromEnv overrides configuration from environment variables.
func LoadFromEnv(cfg *Config) {
	if level := os.Getenv("INKFORGE_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}

	if paths := os.Getenv("INKFORGE_SEARCH_PATHS"); paths != "" {
		cfg.IO.SearchPaths = strings.Split(paths, string(os.PathListSeparator))
	}

	if bundle := os.Getenv("INKFORGE_BUNDLE_PATH"); bundle != "" {
		cfg.IO.BundlePath = bundle
	}

	if dir := os.Getenv("INKFORGE_FORMAT_CACHE_DIR"); dir != "" {
		cfg.IO.FormatCacheDir = dir
	}

	if v := os.Getenv("INKFORGE_METRICS_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = enabled
		}
	}
}

// GetEnvOrDefault returns an environment variable or a default value.
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
