package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inkforge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logging:
  level: debug
io:
  search_paths:
    - /usr/share/texmf
    - ./texmf-local
  bundle_path: /var/cache/inkforge/bundle.zip
  format_cache_dir: /var/cache/inkforge/formats
  use_genuine_stdout: true
metrics:
  enabled: true
`), 0640))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, []string{"/usr/share/texmf", "./texmf-local"}, cfg.IO.SearchPaths)
	assert.Equal(t, "/var/cache/inkforge/bundle.zip", cfg.IO.BundlePath)
	assert.Equal(t, "/var/cache/inkforge/formats", cfg.IO.FormatCacheDir)
	assert.True(t, cfg.IO.UseGenuineStdout)
	assert.False(t, cfg.IO.WritesToFilesystem)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_BadYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("io: ["), 0640))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("INKFORGE_LOG_LEVEL", "warn")
	t.Setenv("INKFORGE_BUNDLE_PATH", "/bundles/tl2026.zip")
	t.Setenv("INKFORGE_METRICS_ENABLED", "true")

	cfg := Default()
	LoadFromEnv(cfg)

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "/bundles/tl2026.zip", cfg.IO.BundlePath)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.IO.SearchPaths)
}
