package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "procflow.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "sequential", cfg.Engine.Strategy)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, `
engine:
  strategy: hybrid
  max_workers: 6
logging:
  level: debug
  format: console
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "hybrid", cfg.Engine.Strategy)
	assert.Equal(t, 6, cfg.Engine.MaxWorkers)
	assert.Equal(t, 32, cfg.Engine.WorkerCap, "unset keys keep defaults")
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "procflow", cfg.Logging.Fields["service"])
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "engine:\n  strategy: hybrid\n  max_workers: 6\n")
	t.Setenv("PROCFLOW_ENGINE_MAX_WORKERS", "3")
	t.Setenv("PROCFLOW_ENGINE_STRATEGY", "parallel")
	t.Setenv("PROCFLOW_LOGGING_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "parallel", cfg.Engine.Strategy)
	assert.Equal(t, 3, cfg.Engine.MaxWorkers)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "negative workers", content: "engine:\n  max_workers: -1\n", wantErr: "max_workers"},
		{name: "zero cap", content: "engine:\n  worker_cap: 0\n", wantErr: "worker_cap"},
		{name: "negative headroom", content: "engine:\n  worker_headroom: -2\n", wantErr: "worker_headroom"},
		{name: "bad log format", content: "logging:\n  format: xml\n", wantErr: "logging"},
		{name: "empty strategy", content: "engine:\n  strategy: \"\"\n", wantErr: "strategy"},
		{name: "broken yaml", content: "engine: [\n", wantErr: "failed to load config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_FileTooLarge(t *testing.T) {
	path := writeFile(t, "# "+strings.Repeat("x", maxConfigFileSize+1))
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestLoad_Directory(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory")
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "engine.max_workers", envKey("PROCFLOW_ENGINE_MAX_WORKERS"))
	assert.Equal(t, "logging.level", envKey("PROCFLOW_LOGGING_LEVEL"))
	assert.Equal(t, "debug", envKey("PROCFLOW_DEBUG"))
}
