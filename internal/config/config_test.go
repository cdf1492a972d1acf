package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docflow/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Server.Port)
	assert.Equal(t, 8, cfg.Pipeline.Concurrency)
	assert.Equal(t, 2*time.Second, cfg.Pipeline.BroadcastInterval)
	assert.Equal(t, 10*time.Minute, cfg.Pipeline.CallTimeout)
	assert.Equal(t, "uploads/", cfg.S3.UploadPrefix)
	assert.Equal(t, "1.1", cfg.Remote.APIVersion)
	assert.Equal(t, "cache/settings.json", cfg.Settings.File)
	assert.Contains(t, cfg.CORS.AllowedOrigins, "http://localhost:3000")
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DOCFLOW_PIPELINE_CONCURRENCY", "0")
	t.Setenv("DOCFLOW_REMOTE_BASE_URL", "https://du.example.com/api/framework/projects/")
	t.Setenv("DOCFLOW_CORS_ALLOWED_ORIGINS", " https://a.example.com , ,https://b.example.com")
	t.Setenv("DOCFLOW_PROMPTS_CACHE_TTL", "90s")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Pipeline.Concurrency)
	assert.Equal(t, "https://du.example.com/api/framework/projects", cfg.Remote.BaseURL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 90*time.Second, cfg.Prompts.CacheTTL)
}

func TestLoad_PortFallback(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)

	t.Setenv("DOCFLOW_SERVER_PORT", ":7000")
	cfg, err = config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Port)
}

func TestLoad_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("DOCFLOW_S3_BUCKET=from-dotenv\nDOCFLOW_LOG_LEVEL=warn\n"), 0o600))
	t.Setenv("DOCFLOW_LOG_LEVEL", "error")
	t.Cleanup(func() { os.Unsetenv("DOCFLOW_S3_BUCKET") })

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv", cfg.S3.Bucket)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"negative concurrency", map[string]string{"DOCFLOW_PIPELINE_CONCURRENCY": "-1"}},
		{"zero broadcast interval", map[string]string{"DOCFLOW_PIPELINE_BROADCAST_INTERVAL": "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
