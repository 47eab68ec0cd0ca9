// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func clearBindingEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"HOST", "PORT", "REDIS_ADDRESS", "SERVER_PORT", "STORE_BACKEND"} {
		t.Setenv(key, "")
	}
}

func TestLoadFromFile_Defaults(t *testing.T) {
	clearBindingEnv(t)
	cfg, err := LoadFromFile(writeConfig(t, "app:\n  environment: test\n"))
	require.NoError(t, err)

	assert.Equal(t, "Nubint Business Canvas API", cfg.App.Name)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "/docs", cfg.App.DocsPath)
	assert.Equal(t, "test", cfg.App.Environment)
	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Addr())
	assert.Equal(t, StoreBackendMemory, cfg.Store.Backend)
	assert.Equal(t, "canvas:", cfg.Store.Redis.KeyPrefix)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "business-canvas", cfg.Tracing.ServiceName)
	assert.Equal(t, 30*time.Second, GetDuration(cfg.Server.ShutdownTimeout))
}

func TestLoadFromFile_RedisBackend(t *testing.T) {
	clearBindingEnv(t)
	t.Setenv("TEST_REDIS_PASSWORD", "s3cret")

	cfg, err := LoadFromFile(writeConfig(t, `
store:
  backend: Redis
  redis:
    address: localhost:6379
    password: ${TEST_REDIS_PASSWORD}
    ttl: 3600
`))
	require.NoError(t, err)
	assert.Equal(t, StoreBackendRedis, cfg.Store.Backend)
	assert.Equal(t, "s3cret", cfg.Store.Redis.Password)
	assert.Equal(t, time.Hour, cfg.Store.Redis.GetTTL())
}

func TestLoadFromFile_EnvOverrides(t *testing.T) {
	clearBindingEnv(t)
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9090")

	cfg, err := LoadFromFile(writeConfig(t, "server:\n  port: 8001\n"))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr())
}

func TestLoadFromFile_AutomaticEnv(t *testing.T) {
	clearBindingEnv(t)
	t.Setenv("SERVER_PORT", "7000")

	cfg, err := LoadFromFile(writeConfig(t, "logging:\n  level: debug\n"))
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{name: "redis without address", body: "store:\n  backend: redis\n"},
		{name: "unknown backend", body: "store:\n  backend: postgres\n"},
		{name: "port out of range", body: "server:\n  port: 70000\n"},
		{name: "tracing without endpoint", body: "tracing:\n  enabled: true\n"},
		{name: "non-numeric PORT", body: "app:\n  name: x\n", env: map[string]string{"PORT": "http"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearBindingEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadFromFile(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_WithoutConfigFiles(t *testing.T) {
	clearBindingEnv(t)
	t.Setenv("APP_ENVIRONMENT", "ci")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "ci", cfg.App.Environment)
	assert.Equal(t, 8000, cfg.Server.Port)
}
