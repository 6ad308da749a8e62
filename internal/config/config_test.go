package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"edge-shortener/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shortener.env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 9090, cfg.AdminPort)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, "CF-Connecting-IP", cfg.ClientIPHeader)
	assert.Empty(t, cfg.AllowedIPs)
	assert.Equal(t, config.BackendMemory, cfg.StoreBackend)
	assert.Equal(t, "link:", cfg.RedisKeyPrefix)
	assert.Equal(t, time.Minute, cfg.SweepInterval)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("ADMIN_PORT", "3001")
	t.Setenv("ENV", "production")
	t.Setenv("ALLOWED_IPS", " 176.1.128.65, ,10.0.0.1 ")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("REDIS_DB", "2")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, 3001, cfg.AdminPort)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, []string{"176.1.128.65", "10.0.0.1"}, cfg.AllowedIPs)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, config.BackendRedis, cfg.StoreBackend)
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
}

func TestLoad_FromFile(t *testing.T) {
	path := writeEnvFile(t, "ALLOWED_IPS=176.1.128.65\nPUBLIC_ORIGIN=https://go.example\nPORT=8081\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"176.1.128.65"}, cfg.AllowedIPs)
	assert.Equal(t, "https://go.example", cfg.PublicOrigin)
	assert.Equal(t, 8081, cfg.Port)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeEnvFile(t, "PORT=8081\n")
	t.Setenv("PORT", "8082")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8082, cfg.Port)
}

func TestLoad_MissingFileIsIgnored(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown backend", env: map[string]string{"STORE_BACKEND": "dynamo"}},
		{name: "port out of range", env: map[string]string{"PORT": "70000"}},
		{name: "admin port collides", env: map[string]string{"PORT": "9000", "ADMIN_PORT": "9000"}},
		{name: "relative api prefix", env: map[string]string{"API_PREFIX": "api"}},
		{name: "zero sweep interval", env: map[string]string{"SWEEP_INTERVAL": "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load("")
			assert.Error(t, err)
		})
	}
}

func TestValidate_RedisRequiresAddress(t *testing.T) {
	cfg := &config.Config{
		Port:         8080,
		AdminPort:    9090,
		APIPrefix:    "/api",
		StoreBackend: config.BackendRedis,
	}
	assert.Error(t, cfg.Validate())

	cfg.RedisAddr = "localhost:6379"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_AdminListenerCanBeDisabled(t *testing.T) {
	cfg := &config.Config{
		Port:          8080,
		AdminPort:     0,
		APIPrefix:     "/api",
		StoreBackend:  config.BackendMemory,
		SweepInterval: time.Minute,
	}
	assert.NoError(t, cfg.Validate())
}
