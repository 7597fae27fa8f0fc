package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests use t.Setenv and therefore do not run in parallel

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"STORE_BACKEND", "HISTORY_FILE", "LOG_FORMAT", "SINGLE_GAME_COST", "REDIS_DB", "ENVIRONMENT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreBackendFile, cfg.StoreBackend)
	assert.Equal(t, "lotto-history.json", cfg.HistoryFile)
	assert.Equal(t, int64(1000), cfg.SingleGameCost)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "lottoGameHistory", cfg.RedisKey)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SINGLE_GAME_COST", "2000")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreBackendRedis, cfg.StoreBackend)
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, int64(2000), cfg.SingleGameCost)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "postgres without url", env: map[string]string{"STORE_BACKEND": "postgres", "DATABASE_URL": ""}},
		{name: "unknown backend", env: map[string]string{"STORE_BACKEND": "sqlite"}},
		{name: "bad cost", env: map[string]string{"SINGLE_GAME_COST": "-5"}},
		{name: "bad redis db", env: map[string]string{"REDIS_DB": "one"}},
		{name: "bad log format", env: map[string]string{"LOG_FORMAT": "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestGetDatabaseURL(t *testing.T) {
	t.Parallel()

	cfg := &Config{DatabaseURL: "postgres://u:p@localhost:5432", DatabaseName: "lotto"}
	assert.Equal(t, "postgres://u:p@localhost:5432/lotto?sslmode=disable", cfg.GetDatabaseURL())
}

func TestSetTestConfig(t *testing.T) {
	defer ResetConfig()

	cfg := NewTestConfig()
	cfg.HTTPAddr = ":9999"
	SetTestConfig(cfg)

	assert.Same(t, cfg, Get())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("LOTTO_DOTENV_PROBE=from-file\n"), 0o600))

	t.Setenv("LOTTO_DOTENV_PROBE", "")
	require.NoError(t, os.Unsetenv("LOTTO_DOTENV_PROBE"))

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, "from-file", os.Getenv("LOTTO_DOTENV_PROBE"))
}
