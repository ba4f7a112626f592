package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"HOST", "PORT", "ALLOWED_ORIGINS", "LOG_LEVEL", "SEED", "STORE_BACKEND", "DB_FILE", "DATA_DIR", "DB_NAME", "DATABASE_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Seed)
	assert.Equal(t, "file", cfg.Store.Backend)
	assert.Equal(t, "db.json", cfg.Store.File)
	assert.Equal(t, "safecircle", cfg.Store.Name)
	assert.Empty(t, cfg.Store.DatabaseURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("SEED", "false")
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("DATA_DIR", "/tmp/sc")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.False(t, cfg.Seed)
	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, "/tmp/sc", cfg.Store.DataDir)
}

func TestInvalidBoolFallsBack(t *testing.T) {
	t.Setenv("SEED", "maybe")
	assert.True(t, Load().Seed)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SC_TEST_PORT=7070\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("SC_TEST_PORT") })

	LoadEnv(path)
	assert.Equal(t, "7070", os.Getenv("SC_TEST_PORT"))
}

func TestLoadEnvMissingFile(t *testing.T) {
	assert.NotPanics(t, func() { LoadEnv(filepath.Join(t.TempDir(), "missing.env")) })
}
