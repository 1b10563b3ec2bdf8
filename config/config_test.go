package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSecrets(t *testing.T, secrets map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, value := range secrets {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(value+"\n"), 0o600))
	}
	return dir
}

func TestLoadConfigFromSecrets(t *testing.T) {
	secrets := map[string]string{
		"db_user":        "pantrypilot",
		"db_password":    "secret-pass",
		"redis_password": "redis-pass",
		"db_host":        "db.internal",
		"db_port":        "5432",
		"db_name":        "pantrypilot",
		"db_ssl_mode":    "disable",
		"redis_host":     "cache.internal",
		"redis_port":     "6379",
		"redis_url":      "redis://cache.internal:6379",
		"server_port":    "8080",
		"server_host":    "0.0.0.0",
	}
	t.Setenv("SECRETS_DIR", writeSecrets(t, secrets))
	t.Setenv("ENV", "development")
	t.Setenv("CI", "")

	// validation also checks the non-secret env vars
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_NAME", "pantrypilot")
	t.Setenv("DB_SSL_MODE", "disable")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_PORT", "6379")
	t.Setenv("REDIS_URL", "redis://cache.internal:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "pantrypilot", cfg.DBUser)
	assert.Equal(t, "secret-pass", cfg.DBPassword)
	assert.Equal(t, "pantrypilot", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "redis-pass", cfg.RedisPassword)
	assert.Equal(t, "redis://cache.internal:6379", cfg.RedisURL)
	assert.Equal(t, "8080", cfg.ServerPort)
}

func TestLoadConfigMissingSecret(t *testing.T) {
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("ENV", "development")
	t.Setenv("CI", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "")

	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())

	t.Setenv("ENV", "test")
	assert.Equal(t, Test, GetEnvironment())

	t.Setenv("ENV", "")
	assert.Equal(t, Development, GetEnvironment())

	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())
}
