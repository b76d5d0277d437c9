package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDatabaseConfig_Defaults(t *testing.T) {
	cfg, err := LoadDatabaseConfig("")
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Host)
	assert.Equal(t, 5432, cfg.Port)
	assert.Equal(t, "challengeme", cfg.DBName)
	assert.Equal(t, 25, cfg.MaxOpenConns)
	assert.Equal(t, 5*time.Minute, cfg.MaxLifetime)
}

func TestLoadDatabaseConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_MAX_LIFETIME", "30s")

	cfg, err := LoadDatabaseConfig("")
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, 6543, cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.MaxLifetime)
}

func TestLoadDatabaseConfig_Prefix(t *testing.T) {
	t.Setenv("LIKE_DB_NAME", "likes")

	cfg, err := LoadDatabaseConfig("LIKE_")
	require.NoError(t, err)
	assert.Equal(t, "likes", cfg.DBName)
}

func TestLoadDatabaseConfig_BadPort(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-port")

	_, err := LoadDatabaseConfig("")
	assert.Error(t, err)
}

func TestLoadAuthConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_ACCESS_EXPIRY", "1h")

	cfg := LoadAuthConfig()
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, time.Hour, cfg.AccessExpiry)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshExpiry)
}

func TestLoadNATSConfig(t *testing.T) {
	cfg := LoadNATSConfig("test-service")
	assert.Equal(t, "nats://nats:4222", cfg.URL)
	assert.Equal(t, "test-service", cfg.ClientID)
	assert.Equal(t, 10, cfg.MaxReconnects)
}
