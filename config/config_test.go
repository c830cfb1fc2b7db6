package config

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "APP_ENV", "DB_DRIVER", "DATABASE_URL", "JWT_SECRET", "TOKEN_TTL",
		"CORS_ORIGINS", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"AUTH_RATE_LIMIT", "AUTH_RATE_WINDOW", "SEED_CONTROLLERS", "OTEL_SERVICE_NAME",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/smarthome")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, 10, cfg.AuthRateLimit)
	assert.Equal(t, time.Minute, cfg.AuthRateWindow)
	assert.Equal(t, 3, cfg.SeedCount)
	assert.Empty(t, cfg.RedisAddr)
	assert.False(t, cfg.Development())
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("APP_ENV", "development")
	t.Setenv("PORT", "9000")
	t.Setenv("TOKEN_TTL", "90m")
	t.Setenv("CORS_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("SEED_CONTROLLERS", "5")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "smarthome.db", cfg.DatabaseURL)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 5, cfg.SeedCount)
	assert.True(t, cfg.Development())
}

func TestFromEnvErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "missing secret", env: map[string]string{"DATABASE_URL": "postgres://x"}, want: "JWT_SECRET is required"},
		{name: "missing url", env: map[string]string{"JWT_SECRET": "s"}, want: "DATABASE_URL is required"},
		{name: "unknown driver", env: map[string]string{"JWT_SECRET": "s", "DB_DRIVER": "mysql"}, want: "unsupported DB_DRIVER"},
		{name: "bad port", env: map[string]string{"JWT_SECRET": "s", "DATABASE_URL": "x", "PORT": "http"}, want: "parse PORT"},
		{name: "bad ttl", env: map[string]string{"JWT_SECRET": "s", "DATABASE_URL": "x", "TOKEN_TTL": "1 day"}, want: "parse TOKEN_TTL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestOpenDBSQLite(t *testing.T) {
	cfg := Config{DBDriver: DriverSQLite, DatabaseURL: "file::memory:"}
	db, err := OpenDB(cfg)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
	require.NoError(t, sqlDB.Ping())
}

func TestNewRedis(t *testing.T) {
	client, err := NewRedis(context.Background(), Config{})
	require.NoError(t, err)
	assert.Nil(t, client, "redis is optional")

	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	client, err = NewRedis(context.Background(), Config{RedisAddr: addr})
	require.NoError(t, err)
	require.NotNil(t, client)
	client.Close()

	mr.Close()
	_, err = NewRedis(context.Background(), Config{RedisAddr: addr})
	assert.Error(t, err)
}
