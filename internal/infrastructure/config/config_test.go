package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "shipkaro-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "memory", cfg.Quote.Backend)
	assert.Equal(t, 5*time.Minute, cfg.Quote.TTL)
	assert.Equal(t, int64(4<<20), cfg.HTTP.MaxBodySize)
}

func TestApplyDefaultsPreservesExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.App.Port = "9000"
	cfg.Database.MaxOpenConns = 50
	cfg.Quote.Backend = "redis"
	applyDefaults(cfg)

	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, 50, cfg.Database.MaxOpenConns)
	assert.Equal(t, "redis", cfg.Quote.Backend)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("defaults are valid", func(t *testing.T) {
		require.NoError(t, base().validate())
	})

	t.Run("idle conns exceeding open conns", func(t *testing.T) {
		cfg := base()
		cfg.Database.MaxIdleConns = 100
		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
	})

	t.Run("unknown quote backend", func(t *testing.T) {
		cfg := base()
		cfg.Quote.Backend = "memcached"
		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quote.backend")
	})

	t.Run("production requires password", func(t *testing.T) {
		cfg := base()
		cfg.App.Env = "production"
		cfg.Database.SSLMode = "require"
		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "password")
	})

	t.Run("production forbids sslmode disable", func(t *testing.T) {
		cfg := base()
		cfg.App.Env = "production"
		cfg.Database.Password = "secret"
		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")
	})
}

func TestDSNEscapesCredentials(t *testing.T) {
	d := &DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "ship@karo",
		Password: "p@ss:word/1",
		DBName:   "shipkaro",
		SSLMode:  "require",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	assert.NotContains(t, dsn, "p@ss:word/1")
}

func TestRedisAddr(t *testing.T) {
	r := &RedisConfig{Host: "redis.internal", Port: 6380}
	assert.Equal(t, "redis.internal:6380", r.Addr())
}

func TestLoadWithEnvOverride(t *testing.T) {
	t.Setenv("SHIPKARO_APP_PORT", "9999")
	t.Setenv("SHIPKARO_DATABASE_HOST", "pg.test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9999", cfg.App.Port)
	assert.Equal(t, "pg.test", cfg.Database.Host)
}
