package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "JWT_TTL", "STORAGE_DRIVER", "DB_DRIVER", "REDIS_DB", "SEED_SAMPLE_DATA"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "sql", cfg.StorageDriver)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.True(t, cfg.SeedSampleData)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("STORAGE_DRIVER", "Redis")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SEED_SAMPLE_DATA", "false")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []byte("s3cret"), cfg.JWTSecret)
	assert.Equal(t, 90*time.Minute, cfg.JWTTTL)
	assert.Equal(t, "redis", cfg.StorageDriver)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.False(t, cfg.SeedSampleData)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_TTL", "forever")
	t.Setenv("REDIS_DB", "one")
	t.Setenv("SEED_SAMPLE_DATA", "maybe")

	cfg := Load()
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.True(t, cfg.SeedSampleData)
}
