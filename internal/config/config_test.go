package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigMethods(t *testing.T) {
	t.Run("Addr returns formatted port", func(t *testing.T) {
		cfg := &Config{Port: 3000}
		assert.Equal(t, ":3000", cfg.Addr())
	})

	t.Run("SectionsCacheTTL converts seconds to duration", func(t *testing.T) {
		cfg := &Config{SectionsCacheTTLSeconds: 300}
		assert.Equal(t, 300*time.Second, cfg.SectionsCacheTTL())
	})

	t.Run("IsProduction only for production environment", func(t *testing.T) {
		assert.False(t, (&Config{Environment: "development"}).IsProduction())
		assert.True(t, (&Config{Environment: "production"}).IsProduction())
	})

	t.Run("UploadsEnabled requires endpoint and bucket", func(t *testing.T) {
		assert.False(t, (&Config{}).UploadsEnabled())
		assert.False(t, (&Config{S3Endpoint: "http://minio:9000"}).UploadsEnabled())
		assert.True(t, (&Config{S3Endpoint: "http://minio:9000", S3Bucket: "images"}).UploadsEnabled())
	})
}

func TestValidate(t *testing.T) {
	t.Run("rejects storage config without credentials", func(t *testing.T) {
		cfg := &Config{
			S3Endpoint: "http://minio:9000",
			S3Bucket:   "images",
		}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "S3_ACCESS_KEY")
	})

	t.Run("accepts complete storage config", func(t *testing.T) {
		cfg := &Config{
			S3Endpoint:  "http://minio:9000",
			S3Bucket:    "images",
			S3AccessKey: "key",
			S3SecretKey: "secret",
		}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("accepts config without storage", func(t *testing.T) {
		assert.NoError(t, (&Config{}).Validate())
	})
}

func TestLoad(t *testing.T) {
	originalEnv := map[string]string{
		"PORT":                       os.Getenv("PORT"),
		"DATABASE_URL":               os.Getenv("DATABASE_URL"),
		"REDIS_URL":                  os.Getenv("REDIS_URL"),
		"LOG_LEVEL":                  os.Getenv("LOG_LEVEL"),
		"ENVIRONMENT":                os.Getenv("ENVIRONMENT"),
		"SECTIONS_CACHE_TTL_SECONDS": os.Getenv("SECTIONS_CACHE_TTL_SECONDS"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	t.Run("loads config with defaults", func(t *testing.T) {
		os.Setenv("DATABASE_URL", "postgres://localhost/test")
		os.Setenv("REDIS_URL", "redis://localhost:6379")
		os.Unsetenv("PORT")
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("ENVIRONMENT")
		os.Unsetenv("SECTIONS_CACHE_TTL_SECONDS")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "postgres://localhost/test", cfg.DatabaseURL)
		assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "development", cfg.Environment)
		assert.Equal(t, 300, cfg.SectionsCacheTTLSeconds)
	})

	t.Run("loads custom values", func(t *testing.T) {
		os.Setenv("DATABASE_URL", "postgres://localhost/test")
		os.Setenv("REDIS_URL", "redis://localhost:6379")
		os.Setenv("PORT", "3000")
		os.Setenv("LOG_LEVEL", "debug")
		os.Setenv("SECTIONS_CACHE_TTL_SECONDS", "60")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, 60, cfg.SectionsCacheTTLSeconds)
	})

	t.Run("fails without DATABASE_URL", func(t *testing.T) {
		os.Unsetenv("DATABASE_URL")
		os.Setenv("REDIS_URL", "redis://localhost:6379")

		_, err := Load()
		assert.Error(t, err)
	})
}
