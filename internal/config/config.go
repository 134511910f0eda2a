package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port                    int    `env:"PORT" envDefault:"8080"`
	DatabaseURL             string `env:"DATABASE_URL,required"`
	RedisURL                string `env:"REDIS_URL,required"`
	LogLevel                string `env:"LOG_LEVEL" envDefault:"info"`
	Environment             string `env:"ENVIRONMENT" envDefault:"development"`
	SectionsCacheTTLSeconds int    `env:"SECTIONS_CACHE_TTL_SECONDS" envDefault:"300"`
	StaticDir               string `env:"STATIC_DIR" envDefault:"static"`

	// Object storage for dashboard image uploads. Uploads are disabled
	// when the endpoint is empty.
	S3Endpoint      string `env:"S3_ENDPOINT"`
	S3Region        string `env:"S3_REGION" envDefault:"us-east-1"`
	S3AccessKey     string `env:"S3_ACCESS_KEY"`
	S3SecretKey     string `env:"S3_SECRET_KEY"`
	S3Bucket        string `env:"S3_BUCKET"`
	S3PublicBaseURL string `env:"S3_PUBLIC_BASE_URL"`
}

func (c *Config) SectionsCacheTTL() time.Duration {
	return time.Duration(c.SectionsCacheTTLSeconds) * time.Second
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) UploadsEnabled() bool {
	return c.S3Endpoint != "" && c.S3Bucket != ""
}

func (c *Config) Validate() error {
	if c.UploadsEnabled() {
		if c.S3AccessKey == "" || c.S3SecretKey == "" {
			return fmt.Errorf("S3_ACCESS_KEY and S3_SECRET_KEY are required when S3_ENDPOINT is set")
		}
	}

	if c.IsProduction() {
		if strings.HasPrefix(c.RedisURL, "redis://") {
			log.Warn().Msg("REDIS_URL uses redis:// (not TLS) in production: consider using rediss://")
		}
		if !c.UploadsEnabled() {
			log.Warn().Msg("object storage is not configured: dashboard image uploads disabled")
		}
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
