package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds runtime configuration for the feed service.
type Config struct {
	Env             string
	HTTPPort        string
	UpstreamBaseURL string
	UpstreamAPIKey  string
	UpstreamTimeout time.Duration
	AccessKey       string

	ResponseCacheTTL  time.Duration
	OperationCacheTTL time.Duration
	OperationCacheMax int

	EnrichConcurrency   int
	CreatedWindowBuffer int // days subtracted from the window start for the upstream created filter
	DefaultJobLimit     int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Load reads configuration from environment variables with sane defaults
// for local development. The upstream credential has no default; Load
// fails without it.
func Load() (Config, error) {
	cfg := Config{
		Env:                 getEnv("APP_ENV", "dev"),
		HTTPPort:            getEnv("HTTP_PORT", "8080"),
		UpstreamBaseURL:     getEnv("UPSTREAM_BASE_URL", "https://api.fulcrumpro.com"),
		UpstreamAPIKey:      os.Getenv("UPSTREAM_API_KEY"),
		UpstreamTimeout:     getEnvDuration("UPSTREAM_TIMEOUT", 15*time.Second),
		AccessKey:           os.Getenv("ACCESS_KEY"),
		ResponseCacheTTL:    getEnvDuration("RESPONSE_CACHE_TTL", 5*time.Minute),
		OperationCacheTTL:   getEnvDuration("OPERATION_CACHE_TTL", 10*time.Minute),
		OperationCacheMax:   getEnvInt("OPERATION_CACHE_SIZE", 512),
		EnrichConcurrency:   getEnvInt("ENRICH_CONCURRENCY", 4),
		CreatedWindowBuffer: getEnvInt("CREATED_WINDOW_BUFFER", 14),
		DefaultJobLimit:     getEnvInt("DEFAULT_JOB_LIMIT", 500),
		RedisAddr:           getEnv("REDIS_ADDR", ""),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		RedisDB:             getEnvInt("REDIS_DB", 0),
	}
	if cfg.UpstreamAPIKey == "" {
		return Config{}, fmt.Errorf("UPSTREAM_API_KEY is required")
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
