package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DatabaseURL   string
	TargetsFile   string
	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration
	SinkURL       string
	SinkSecret    string
	HTTPTimeout   time.Duration
	LogLevel      slog.Level
}

func FromEnv() Config {
	godotenv.Load()

	to := 15 * time.Second
	if v := os.Getenv("HTTP_TIMEOUT_SECONDS"); v != "" {
		if d, err := time.ParseDuration(v + "s"); err == nil {
			to = d
		}
	}
	ttl := 6 * time.Hour
	if v := os.Getenv("CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			ttl = d
		}
	}
	lvl := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		lvl = slog.LevelDebug
	}
	return Config{
		Port:          envOr("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		TargetsFile:   envOr("TARGETS_FILE", "targets.json"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		CacheTTL:      ttl,
		SinkURL:       os.Getenv("DIGEST_SINK_URL"),
		SinkSecret:    os.Getenv("DIGEST_SINK_SECRET"),
		HTTPTimeout:   to,
		LogLevel:      lvl,
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
