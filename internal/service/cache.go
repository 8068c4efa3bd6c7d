package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReportCache is a read-through redis cache for finished weekly reports. Cache
// failures degrade to a recompute, never to an error.
type ReportCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *slog.Logger
}

func NewReportCache(addr, password string, ttl time.Duration, log *slog.Logger) *ReportCache {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	return &ReportCache{rdb: rdb, ttl: ttl, log: log}
}

func (c *ReportCache) Get(ctx context.Context, key string, v any) bool {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.log.Warn("cache get failed", slog.String("key", key), slog.String("err", err.Error()))
		return false
	}
	if err := json.Unmarshal(b, v); err != nil {
		c.log.Warn("cache entry corrupt", slog.String("key", key))
		return false
	}
	return true
}

func (c *ReportCache) Set(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		c.log.Warn("cache set failed", slog.String("key", key), slog.String("err", err.Error()))
	}
}

func (c *ReportCache) Close() error { return c.rdb.Close() }
