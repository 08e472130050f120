// Package cache provides the search response cache with a Redis primary
// and an in-memory fallback.
package cache

import (
	"context"
	"time"

	"github.com/partsearch/parts-search/internal/config"
	"github.com/partsearch/parts-search/internal/pkg/logger"
)

// Cache stores opaque payloads under string keys with a TTL. Get reports a
// miss instead of an error; backend failures degrade to misses.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// New selects the backend from configuration. Redis is used when requested
// and reachable; anything else falls back to the in-memory cache.
func New(cfg config.CacheConfig, log *logger.Logger) Cache {
	log = log.WithComponent("cache")
	if cfg.Type == "redis" && cfg.RedisURL != "" {
		c, err := NewRedis(cfg.RedisURL)
		if err == nil {
			log.Info("using redis cache")
			return c
		}
		log.WithError(err).Warn("redis unavailable, using in-memory cache")
	}
	return NewMemory()
}
