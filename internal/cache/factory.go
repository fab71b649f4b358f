// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"log/slog"
	"time"

	"github.com/pennaFedele/gambarie-summer-events/internal/config"
)

// New builds a Cache from configuration. When a Redis URL is set it is
// tried first; on connection failure the application falls back to the
// in-memory backend rather than refusing to start.
func New(cfg *config.Config) Cache {
	ttl := time.Duration(cfg.CacheTTL) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	if cfg.UseRedisCache() {
		redisCache, err := NewRedisCache(cfg.RedisURL, cfg.CachePrefix, ttl)
		if err != nil {
			slog.Warn("redis unavailable, using in-memory cache", "error", err)
		} else {
			slog.Info("cache backend: redis", "prefix", cfg.CachePrefix)
			return redisCache
		}
	}

	slog.Info("cache backend: memory", "ttl", ttl)
	return NewMemoryCache(ttl)
}
