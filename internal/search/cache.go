package search

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	sharedredis "marstiles-server/internal/shared/redis"
)

// Cache memoizes confident matches in Redis, keyed by the normalized query.
// Only the search result is cached; tile responses rely on HTTP conditional
// requests alone. All methods are nil-receiver safe so a disabled Redis
// connection degrades to calling the engine every time.
type Cache struct {
	client *sharedredis.Client
	ttl    time.Duration
}

// NewCache returns nil when no Redis client is available.
func NewCache(client *sharedredis.Client, ttl time.Duration) *Cache {
	if client == nil {
		return nil
	}
	return &Cache{client: client, ttl: ttl}
}

func cacheKey(query string) string {
	return "search:" + strings.ToLower(strings.TrimSpace(query))
}

func (c *Cache) GetMatch(ctx context.Context, query string) *Match {
	if c == nil {
		return nil
	}

	logger := slog.With("component", "search_cache", "operation", "get")

	data, err := c.client.Get(ctx, cacheKey(query)).Bytes()
	if err != nil {
		// Cache miss or Redis hiccup; either way the engine is the fallback
		return nil
	}

	var match Match
	if err := json.Unmarshal(data, &match); err != nil {
		logger.Warn("Failed to decode cached match, ignoring", "error", err)
		return nil
	}

	return &match
}

func (c *Cache) SetMatch(ctx context.Context, query string, match *Match) {
	if c == nil || match == nil {
		return
	}

	logger := slog.With("component", "search_cache", "operation", "set")

	data, err := json.Marshal(match)
	if err != nil {
		logger.Warn("Failed to encode match for cache", "error", err)
		return
	}

	if err := c.client.Set(ctx, cacheKey(query), data, c.ttl).Err(); err != nil {
		logger.Warn("Failed to cache match", "error", err)
	}
}
