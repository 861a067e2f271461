package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/ortheo/internal/platform/constants"
)

// RedisIndexCache stores one serialized index per locale with a TTL.
// Invalidation after a content mutation drops every locale at once, since a
// write in one locale can change fallback-resolved text in all of them.
type RedisIndexCache struct {
	client           *redis.Client
	supportedLocales []string
	ttl              time.Duration
}

// NewRedisIndexCache creates a new Redis-backed [IndexCache].
func NewRedisIndexCache(client *redis.Client, supportedLocales []string) *RedisIndexCache {
	return &RedisIndexCache{
		client:           client,
		supportedLocales: supportedLocales,
		ttl:              constants.SearchIndexTTL,
	}
}

func indexKey(locale string) string {
	return constants.RedisPrefixSearchIndex + locale
}

// Get returns the cached index for a locale, or (nil, nil) on a miss.
func (cache *RedisIndexCache) Get(context context.Context, locale string) (*Index, error) {
	payload, err := cache.client.Get(context, indexKey(locale)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_search_index_get_failed: %w", err)
	}

	index := &Index{}
	if err := json.Unmarshal(payload, index); err != nil {
		// A corrupt entry behaves like a miss; the next Set overwrites it.
		return nil, nil
	}
	return index, nil
}

// Set stores the index for a locale with the configured TTL.
func (cache *RedisIndexCache) Set(context context.Context, locale string, index *Index) error {
	payload, err := json.Marshal(index)
	if err != nil {
		return fmt.Errorf("search index marshal failed: %w", err)
	}

	if err := cache.client.Set(context, indexKey(locale), payload, cache.ttl).Err(); err != nil {
		return fmt.Errorf("redis_search_index_set_failed: %w", err)
	}
	return nil
}

// Invalidate drops the cached index of every supported locale.
func (cache *RedisIndexCache) Invalidate(context context.Context) error {
	keys := make([]string, 0, len(cache.supportedLocales))
	for _, locale := range cache.supportedLocales {
		keys = append(keys, indexKey(locale))
	}
	if len(keys) == 0 {
		return nil
	}

	if err := cache.client.Del(context, keys...).Err(); err != nil {
		return fmt.Errorf("redis_search_index_invalidate_failed: %w", err)
	}
	return nil
}
