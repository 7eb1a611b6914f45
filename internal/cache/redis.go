package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"vibe-frontend/internal/config"
)

var client *redis.Client

// Init initializes the Redis connection. The cache is optional: on failure
// the client stays nil and every lookup degrades to a miss.
func Init(cfg *config.Config) error {
	client = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + strconv.Itoa(cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client (nil when the cache is unavailable)
func GetClient() *redis.Client {
	return client
}

// ReferenceCache caches bulk reference datasets (employee and department
// pickers) with an explicit TTL and a caller-driven force-refresh flag. It is
// owned by the handler that uses it rather than living as process-wide
// mutable state.
type ReferenceCache struct {
	ttl time.Duration
}

func NewReferenceCache(ttl time.Duration) *ReferenceCache {
	return &ReferenceCache{ttl: ttl}
}

// Get returns the cached payload for key. force bypasses the cache so the
// caller re-fetches from the upstream.
func (c *ReferenceCache) Get(ctx context.Context, key string, force bool) ([]byte, bool) {
	if client == nil || force {
		return nil, false
	}
	data, err := client.Get(ctx, refKey(key)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores a payload under key for the cache's TTL.
func (c *ReferenceCache) Set(ctx context.Context, key string, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, refKey(key), data, c.ttl)
}

// Invalidate removes a cached payload.
func (c *ReferenceCache) Invalidate(ctx context.Context, key string) {
	if client == nil {
		return
	}
	client.Del(ctx, refKey(key))
}

func refKey(key string) string {
	return "reference:" + key
}
