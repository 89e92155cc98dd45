package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/brightshine/laundry-api/config"
)

// Cache is a small key/value store used for dashboard aggregates.
// Backed by Redis when REDIS_URL is configured, otherwise an
// in-process TTL map (also what tests run against).
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

var cacheInstance Cache

// InitCache selects the cache driver from configuration
func InitCache(cfg *config.Config) Cache {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Printf("Invalid REDIS_URL, falling back to memory cache: %v", err)
			cacheInstance = NewMemoryCache()
			return cacheInstance
		}
		cacheInstance = &RedisCache{client: redis.NewClient(opts)}
		log.Println("Cache driver: redis")
		return cacheInstance
	}

	cacheInstance = NewMemoryCache()
	log.Println("Cache driver: memory")
	return cacheInstance
}

// GetCache returns the initialized cache instance
func GetCache() Cache {
	return cacheInstance
}

// SetCache sets the cache instance (primarily for testing)
func SetCache(c Cache) {
	cacheInstance = c
}

// RedisCache implements Cache on a Redis client
type RedisCache struct {
	client *redis.Client
}

// Get fetches a key; the second return reports whether it existed
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set stores a key with a TTL
func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Delete removes a key
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// MemoryCache implements Cache with an in-process map
type MemoryCache struct {
	entries map[string]memoryEntry
	mu      sync.RWMutex
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// NewMemoryCache creates an empty in-process cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

// Get fetches a key; expired entries read as missing and are dropped
func (c *MemoryCache) Get(ctx context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		return "", false, nil
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		// Recheck before dropping; a concurrent Set may have refreshed the key
		if current, ok := c.entries[key]; ok && time.Now().After(current.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return "", false, nil
	}
	return entry.value, true, nil
}

// Set stores a key with a TTL
func (c *MemoryCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	c.entries[key] = memoryEntry{value: value, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

// Delete removes a key
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}
