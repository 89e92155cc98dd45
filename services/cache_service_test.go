package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryCacheSetGet(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "missing")
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, cache.Set(ctx, "stats", `{"total":1}`, time.Minute))

	value, ok, err := cache.Get(ctx, "stats")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"total":1}`, value)
}

func TestMemoryCacheExpiry(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	assert.NoError(t, cache.Set(ctx, "stats", "value", 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	_, ok, err := cache.Get(ctx, "stats")
	assert.NoError(t, err)
	assert.False(t, ok, "Expired entries read as missing")

	cache.mu.RLock()
	_, held := cache.entries["stats"]
	cache.mu.RUnlock()
	assert.False(t, held, "Expired entries are dropped on read")
}

func TestMemoryCacheDelete(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	assert.NoError(t, cache.Set(ctx, "stats", "value", time.Minute))
	assert.NoError(t, cache.Delete(ctx, "stats"))

	_, ok, err := cache.Get(ctx, "stats")
	assert.NoError(t, err)
	assert.False(t, ok)

	// Deleting an absent key is not an error
	assert.NoError(t, cache.Delete(ctx, "stats"))
}

func TestMemoryCacheOverwrite(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	assert.NoError(t, cache.Set(ctx, "stats", "old", time.Minute))
	assert.NoError(t, cache.Set(ctx, "stats", "new", time.Minute))

	value, ok, _ := cache.Get(ctx, "stats")
	assert.True(t, ok)
	assert.Equal(t, "new", value)
}
