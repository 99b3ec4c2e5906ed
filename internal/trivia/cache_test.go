package trivia

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, ttl), mr
}

func TestCacheMiss(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)

	categories, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, categories)
}

func TestCacheRoundTrip(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	want := CategoryMap{1: "Science", 6: "Sports"}
	require.NoError(t, cache.Set(ctx, want))

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, time.Minute, mr.TTL(categoriesKey))

	mr.FastForward(2 * time.Minute)
	got, err = cache.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheDefaultTTL(t *testing.T) {
	cache, mr := newTestCache(t, 0)

	require.NoError(t, cache.Set(context.Background(), CategoryMap{1: "Science"}))
	assert.Equal(t, defaultCacheTTL, mr.TTL(categoriesKey))
}

func TestCacheCorruptEntry(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	require.NoError(t, mr.Set(categoriesKey, "not json"))

	_, err := cache.Get(context.Background())
	assert.Error(t, err)
}

func TestResolverWithRedisCache(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	repo := newStubCategoryRepo()
	resolver := NewCategoryResolver(repo, cache, false)
	ctx := context.Background()

	_, err := resolver.All(ctx)
	require.NoError(t, err)
	assert.True(t, mr.Exists(categoriesKey))

	categories, err := resolver.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Geography", categories[3])
	assert.Equal(t, 1, repo.calls)
}
