package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/verdant/core"
)

func newTestCache(t *testing.T, opts ...Option) (*QueryCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cache, err := NewQueryCache(client, opts...)
	require.NoError(t, err)
	return cache, mr
}

func TestNewQueryCache(t *testing.T) {
	t.Run("nil client", func(t *testing.T) {
		_, err := NewQueryCache(nil)
		assert.Equal(t, ErrClientRequired, err)
	})

	t.Run("valid", func(t *testing.T) {
		cache, _ := newTestCache(t)
		assert.NotNil(t, cache)
	})
}

func TestQueryCacheRoundtrip(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t)

	key := core.IDFromContent("carbon emissions\x00hybrid\x00null")
	response := &core.Response{
		Query:       "carbon emissions",
		Mode:        core.ModeHybrid,
		ModeName:    "hybrid",
		ResultCount: 1,
		Results: []*core.SearchResult{
			{Document: &core.Document{Id: 7, Title: "Report", Content: "x"}, Score: 2.5},
		},
		SearchTime: 42 * time.Millisecond,
	}

	cache.Set(ctx, key, response)

	got, ok := cache.Get(ctx, key)
	require.True(t, ok)
	assert.Equal(t, response.Query, got.Query)
	assert.Equal(t, response.ResultCount, got.ResultCount)
	assert.Equal(t, response.SearchTime, got.SearchTime)
	require.Len(t, got.Results, 1)
	assert.Equal(t, core.ID(7), got.Results[0].Document.Id)
	// Mode is not serialized; it is rebuilt from the wire name.
	assert.Equal(t, core.ModeHybrid, got.Mode)
}

func TestQueryCacheMiss(t *testing.T) {
	cache, _ := newTestCache(t)
	_, ok := cache.Get(context.Background(), core.ID(1))
	assert.False(t, ok)
}

func TestQueryCacheTTL(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t, WithTTL(10*time.Minute))

	key := core.ID(99)
	cache.Set(ctx, key, &core.Response{Query: "q", ModeName: "keyword"})

	_, ok := cache.Get(ctx, key)
	require.True(t, ok)

	mr.FastForward(601 * time.Second)

	_, ok = cache.Get(ctx, key)
	assert.False(t, ok)
}

func TestQueryCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)

	key := core.ID(5)
	require.NoError(t, mr.Set(cacheKey(key), "not json"))

	_, ok := cache.Get(ctx, key)
	assert.False(t, ok)
}

func TestQueryCacheUnreachableServer(t *testing.T) {
	cache, mr := newTestCache(t)
	mr.Close()

	// Redis trouble degrades to a miss, never an error to the caller.
	_, ok := cache.Get(context.Background(), core.ID(1))
	assert.False(t, ok)
	cache.Set(context.Background(), core.ID(1), &core.Response{Query: "q", ModeName: "hybrid"})
}
