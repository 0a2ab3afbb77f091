package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Compras-api/internal/infrastructure/cache"
)

type stats struct {
	Total int `json:"total"`
}

func newCache(t *testing.T) (*cache.ReportCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewReportCache(client, time.Minute), mr
}

func TestFetchJSON_CacheaHastaBump(t *testing.T) {
	ctx := context.Background()
	c, mr := newCache(t)
	calls := 0
	loader := func(context.Context) (interface{}, error) {
		calls++
		return stats{Total: calls}, nil
	}

	key, err := c.BuildKey(ctx, "reports", "dashboard")
	require.NoError(t, err)
	assert.Equal(t, "reports:dashboard:1", key)

	var out stats
	require.NoError(t, c.FetchJSON(ctx, key, &out, loader))
	require.NoError(t, c.FetchJSON(ctx, key, &out, loader))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, out.Total)
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Minute, mr.TTL(key))

	require.NoError(t, c.Invalidate(ctx))
	key, err = c.BuildKey(ctx, "reports", "dashboard")
	require.NoError(t, err)
	assert.Equal(t, "reports:dashboard:2", key)

	require.NoError(t, c.FetchJSON(ctx, key, &out, loader))
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, out.Total)
}

func TestFetchJSON_ErrorDelLoaderNoSeGuarda(t *testing.T) {
	ctx := context.Background()
	c, mr := newCache(t)
	boom := errors.New("boom")

	var out stats
	err := c.FetchJSON(ctx, "k:1", &out, func(context.Context) (interface{}, error) { return nil, boom })
	require.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("k:1"))
}

func TestReportCache_SinCliente(t *testing.T) {
	ctx := context.Background()
	c := cache.NewReportCache(nil, 0)

	key, err := c.BuildKey(ctx, "reports", "stock")
	require.NoError(t, err)
	assert.Equal(t, "reports:stock", key)

	var out stats
	require.NoError(t, c.FetchJSON(ctx, key, &out, func(context.Context) (interface{}, error) { return stats{Total: 7}, nil }))
	assert.Equal(t, 7, out.Total)
	assert.NoError(t, c.Invalidate(ctx))
}

func TestFetchJSON_RedisCaido(t *testing.T) {
	ctx := context.Background()
	c, mr := newCache(t)
	mr.Close()

	_, err := c.BuildKey(ctx, "reports", "dashboard")
	assert.Error(t, err)
}
