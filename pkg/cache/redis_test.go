package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/agritrace-service/pkg/cache"
	"github.com/fekuna/agritrace-service/pkg/cache/cachetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID     string `json:"id"`
	Active bool   `json:"active"`
}

func TestRedisClient_JSON(t *testing.T) {
	client := cachetest.NewRedis(t)
	ctx := context.Background()

	var got record
	assert.ErrorIs(t, client.GetJSON(ctx, "agritrace:batch:B1", &got), cache.ErrMiss)

	require.NoError(t, client.SetJSON(ctx, "agritrace:batch:B1", record{ID: "B1", Active: true}, time.Minute))
	require.NoError(t, client.GetJSON(ctx, "agritrace:batch:B1", &got))
	assert.Equal(t, record{ID: "B1", Active: true}, got)

	require.NoError(t, client.Delete(ctx, "agritrace:batch:B1"))
	assert.ErrorIs(t, client.GetJSON(ctx, "agritrace:batch:B1", &got), cache.ErrMiss)
}

func TestRedisClient_LockScripts(t *testing.T) {
	client := cachetest.NewRedis(t)
	ctx := context.Background()
	key := "lock:agritrace:batch:B1"

	ok, err := client.AcquireLock(ctx, key, "token-a", time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.AcquireLock(ctx, key, "token-b", time.Second)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = client.RefreshLock(ctx, key, "token-b", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "a foreign token must not extend the lock")

	ok, err = client.RefreshLock(ctx, key, "token-a", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	ttl, err := client.Client.PTTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 30*time.Second)

	require.NoError(t, client.ReleaseLock(ctx, key, "token-b"))
	owner, err := client.Client.Get(ctx, key).Result()
	require.NoError(t, err)
	assert.Equal(t, "token-a", owner)

	require.NoError(t, client.ReleaseLock(ctx, key, "token-a"))
	n, err := client.Client.Exists(ctx, key).Result()
	require.NoError(t, err)
	assert.Zero(t, n)
}
