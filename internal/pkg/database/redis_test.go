package database

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisTest(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return &RedisClient{Client: client}, mr
}

func TestRedisClient_SetGet(t *testing.T) {
	rc, _ := setupRedisTest(t)
	ctx := context.Background()

	err := rc.Set(ctx, "key", "value", time.Minute)
	assert.NoError(t, err)

	val, err := rc.Get(ctx, "key")
	assert.NoError(t, err)
	assert.Equal(t, "value", val)
}

func TestRedisClient_GetMissing(t *testing.T) {
	rc, _ := setupRedisTest(t)

	_, err := rc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, redis.Nil)
}

func TestRedisClient_SetNX(t *testing.T) {
	rc, _ := setupRedisTest(t)
	ctx := context.Background()

	ok, err := rc.SetNX(ctx, "lock", "1", time.Minute)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = rc.SetNX(ctx, "lock", "1", time.Minute)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisClient_Delete(t *testing.T) {
	rc, _ := setupRedisTest(t)
	ctx := context.Background()

	require.NoError(t, rc.Set(ctx, "key", "value", 0))
	assert.NoError(t, rc.Delete(ctx, "key"))

	_, err := rc.Get(ctx, "key")
	assert.ErrorIs(t, err, redis.Nil)
}

func TestRedisClient_PTTL(t *testing.T) {
	rc, _ := setupRedisTest(t)
	ctx := context.Background()

	require.NoError(t, rc.Set(ctx, "key", "value", time.Minute))

	ttl, err := rc.PTTL(ctx, "key")
	assert.NoError(t, err)
	assert.Greater(t, ttl, 50*time.Second)
}
