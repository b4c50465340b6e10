package favorites

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStorage(t *testing.T, ttl time.Duration) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStorage(client, ttl), mr
}

func TestRedisStorageReadWrite(t *testing.T) {
	storage, _ := newTestRedisStorage(t, 0)
	ctx := context.Background()

	require.NoError(t, storage.Write(ctx, "user:1", `[{"ref_id":"shop-1"}]`))

	value, err := storage.Read(ctx, "user:1")
	require.NoError(t, err)
	assert.Equal(t, `[{"ref_id":"shop-1"}]`, value)
}

func TestRedisStorageMissingKey(t *testing.T) {
	storage, _ := newTestRedisStorage(t, 0)

	value, err := storage.Read(context.Background(), "user:unknown")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestRedisStorageKeysAreNamespaced(t *testing.T) {
	storage, mr := newTestRedisStorage(t, 0)

	require.NoError(t, storage.Write(context.Background(), "user:1", "[]"))
	assert.True(t, mr.Exists("favorites:user:1"))
}

func TestRedisStorageAppliesTTL(t *testing.T) {
	storage, mr := newTestRedisStorage(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, storage.Write(ctx, "user:1", "[]"))
	assert.Equal(t, time.Hour, mr.TTL("favorites:user:1"))

	mr.FastForward(2 * time.Hour)

	value, err := storage.Read(ctx, "user:1")
	require.NoError(t, err)
	assert.Empty(t, value)
}
