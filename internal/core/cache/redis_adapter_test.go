package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T) (*RedisAdapter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	adapter, err := NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })

	return adapter, mr
}

func TestRedisAdapter_GetSet(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	key := "quotes:abc"
	value := []byte(`[{"courier_name":"Delhivery Surface"}]`)

	err := adapter.Set(ctx, key, value, 10*time.Second)
	assert.NoError(t, err)

	retrievedValue, err := adapter.Get(ctx, key)
	assert.NoError(t, err)
	assert.Equal(t, value, retrievedValue)
}

func TestRedisAdapter_GetNotFound(t *testing.T) {
	adapter, _ := newTestAdapter(t)

	_, err := adapter.Get(context.Background(), "non_existent_key")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	assert.Contains(t, err.Error(), "non_existent_key")
}

func TestRedisAdapter_SetNX(t *testing.T) {
	adapter, mr := newTestAdapter(t)
	ctx := context.Background()

	ok, err := adapter.SetNX(ctx, "lock:booking:42", []byte("1"), time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = adapter.SetNX(ctx, "lock:booking:42", []byte("1"), time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "second acquire must fail while the lock is held")

	mr.FastForward(2 * time.Minute)

	ok, err = adapter.SetNX(ctx, "lock:booking:42", []byte("1"), time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "lock must be acquirable again after expiry")
}

func TestRedisAdapter_Delete(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	key := "delete_test"
	require.NoError(t, adapter.Set(ctx, key, []byte("value"), 0))

	assert.NoError(t, adapter.Delete(ctx, key))

	_, err := adapter.Get(ctx, key)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestRedisAdapter_TTL(t *testing.T) {
	adapter, mr := newTestAdapter(t)
	ctx := context.Background()

	key := "ttl_test"
	require.NoError(t, adapter.Set(ctx, key, []byte("expires_soon"), 1*time.Second))

	_, err := adapter.Get(ctx, key)
	assert.NoError(t, err)

	mr.FastForward(2 * time.Second)

	_, err = adapter.Get(ctx, key)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestRedisAdapter_Ping(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	assert.NoError(t, adapter.Ping(context.Background()))
}

func TestRedisAdapter_InvalidURL(t *testing.T) {
	_, err := NewRedisAdapter("invalid://url")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse Redis URL")
}

func TestRedisAdapter_CompareAndDelete(t *testing.T) {
	adapter, mr := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "booking:ord-1", []byte("owner-a"), time.Minute))

	ok, err := adapter.CompareAndDelete(ctx, "booking:ord-1", []byte("owner-b"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, mr.Exists("booking:ord-1"))

	ok, err = adapter.CompareAndDelete(ctx, "booking:ord-1", []byte("owner-a"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, mr.Exists("booking:ord-1"))

	ok, err = adapter.CompareAndDelete(ctx, "booking:ord-1", []byte("owner-a"))
	require.NoError(t, err)
	assert.False(t, ok)
}
