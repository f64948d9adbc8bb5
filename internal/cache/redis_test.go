package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CATyPH67/shop-api/internal/platform/logger"
)

func newTestStore(t *testing.T) (Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	log, err := logger.New("development")
	require.NoError(t, err)
	return NewRedisStore(rdb, log), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "categories:limit=2:offset=0", []byte(`{"items":[]}`), time.Minute))

	got, err := store.Get(ctx, "categories:limit=2:offset=0")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"items":[]}`), got)
}

func TestRedisStoreMiss(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedisStoreEntryExpires(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "products:limit=20:offset=0", []byte("v"), time.Minute))

	mr.FastForward(61 * time.Second)

	_, err := store.Get(ctx, "products:limit=20:offset=0")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedisStoreLastWriteWins(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("first"), time.Minute))
	require.NoError(t, store.Set(ctx, "k", []byte("second"), time.Minute))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)
}
