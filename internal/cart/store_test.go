package cart

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisclient "github.com/jngsolar/storefront-backend/pkg/redis"
)

func TestMemoryStoreTakeClearsCart(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	lines := []Line{{ProductID: "p1", Name: "Solar Panel 320W", Price: decimal.RequireFromString("189.00"), Qty: 2}}
	require.NoError(t, store.Save(ctx, "sess-1", lines))

	taken, err := store.Take(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, taken, 1)

	after, err := store.Lines(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, after)
}

func TestMemoryStoreTakeIsSingleWinner(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	lines := []Line{{ProductID: "p1", Price: decimal.RequireFromString("189.00"), Qty: 1}}
	require.NoError(t, store.Save(ctx, "sess-1", lines))

	winners := make(chan int, 8)
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			taken, err := store.Take(ctx, "sess-1")
			if err == nil && len(taken) > 0 {
				winners <- 1
			}
			done <- struct{}{}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
	close(winners)

	count := 0
	for range winners {
		count++
	}
	assert.Equal(t, 1, count, "exactly one caller should receive the non-empty cart")
}

func TestMemoryStoreSaveCopiesLines(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	lines := []Line{{ProductID: "p1", Qty: 1}}
	require.NoError(t, store.Save(ctx, "sess-1", lines))
	lines[0].Qty = 99

	got, err := store.Lines(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 1, got[0].Qty)
}

type fakeValueStore struct {
	data map[string]string
}

func (f *fakeValueStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.data[key] = value.(string)
	return nil
}

func (f *fakeValueStore) Get(_ context.Context, key string) (string, error) {
	v, ok := f.data[key]
	if !ok {
		return "", redisclient.Nil
	}
	return v, nil
}

func (f *fakeValueStore) GetDel(_ context.Context, key string) (string, error) {
	v, ok := f.data[key]
	if !ok {
		return "", redisclient.Nil
	}
	delete(f.data, key)
	return v, nil
}

func (f *fakeValueStore) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func (f *fakeValueStore) CartKey(sessionID string) string {
	return "sf:cart:" + sessionID
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store := &RedisStore{client: &fakeValueStore{data: map[string]string{}}, ttl: time.Hour}
	ctx := context.Background()

	lines := []Line{{ProductID: "p1", Name: "Solar Panel 320W", Price: decimal.RequireFromString("189.00"), Image: "/images/p1.jpg", Qty: 2}}
	require.NoError(t, store.Save(ctx, "sess-1", lines))

	got, err := store.Lines(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ProductID)
	assert.True(t, got[0].Price.Equal(decimal.RequireFromString("189.00")))

	taken, err := store.Take(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, taken, 1)

	after, err := store.Lines(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, after)
}

func TestRedisStoreMissingSessionReadsEmpty(t *testing.T) {
	store := &RedisStore{client: &fakeValueStore{data: map[string]string{}}, ttl: time.Hour}

	got, err := store.Lines(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, got)
}
