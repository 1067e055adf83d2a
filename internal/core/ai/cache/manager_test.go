package cache

import (
	"context"
	"testing"
	"time"

	"fridge-recipes/internal/infrastructure/config"
	"fridge-recipes/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func TestManagerSetGet(t *testing.T) {
	m := newManager(10, time.Minute, time.Now)
	ctx := context.Background()

	_, err := m.Get(ctx, "prompt", "")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, m.Set(ctx, "prompt", "", "answer"))
	val, err := m.Get(ctx, "prompt", "")
	require.NoError(t, err)
	assert.Equal(t, "answer", val)

	_, err = m.Get(ctx, "prompt", "data:image/png;base64,AAAA")
	assert.ErrorIs(t, err, ErrCacheMiss, "image participates in the key")

	stats := m.GetStats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(2), stats.Misses)
	assert.Equal(t, 1, stats.Size)
}

func TestManagerExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := newManager(10, time.Minute, clock.Now)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "p", "", "v"))
	clock.t = clock.t.Add(2 * time.Minute)

	_, err := m.Get(ctx, "p", "")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Equal(t, 0, m.GetStats().Size)
}

func TestManagerEvictsLeastUsed(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := newManager(2, time.Hour, clock.Now)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "a", "", "1"))
	clock.t = clock.t.Add(time.Second)
	require.NoError(t, m.Set(ctx, "b", "", "2"))

	_, err := m.Get(ctx, "a", "")
	require.NoError(t, err)

	clock.t = clock.t.Add(time.Second)
	require.NoError(t, m.Set(ctx, "c", "", "3"))

	_, err = m.Get(ctx, "b", "")
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = m.Get(ctx, "a", "")
	assert.NoError(t, err)
	_, err = m.Get(ctx, "c", "")
	assert.NoError(t, err)
}

func TestManagerZeroCapacityIsFull(t *testing.T) {
	m := newManager(0, time.Hour, time.Now)
	err := m.Set(context.Background(), "a", "", "1")
	assert.ErrorIs(t, err, common.ErrCacheFull)
}

func TestNewDisabled(t *testing.T) {
	store, err := New(config.CacheConfig{Enabled: false})
	require.NoError(t, err)
	assert.Nil(t, store)
}

func TestNewMemoryBackend(t *testing.T) {
	store, err := New(config.CacheConfig{
		Enabled: true, Backend: "memory", MaxSize: 4, TTL: time.Minute,
	})
	require.NoError(t, err)
	require.NotNil(t, store)
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

func TestKeySeparatesImage(t *testing.T) {
	assert.NotEqual(t, Key("p", ""), Key("p", "img"))
	assert.Equal(t, Key("p", "img"), Key("p", "img"))
}
