package idempotency

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Claim(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	ctx := context.Background()

	first, err := store.Claim(ctx, "evt-1", time.Hour)
	require.NoError(t, err)
	assert.True(t, first)

	second, err := store.Claim(ctx, "evt-1", time.Hour)
	require.NoError(t, err)
	assert.False(t, second, "segunda entrega da mesma chave deve ser recusada")

	other, err := store.Claim(ctx, "evt-2", time.Hour)
	require.NoError(t, err)
	assert.True(t, other)
}

func TestMemoryStore_Expiration(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	now := time.Date(2025, 8, 7, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	ctx := context.Background()
	ok, _ := store.Claim(ctx, "evt-1", time.Minute)
	require.True(t, ok)

	now = now.Add(2 * time.Minute)
	ok, _ = store.Claim(ctx, "evt-1", time.Minute)
	assert.True(t, ok, "chave expirada pode ser registrada novamente")

	now = now.Add(2 * time.Minute)
	store.purge()
	assert.Equal(t, 0, store.Size())
}

func TestMemoryStore_Release(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	ctx := context.Background()
	_, _ = store.Claim(ctx, "evt-1", time.Hour)
	require.NoError(t, store.Release(ctx, "evt-1"))

	ok, err := store.Claim(ctx, "evt-1", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStore_ConcurrentClaims(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	var accepted int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := store.Claim(context.Background(), "same-key", time.Hour); ok {
				atomic.AddInt32(&accepted, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), accepted)
}

func TestMemoryStore_CloseTwice(t *testing.T) {
	store := NewMemoryStore()
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}
