package storage

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	t.Run("get returns ok=false for a missing key", func(t *testing.T) {
		store := NewMemoryStore()

		value, ok, err := store.Get("missing")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, value)
	})

	t.Run("set then get round trips", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Set("key", "value"))

		value, ok, err := store.Get("key")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "value", value)
	})

	t.Run("set overwrites", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Set("key", "first"))
		require.NoError(t, store.Set("key", "second"))

		value, _, err := store.Get("key")
		require.NoError(t, err)
		assert.Equal(t, "second", value)
	})

	t.Run("remove deletes the key", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Set("key", "value"))
		require.NoError(t, store.Remove("key"))

		_, ok, err := store.Get("key")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("concurrent access is safe", func(t *testing.T) {
		store := NewMemoryStore()
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				key := fmt.Sprintf("key-%d", n%4)
				_ = store.Set(key, "value")
				_, _, _ = store.Get(key)
			}(i)
		}
		wg.Wait()
	})
}
