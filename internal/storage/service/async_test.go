package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/secureshare/internal/storage/domain"
)

func TestFileStore_SaveAsync(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("save completes and is readable", func(t *testing.T) {
		handle, err := store.SaveAsync(ctx, 7, []byte("async hello"))
		require.NoError(t, err)

		obj, err := handle.Wait(ctx)
		require.NoError(t, err)

		plaintext, err := store.Read(ctx, 7, obj.Reference)
		require.NoError(t, err)
		assert.Equal(t, []byte("async hello"), plaintext)
	})

	t.Run("save errors surface through the handle", func(t *testing.T) {
		handle, err := store.SaveAsync(ctx, 7, make([]byte, 2*1024*1024))
		require.NoError(t, err)

		_, err = handle.Wait(ctx)
		assert.ErrorIs(t, err, domain.ErrObjectTooLarge)
	})

	t.Run("wait respects its context", func(t *testing.T) {
		handle, err := store.SaveAsync(ctx, 7, []byte("slow enough"))
		require.NoError(t, err)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err = handle.Wait(cancelled)
		assert.ErrorIs(t, err, context.Canceled)

		// The save itself still completes.
		_, err = handle.Wait(ctx)
		assert.NoError(t, err)
	})

	t.Run("many concurrent async saves all land", func(t *testing.T) {
		const saves = 32
		handles := make([]*SaveHandle, saves)
		for i := 0; i < saves; i++ {
			handle, err := store.SaveAsync(ctx, 3, []byte(fmt.Sprintf("async-%d", i)))
			require.NoError(t, err)
			handles[i] = handle
		}

		var wg sync.WaitGroup
		for _, handle := range handles {
			wg.Add(1)
			go func(h *SaveHandle) {
				defer wg.Done()
				waitCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
				defer cancel()
				_, err := h.Wait(waitCtx)
				assert.NoError(t, err)
			}(handle)
		}
		wg.Wait()

		refs, err := store.List(ctx, 3)
		require.NoError(t, err)
		assert.Len(t, refs, saves)
	})
}

func TestFileStore_Close(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("rejects async saves after close", func(t *testing.T) {
		require.NoError(t, store.Close())

		_, err := store.SaveAsync(ctx, 1, []byte("late"))
		assert.ErrorIs(t, err, domain.ErrStoreClosed)
	})

	t.Run("waits for in-flight saves", func(t *testing.T) {
		fresh := newTestStore(t)

		handle, err := fresh.SaveAsync(ctx, 1, []byte("in flight"))
		require.NoError(t, err)
		require.NoError(t, fresh.Close())

		// By the time Close returns the save has finished.
		obj, err := handle.Wait(ctx)
		require.NoError(t, err)
		assert.NotNil(t, obj)
	})
}
