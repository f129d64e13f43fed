package nav

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletion(t *testing.T) {
	t.Run("resolves once", func(t *testing.T) {
		c := NewCompletion()

		_, ok := c.Result()
		assert.False(t, ok)

		require.NoError(t, c.Complete("first"))
		assert.ErrorIs(t, c.Complete("second"), ErrAlreadyCompleted)

		v, ok := c.Result()
		assert.True(t, ok)
		assert.Equal(t, "first", v)

		select {
		case <-c.Done():
		default:
			t.Fatal("done channel not closed")
		}
	})

	t.Run("wait across goroutines", func(t *testing.T) {
		c := NewCompletion()

		go func() {
			time.Sleep(10 * time.Millisecond)
			_ = c.Complete(42)
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		v, err := c.Wait(ctx)
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	})

	t.Run("wait honors context", func(t *testing.T) {
		c := NewCompletion()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := c.Wait(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("nil result", func(t *testing.T) {
		c := NewCompletion()
		require.NoError(t, c.Complete(nil))

		v, err := c.Wait(context.Background())
		require.NoError(t, err)
		assert.Nil(t, v)
	})
}
