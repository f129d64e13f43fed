package nav

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileRegexp(t *testing.T) {
	t.Run("returns same instance", func(t *testing.T) {
		a, err := compileRegexp(`^cache-[0-9]+$`)
		require.NoError(t, err)
		b, err := compileRegexp(`^cache-[0-9]+$`)
		require.NoError(t, err)
		assert.Same(t, a, b)
	})

	t.Run("invalid pattern", func(t *testing.T) {
		_, err := compileRegexp(`^[0-9$`)
		assert.Error(t, err)
	})
}

func TestCachedPattern(t *testing.T) {
	t.Run("returns same instance", func(t *testing.T) {
		a, err := cachedPattern("/cached/:id")
		require.NoError(t, err)
		b, err := cachedPattern("/cached/:id")
		require.NoError(t, err)
		assert.Same(t, a, b)
	})

	t.Run("errors are not cached", func(t *testing.T) {
		_, err := cachedPattern("/broken/:id/:id")
		require.Error(t, err)

		_, ok := patternCache.Load("/broken/:id/:id")
		assert.False(t, ok)
	})

	t.Run("concurrent access", func(t *testing.T) {
		var wg sync.WaitGroup
		results := make([]*Pattern, 16)

		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				p, err := cachedPattern("/concurrent/:fid/person/:pid")
				if err == nil {
					results[i] = p
				}
			}(i)
		}
		wg.Wait()

		for _, p := range results {
			assert.Same(t, results[0], p)
		}
	})
}

func BenchmarkCachedPattern(b *testing.B) {
	cachedPattern("/family/:fid") //nolint:errcheck

	for b.Loop() {
		cachedPattern("/family/:fid") //nolint:errcheck
	}
}
