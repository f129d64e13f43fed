package navstore

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()

	cfg := InMemoryConfig()
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	b, err := Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })

	return map[string]Store{
		"memory": NewMemory(),
		"badger": b,
	}
}

func sampleState() map[string]any {
	return map[string]any{
		"matchList": map[string]any{
			"location": "/family/f1?tab=info",
			"state":    map[string]any{"n": 1.5},
			"imperativeMatches": []any{
				map[string]any{"location": "/family/f2", "state": nil, "pageKey": "family/:fid-p1"},
			},
		},
		"pushCounts": map[string]any{"family/:fid": 1.0},
	}
}

func TestStores(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("missing state", func(t *testing.T) {
				_, err := store.Load(ctx, "missing")
				assert.ErrorIs(t, err, ErrNotFound)
			})

			t.Run("save and load", func(t *testing.T) {
				require.NoError(t, store.Save(ctx, "main", sampleState()))

				state, err := store.Load(ctx, "main")
				require.NoError(t, err)
				assert.Equal(t, sampleState(), state)
			})

			t.Run("overwrite", func(t *testing.T) {
				require.NoError(t, store.Save(ctx, "main", map[string]any{"v": "a"}))
				require.NoError(t, store.Save(ctx, "main", map[string]any{"v": "b"}))

				state, err := store.Load(ctx, "main")
				require.NoError(t, err)
				assert.Equal(t, "b", state["v"])
			})

			t.Run("delete", func(t *testing.T) {
				require.NoError(t, store.Save(ctx, "gone", map[string]any{"v": "a"}))
				require.NoError(t, store.Delete(ctx, "gone"))
				require.NoError(t, store.Delete(ctx, "gone"))

				_, err := store.Load(ctx, "gone")
				assert.ErrorIs(t, err, ErrNotFound)
			})

			t.Run("empty id", func(t *testing.T) {
				assert.Error(t, store.Save(ctx, "", map[string]any{}))
			})

			t.Run("unencodable state", func(t *testing.T) {
				assert.Error(t, store.Save(ctx, "bad", map[string]any{"ch": make(chan int)}))
			})

			t.Run("cancelled context", func(t *testing.T) {
				cctx, cancel := context.WithCancel(ctx)
				cancel()

				_, err := store.Load(cctx, "main")
				assert.ErrorIs(t, err, context.Canceled)
				assert.ErrorIs(t, store.Save(cctx, "main", nil), context.Canceled)
				assert.ErrorIs(t, store.Delete(cctx, "main"), context.Canceled)
			})
		})
	}
}

func TestMemoryIsolation(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	state := map[string]any{"v": "a"}
	require.NoError(t, m.Save(ctx, "id", state))
	state["v"] = "changed"

	loaded, err := m.Load(ctx, "id")
	require.NoError(t, err)
	assert.Equal(t, "a", loaded["v"])
	assert.Equal(t, 1, m.Len())
}

func TestBadger(t *testing.T) {
	t.Run("requires path", func(t *testing.T) {
		_, err := Open(Config{})
		assert.Error(t, err)
	})

	t.Run("lists ids", func(t *testing.T) {
		ctx := context.Background()
		b, err := Open(InMemoryConfig())
		require.NoError(t, err)
		defer b.Close()

		require.NoError(t, b.Save(ctx, "b", map[string]any{}))
		require.NoError(t, b.Save(ctx, "a", map[string]any{}))

		ids, err := b.IDs(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, ids)
	})

	t.Run("persists across reopen", func(t *testing.T) {
		ctx := context.Background()
		dir := t.TempDir()

		b, err := Open(DefaultConfig(dir))
		require.NoError(t, err)
		require.NoError(t, b.Save(ctx, "main", sampleState()))
		require.NoError(t, b.Close())

		b, err = Open(DefaultConfig(dir))
		require.NoError(t, err)
		defer b.Close()

		state, err := b.Load(ctx, "main")
		require.NoError(t, err)
		assert.Equal(t, sampleState(), state)
	})
}

func BenchmarkBadgerSave(b *testing.B) {
	store, err := Open(InMemoryConfig())
	if err != nil {
		b.Fatal(err)
	}
	defer store.Close()

	ctx := context.Background()
	state := sampleState()

	for b.Loop() {
		store.Save(ctx, "bench", state) //nolint:errcheck
	}
}
