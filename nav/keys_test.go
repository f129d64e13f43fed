package nav

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushKeys(t *testing.T) {
	t.Run("same path increments", func(t *testing.T) {
		k := NewPushKeys()
		assert.Equal(t, "x-p1", k.Next("/x"))
		assert.Equal(t, "x-p2", k.Next("/x"))
		assert.Equal(t, "x-p3", k.Next("/x"))
	})

	t.Run("paths count separately", func(t *testing.T) {
		k := NewPushKeys()
		assert.Equal(t, "x-p1", k.Next("/x"))
		assert.Equal(t, "family/:fid-p1", k.Next("/family/:fid"))
		assert.Equal(t, "x-p2", k.Next("/x"))
		assert.Equal(t, "root-p1", k.Next("/"))
	})

	t.Run("instances are independent", func(t *testing.T) {
		a, b := NewPushKeys(), NewPushKeys()
		a.Next("/x")
		a.Next("/x")
		assert.Equal(t, "x-p1", b.Next("/x"))
	})

	t.Run("observe raises counters", func(t *testing.T) {
		k := NewPushKeys()
		k.Observe("x-p7")
		k.Observe("x-p3")
		k.Observe("garbage")
		k.Observe("y-pz")
		assert.Equal(t, "x-p8", k.Next("/x"))
		assert.Equal(t, "y-p1", k.Next("/y"))
	})

	t.Run("snapshot and load", func(t *testing.T) {
		k := NewPushKeys()
		k.Next("/x")
		k.Next("/x")
		snap := k.Snapshot()
		assert.Equal(t, map[string]int{"x": 2}, snap)

		snap["x"] = 100
		assert.Equal(t, "x-p3", k.Next("/x"))

		restored := NewPushKeys()
		restored.Load(map[string]any{"x": float64(3), "y": 1, "bad": "z"})
		assert.Equal(t, "x-p4", restored.Next("/x"))
		assert.Equal(t, "y-p2", restored.Next("/y"))
		assert.Equal(t, "bad-p1", restored.Next("/bad"))

		restored.Load(map[string]int{"x": 1})
		assert.Equal(t, "x-p5", restored.Next("/x"))

		restored.Load(nil)
		assert.Equal(t, "x-p6", restored.Next("/x"))
	})
}

func TestUUIDKey(t *testing.T) {
	key := UUIDKey("/family/:fid")
	require.True(t, strings.HasPrefix(key, "family/:fid-"))

	_, err := uuid.Parse(strings.TrimPrefix(key, "family/:fid-"))
	assert.NoError(t, err)
	assert.NotEqual(t, key, UUIDKey("/family/:fid"))
}

func BenchmarkPushKeysNext(b *testing.B) {
	k := NewPushKeys()

	for b.Loop() {
		k.Next("/family/:fid/person/:pid")
	}
}
