package nav

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	r := familyRouter(t)
	codec := NewCodec(r)

	t.Run("base list", func(t *testing.T) {
		l, err := r.Match("/family/f2/person/p1?tab=info", map[string]any{"from": "list"})
		require.NoError(t, err)

		decoded := codec.Decode(codec.Encode(l))
		require.NotNil(t, decoded)
		assert.True(t, l.Equal(decoded))
		assert.Equal(t, map[string]any{"from": "list"}, decoded.Extra())
	})

	t.Run("with imperative matches", func(t *testing.T) {
		l := mustMatch(t, r, "/family/f1")
		keys := NewPushKeys()

		for _, loc := range []string{"/family/f3/person/p9", "/"} {
			sub := mustMatch(t, r, loc)
			m, err := NewImperativeMatch(sub, keys.Next(sub.FullPath()), NewCompletion())
			require.NoError(t, err)
			require.NoError(t, l.Push(m))
		}

		tree := codec.Encode(l)
		assert.Equal(t, []string{"family/:fid/person/:pid-p1", "root-p1"}, ImperativePageKeys(tree))

		decoded := codec.Decode(tree)
		require.NotNil(t, decoded)
		assert.True(t, l.Equal(decoded))
		assert.Nil(t, decoded.Last().Completion())
		assert.Equal(t, "/", decoded.CurrentLocation())
	})

	t.Run("through json", func(t *testing.T) {
		l := mustMatch(t, r, "/family/f1?x=1")
		sub, err := r.Match("/family/f2", map[string]any{"n": 1.5, "tags": []any{"a"}})
		require.NoError(t, err)
		m, err := NewImperativeMatch(sub, "family/:fid-p1", nil)
		require.NoError(t, err)
		require.NoError(t, l.Push(m))

		raw, err := json.Marshal(codec.Encode(l))
		require.NoError(t, err)

		var tree any
		require.NoError(t, json.Unmarshal(raw, &tree))

		decoded := codec.Decode(tree)
		require.NotNil(t, decoded)
		assert.True(t, l.Equal(decoded))
		assert.Equal(t, map[string]any{"n": 1.5, "tags": []any{"a"}}, decoded.Last().MatchList().Extra())
	})
}

func TestCodecEncode(t *testing.T) {
	r := familyRouter(t)
	codec := NewCodec(r)

	t.Run("layout", func(t *testing.T) {
		l, err := r.Match("/family/f1?x=1", "state")
		require.NoError(t, err)

		assert.Equal(t, map[string]any{
			"matchList": map[string]any{
				"location": "/family/f1?x=1",
				"state":    "state",
			},
		}, codec.Encode(l))
	})

	t.Run("empty list", func(t *testing.T) {
		l := mustMatch(t, r, "/family/f1")
		require.NoError(t, l.Remove(l.Last()))
		assert.Nil(t, codec.Encode(l))
		assert.Nil(t, codec.Encode(nil))
	})

	t.Run("non primitive extra is dropped", func(t *testing.T) {
		type custom struct{ ID int }
		l, err := r.Match("/family/f1", custom{ID: 1})
		require.NoError(t, err)

		tree := codec.Encode(l)
		inner := tree[CodecKey].(map[string]any)
		assert.Contains(t, inner, "state")
		assert.Nil(t, inner["state"])
	})
}

func TestCodecDecode(t *testing.T) {
	codec := NewCodec(familyRouter(t))

	tests := []struct {
		name string
		tree any
	}{
		{"nil", nil},
		{"not a map", "matchList"},
		{"missing key", map[string]any{"other": 1}},
		{"wrong inner type", map[string]any{"matchList": []any{}}},
		{"missing location", map[string]any{"matchList": map[string]any{}}},
		{"location not a string", map[string]any{"matchList": map[string]any{"location": 1}}},
		{"stale location", map[string]any{"matchList": map[string]any{"location": "/nope"}}},
		{"imperative not a list", map[string]any{"matchList": map[string]any{
			"location":          "/",
			"imperativeMatches": "x",
		}}},
		{"imperative without page key", map[string]any{"matchList": map[string]any{
			"location":          "/",
			"imperativeMatches": []any{map[string]any{"location": "/family/f1"}},
		}}},
		{"stale imperative location", map[string]any{"matchList": map[string]any{
			"location":          "/",
			"imperativeMatches": []any{map[string]any{"location": "/nope", "pageKey": "k"}},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, codec.Decode(tt.tree))
		})
	}

	t.Run("null imperative list", func(t *testing.T) {
		l := codec.Decode(map[string]any{"matchList": map[string]any{
			"location":          "/family/f1",
			"state":             nil,
			"imperativeMatches": nil,
		}})
		require.NotNil(t, l)
		assert.Equal(t, "/family/f1", l.Location())
	})
}

func TestIsPrimitive(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want bool
	}{
		{"nil", nil, true},
		{"string", "x", true},
		{"int", 1, true},
		{"float", 1.5, true},
		{"bool", true, true},
		{"nested", map[string]any{"a": []any{1, "b", map[string]any{"c": nil}}}, true},
		{"struct", struct{}{}, false},
		{"typed map", map[string]int{"a": 1}, false},
		{"nested struct", []any{struct{}{}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isPrimitive(tt.v))
		})
	}
}

func BenchmarkCodecRoundTrip(b *testing.B) {
	r := familyRouter(b)
	codec := NewCodec(r)
	l := mustMatch(b, r, "/family/f2/person/p1")

	for b.Loop() {
		codec.Decode(codec.Encode(l))
	}
}
