package nav

import (
	"maps"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// KeyFunc returns a fresh page key for an imperative push of fullPath.
type KeyFunc func(fullPath string) string

// PushKeys issues page keys for imperative pushes. Keys are derived from the
// pushed full path and a per-path counter, so pushing "/x" three times yields
// "x-p1", "x-p2" and "x-p3".
//
// PushKeys is owned by one navigation controller and is not safe for
// concurrent use.
type PushKeys struct {
	counts map[string]int
}

// NewPushKeys returns a key issuer with all counters at zero.
func NewPushKeys() *PushKeys {
	return &PushKeys{counts: make(map[string]int)}
}

// Next increments the counter of fullPath and returns the new key.
func (k *PushKeys) Next(fullPath string) string {
	base := keyBase(fullPath)
	k.counts[base]++
	return base + "-p" + strconv.Itoa(k.counts[base])
}

// Observe raises the counter of a key's path so that later keys never
// collide with it. Keys not produced by Next are ignored.
func (k *PushKeys) Observe(key string) {
	i := strings.LastIndex(key, "-p")
	if i < 0 {
		return
	}
	n, err := strconv.Atoi(key[i+2:])
	if err != nil || n <= 0 {
		return
	}
	if base := key[:i]; n > k.counts[base] {
		k.counts[base] = n
	}
}

// Snapshot returns a copy of the counters keyed by path base.
func (k *PushKeys) Snapshot() map[string]int {
	return maps.Clone(k.counts)
}

// Load merges counters from a persisted snapshot. It accepts map[string]int
// and the map[string]any form produced by JSON decoding; counters only grow.
func (k *PushKeys) Load(snapshot any) {
	switch s := snapshot.(type) {
	case map[string]int:
		for base, n := range s {
			k.raise(base, n)
		}
	case map[string]any:
		for base, v := range s {
			switch n := v.(type) {
			case int:
				k.raise(base, n)
			case int64:
				k.raise(base, int(n))
			case float64:
				k.raise(base, int(n))
			}
		}
	}
}

func (k *PushKeys) raise(base string, n int) {
	if n > k.counts[base] {
		k.counts[base] = n
	}
}

// UUIDKey is a KeyFunc that suffixes the path base with a random UUID
// instead of a counter. It needs no persisted counters.
func UUIDKey(fullPath string) string {
	return keyBase(fullPath) + "-" + uuid.NewString()
}

// keyBase strips the leading "/" from fullPath; the root path maps to "root".
func keyBase(fullPath string) string {
	base := strings.TrimPrefix(fullPath, "/")
	if base == "" {
		return "root"
	}
	return base
}
