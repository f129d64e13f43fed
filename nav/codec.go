package nav

// Keys of the persisted match list layout.
const (
	// CodecKey is the fixed top-level key of an encoded match list.
	CodecKey = "matchList"

	codecLocationKey   = "location"
	codecStateKey      = "state"
	codecImperativeKey = "imperativeMatches"
	codecPageKeyKey    = "pageKey"
)

// Codec converts match lists to and from a tree made only of maps, slices,
// strings, numbers, booleans and nil, suitable for persisted storage.
//
// Only locations, extras and imperative page keys are stored; decoding runs
// the matcher again. Completion handles of imperative matches cannot be
// restored, and extras that are not primitive trees are stored as nil.
type Codec struct {
	matcher Matcher
}

// NewCodec returns a codec that decodes with matcher.
func NewCodec(matcher Matcher) *Codec {
	return &Codec{matcher: matcher}
}

// Encode returns the primitive tree for l, or nil when l is empty.
func (c *Codec) Encode(l *MatchList) map[string]any {
	if l == nil || l.IsEmpty() {
		return nil
	}

	encoded := map[string]any{
		codecLocationKey: l.Location(),
		codecStateKey:    primitiveOrNil(l.extra),
	}

	var imperative []any
	for _, m := range l.matches {
		if m.sub == nil {
			continue
		}
		imperative = append(imperative, map[string]any{
			codecLocationKey: m.sub.Location(),
			codecStateKey:    primitiveOrNil(m.sub.extra),
			codecPageKeyKey:  m.PageKey,
		})
	}
	if len(imperative) > 0 {
		encoded[codecImperativeKey] = imperative
	}

	return map[string]any{CodecKey: encoded}
}

// Decode rebuilds a match list from a tree produced by Encode. It returns
// nil when the tree is absent or malformed, or when a stored location no
// longer matches the route tree.
func (c *Codec) Decode(tree any) *MatchList {
	root, ok := tree.(map[string]any)
	if !ok {
		return nil
	}
	encoded, ok := root[CodecKey].(map[string]any)
	if !ok {
		return nil
	}
	location, ok := encoded[codecLocationKey].(string)
	if !ok {
		return nil
	}

	base, err := c.matcher.Match(location, encoded[codecStateKey])
	if err != nil {
		return nil
	}

	raw, present := encoded[codecImperativeKey]
	if !present || raw == nil {
		return base
	}
	entries, ok := raw.([]any)
	if !ok {
		return nil
	}

	for _, e := range entries {
		entry, ok := e.(map[string]any)
		if !ok {
			return nil
		}
		loc, ok := entry[codecLocationKey].(string)
		if !ok {
			return nil
		}
		pageKey, ok := entry[codecPageKeyKey].(string)
		if !ok || pageKey == "" {
			return nil
		}

		sub, err := c.matcher.Match(loc, entry[codecStateKey])
		if err != nil {
			return nil
		}
		m, err := NewImperativeMatch(sub, pageKey, nil)
		if err != nil {
			return nil
		}
		if err := base.Push(m); err != nil {
			return nil
		}
	}

	return base
}

// ImperativePageKeys returns the page keys stored in an encoded tree, in
// stack order. Malformed trees yield nil.
func ImperativePageKeys(tree any) []string {
	root, _ := tree.(map[string]any)
	encoded, _ := root[CodecKey].(map[string]any)
	entries, _ := encoded[codecImperativeKey].([]any)

	var keys []string
	for _, e := range entries {
		entry, _ := e.(map[string]any)
		if k, ok := entry[codecPageKeyKey].(string); ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// primitiveOrNil returns v when it is a primitive tree and nil otherwise.
func primitiveOrNil(v any) any {
	if isPrimitive(v) {
		return v
	}
	return nil
}

// isPrimitive reports whether v is made only of nil, booleans, strings,
// numbers, []any and map[string]any.
func isPrimitive(v any) bool {
	switch t := v.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	case []any:
		for _, e := range t {
			if !isPrimitive(e) {
				return false
			}
		}
		return true
	case map[string]any:
		for _, e := range t {
			if !isPrimitive(e) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
