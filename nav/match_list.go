package nav

import (
	"fmt"
	"maps"
	"net/url"
)

// errorPageKey is the page key of the single match in an error list.
const errorPageKey = "error"

// MatchList is the ordered stack of matches for one navigation tree,
// together with the resolved location and the merged path parameters.
//
// A MatchList is not safe for concurrent use. Use Clone to keep a snapshot
// that must survive later mutation.
type MatchList struct {
	matches    []*Match
	uri        *url.URL
	pathParams map[string]string
	extra      any
	err        error
	isError    bool
}

// NewErrorMatchList returns a one-match list describing a failed navigation
// to location. Its IsError method reports true; the single match has a
// synthetic route without builder that renderers must not build.
func NewErrorMatchList(location string, err error) *MatchList {
	uri, perr := parseLocation(location)
	if perr != nil {
		uri = &url.URL{Path: location}
	}

	return &MatchList{
		matches: []*Match{{
			Route:           &Route{},
			MatchedLocation: uri.EscapedPath(),
			PageKey:         errorPageKey,
			Params:          map[string]string{},
		}},
		uri:        uri,
		pathParams: map[string]string{},
		err:        err,
		isError:    true,
	}
}

// Matches returns a copy of the match sequence.
func (l *MatchList) Matches() []*Match {
	return append([]*Match(nil), l.matches...)
}

// Len returns the number of matches.
func (l *MatchList) Len() int {
	return len(l.matches)
}

// IsEmpty reports whether the list holds no matches.
func (l *MatchList) IsEmpty() bool {
	return len(l.matches) == 0
}

// Last returns the terminal match, or nil for an empty list.
func (l *MatchList) Last() *Match {
	if len(l.matches) == 0 {
		return nil
	}
	return l.matches[len(l.matches)-1]
}

// URI returns a copy of the resolved location of the base matches.
func (l *MatchList) URI() *url.URL {
	return cloneURI(l.uri)
}

// Location returns the resolved location of the base matches.
func (l *MatchList) Location() string {
	if l.uri == nil {
		return ""
	}
	return l.uri.String()
}

// CurrentLocation returns the location of the top-most entry, following
// imperative matches.
func (l *MatchList) CurrentLocation() string {
	if last := l.Last(); last != nil && last.sub != nil {
		return last.sub.CurrentLocation()
	}
	return l.Location()
}

// FullPath returns the template form of the base location: the path
// templates of the leaf matches joined in order. Shells and imperative
// matches contribute nothing.
func (l *MatchList) FullPath() string {
	if l.isError {
		return ""
	}
	return fullPath(l.matches)
}

func fullPath(matches []*Match) string {
	var fp string
	for _, m := range matches {
		if m.sub != nil {
			continue
		}
		if r, ok := m.Route.(*Route); ok {
			fp = joinPaths(fp, r.Path)
		}
	}
	return fp
}

// PathParams returns a copy of the merged path parameters.
func (l *MatchList) PathParams() map[string]string {
	return cloneParams(l.pathParams)
}

// Extra returns the payload supplied with the navigation.
func (l *MatchList) Extra() any {
	return l.extra
}

// Err returns the error carried by an error list.
func (l *MatchList) Err() error {
	return l.err
}

// IsError reports whether the list was built by NewErrorMatchList.
func (l *MatchList) IsError() bool {
	return l.isError
}

// Leaves returns the number of matches that are not shells.
func (l *MatchList) Leaves() int {
	n := 0
	for _, m := range l.matches {
		if !isShell(m.Route) {
			n++
		}
	}
	return n
}

// Push appends m to the list. Shell matches cannot be pushed.
func (l *MatchList) Push(m *Match) error {
	if m == nil {
		return fmt.Errorf("nav: %w: cannot push a nil match", ErrInvariantViolation)
	}
	if isShell(m.Route) {
		return fmt.Errorf("nav: %w: cannot push a shell route", ErrInvariantViolation)
	}
	l.matches = append(l.matches, m)
	return nil
}

// Remove removes m and every match after it, then drops trailing shells
// left without a leaf. The full path, the path parameters and the location
// path are recomputed from the surviving matches; the query is kept.
//
// A completion held by a removed match is not resolved; callers resolve it
// before calling Remove.
func (l *MatchList) Remove(m *Match) error {
	idx := -1
	for i, x := range l.matches {
		if x == m {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("nav: %w: match is not in the list", ErrInvariantViolation)
	}

	n := idx
	for n > 0 && isShell(l.matches[n-1].Route) {
		n--
	}

	// An error list keeps the location it failed on.
	if l.isError {
		clear(l.matches[n:])
		l.matches = l.matches[:n]
		return nil
	}

	params, uri, err := l.derive(l.matches[:n])
	if err != nil {
		return err
	}

	clear(l.matches[n:])
	l.matches = l.matches[:n]
	l.pathParams = params
	l.uri = uri
	return nil
}

// derive computes the parameters and the location of a list holding
// matches. The list itself is left untouched.
func (l *MatchList) derive(matches []*Match) (map[string]string, *url.URL, error) {
	fp := fullPath(matches)

	names, err := ParamNames(fp)
	if err != nil {
		return nil, nil, fmt.Errorf("nav: %w: %w", ErrInvariantViolation, err)
	}

	params := make(map[string]string, len(names))
	for _, name := range names {
		if v, ok := l.pathParams[name]; ok {
			params[name] = v
		}
	}

	path := "/"
	if fp != "" {
		if path, err = ExpandPath(fp, params); err != nil {
			return nil, nil, fmt.Errorf("nav: %w: %w", ErrInvariantViolation, err)
		}
	}

	var rawQuery string
	if l.uri != nil {
		rawQuery = l.uri.RawQuery
	}
	uri, err := newURI(path, rawQuery)
	if err != nil {
		return nil, nil, err
	}

	return params, uri, nil
}

// Clone returns a deep copy of the list. Completion handles are shared with
// the original.
func (l *MatchList) Clone() *MatchList {
	c := &MatchList{
		matches:    make([]*Match, len(l.matches)),
		uri:        cloneURI(l.uri),
		pathParams: cloneParams(l.pathParams),
		extra:      l.extra,
		err:        l.err,
		isError:    l.isError,
	}
	for i, m := range l.matches {
		c.matches[i] = m.clone()
	}
	return c
}

// Equal reports whether l and o hold equal matches, location and path
// parameters.
func (l *MatchList) Equal(o *MatchList) bool {
	if l == nil || o == nil {
		return l == o
	}
	if len(l.matches) != len(o.matches) || l.Location() != o.Location() {
		return false
	}
	if !maps.Equal(l.pathParams, o.pathParams) {
		return false
	}
	for i := range l.matches {
		if !l.matches[i].Equal(o.matches[i]) {
			return false
		}
	}
	return true
}

// NavigatorKey returns the key of the navigator hosting m: the route's
// ParentNavigatorKey if set, otherwise the navigator owned by the nearest
// enclosing shell, otherwise RootNavigatorKey.
func (l *MatchList) NavigatorKey(m *Match) string {
	if r, ok := m.Route.(*Route); ok && r.ParentNavigatorKey != "" {
		return r.ParentNavigatorKey
	}
	if m.sub != nil {
		return m.sub.NavigatorKey(m.sub.Last())
	}

	idx := -1
	for i, x := range l.matches {
		if x == m {
			idx = i
			break
		}
	}

	for i := idx - 1; i >= 0; i-- {
		if !isShell(l.matches[i].Route) {
			continue
		}
		// The shell hosts the node matched right after it.
		if key := l.matches[i].Route.NavigatorKeyFor(l.matches[i+1].Route); key != "" {
			return key
		}
	}

	return RootNavigatorKey
}

// BranchIndex returns the index of the active branch of shell in the list,
// or -1 when the shell is not part of it.
func (l *MatchList) BranchIndex(shell *StatefulShell) int {
	for i, m := range l.matches {
		if m.Route == Node(shell) && i+1 < len(l.matches) {
			return shell.BranchIndex(l.matches[i+1].Route)
		}
	}
	return -1
}
