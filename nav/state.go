package nav

import "net/url"

// RouteState is the per-match view handed to builders and redirects.
type RouteState struct {
	// Location is the full location of the owning match list.
	Location string

	// MatchedLocation is the location prefix consumed by the match.
	MatchedLocation string

	// FullPath is the template form of the owning match list location.
	FullPath string

	// Path is the template of the matched route; empty for shells.
	Path string

	// Name is the name of the matched route, if any.
	Name string

	// PathParams are the merged path parameters of the match list.
	PathParams map[string]string

	// QueryParams holds the first value of each query parameter.
	QueryParams map[string]string

	// QueryParamsAll holds every value of each query parameter.
	QueryParamsAll url.Values

	// Extra is the payload supplied with the navigation.
	Extra any

	// Err is set on error match lists.
	Err error

	// PageKey identifies the match instance.
	PageKey string
}

// State returns the state for m, which must belong to l. Imperative matches
// report the state of the list they were resolved from. A nil m yields the
// list-level state with no match-specific fields.
func (l *MatchList) State(m *Match) *RouteState {
	if m != nil && m.sub != nil {
		inner := m.sub.State(m.sub.Last())
		inner.PageKey = m.PageKey
		return inner
	}

	q := url.Values{}
	if l.uri != nil {
		q = l.uri.Query()
	}

	s := &RouteState{
		Location:       l.Location(),
		FullPath:       l.FullPath(),
		PathParams:     cloneParams(l.pathParams),
		QueryParams:    firstValues(q),
		QueryParamsAll: q,
		Extra:          l.extra,
		Err:            l.err,
	}

	if m != nil {
		s.MatchedLocation = m.MatchedLocation
		s.PageKey = m.PageKey
		if r, ok := m.Route.(*Route); ok {
			s.Path = r.Path
			s.Name = r.Name
		}
	}

	return s
}
