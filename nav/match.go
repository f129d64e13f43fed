package nav

import (
	"fmt"
	"maps"
)

// Match binds one route node to a resolved portion of a location.
type Match struct {
	// Route is the matched node.
	Route Node

	// MatchedLocation is the escaped location prefix consumed up to and
	// including this node. Shells report their parent's prefix.
	MatchedLocation string

	// MatchedPath is the template form of MatchedLocation.
	MatchedPath string

	// PageKey identifies this match instance. Location-derived matches use
	// their template path; imperative matches carry a generated key.
	PageKey string

	// Params are the parameters captured by this node alone.
	Params map[string]string

	// sub is the match list an imperative match was resolved from.
	sub *MatchList
	// completion is resolved when an imperative match is removed.
	completion *Completion
}

// NewImperativeMatch wraps a resolved match list into a match that can be
// pushed on top of another list. The completion may be nil.
func NewImperativeMatch(sub *MatchList, pageKey string, completion *Completion) (*Match, error) {
	if sub == nil || sub.IsEmpty() {
		return nil, fmt.Errorf("nav: %w: imperative match needs a non-empty match list", ErrInvariantViolation)
	}
	if pageKey == "" {
		return nil, fmt.Errorf("nav: %w: imperative match needs a page key", ErrInvariantViolation)
	}

	last := sub.Last()
	if isShell(last.Route) {
		return nil, fmt.Errorf("nav: %w: cannot push a shell route", ErrInvariantViolation)
	}

	return &Match{
		Route:           last.Route,
		MatchedLocation: last.MatchedLocation,
		MatchedPath:     last.MatchedPath,
		PageKey:         pageKey,
		Params:          sub.PathParams(),
		sub:             sub,
		completion:      completion,
	}, nil
}

// IsImperative reports whether the match was pushed rather than derived from
// the base location.
func (m *Match) IsImperative() bool {
	return m.sub != nil
}

// MatchList returns the list an imperative match was resolved from, or nil.
func (m *Match) MatchList() *MatchList {
	return m.sub
}

// Completion returns the handle resolved when the match is removed, or nil.
func (m *Match) Completion() *Completion {
	return m.completion
}

// Equal reports whether m and o describe the same match. Completion handles
// are not compared.
func (m *Match) Equal(o *Match) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.Route != o.Route ||
		m.MatchedLocation != o.MatchedLocation ||
		m.MatchedPath != o.MatchedPath ||
		m.PageKey != o.PageKey ||
		!maps.Equal(m.Params, o.Params) {
		return false
	}
	if (m.sub == nil) != (o.sub == nil) {
		return false
	}
	return m.sub == nil || m.sub.Equal(o.sub)
}

// clone returns a deep copy of m. The completion handle is shared.
func (m *Match) clone() *Match {
	c := *m
	c.Params = cloneParams(m.Params)
	if m.sub != nil {
		c.sub = m.sub.Clone()
	}
	return &c
}
