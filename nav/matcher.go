package nav

import (
	"fmt"
	"maps"
	"strings"
)

// Matcher resolves a location into a match list.
type Matcher interface {
	Match(location string, extra any) (*MatchList, error)
}

// Match resolves location against the route tree.
//
// Children are tried in declaration order, depth-first, and the first chain
// that consumes the whole location wins. Matching is case-insensitive; path
// parameter values keep their case. The error wraps ErrNoMatch when no chain
// matches.
func (r *Router) Match(location string, extra any) (*MatchList, error) {
	uri, err := parseLocation(location)
	if err != nil {
		return nil, err
	}

	s := &search{params: make(map[string]string)}
	matches := s.find(r.routes, "", "", uri.EscapedPath())
	if matches == nil {
		return nil, fmt.Errorf("nav: %w %q", ErrNoMatch, uri.Path)
	}

	return &MatchList{
		matches:    matches,
		uri:        uri,
		pathParams: s.params,
		extra:      extra,
	}, nil
}

// search carries the parameters merged along the current chain.
type search struct {
	params map[string]string
}

// find returns the first complete chain under nodes for the unconsumed
// remaining location, or nil. matchedLoc and matchedPath describe the
// prefix consumed by ancestors.
func (s *search) find(nodes []Node, matchedLoc, matchedPath, remaining string) []*Match {
	for _, n := range nodes {
		switch v := n.(type) {
		case *Route:
			if m := s.findRoute(v, matchedLoc, matchedPath, remaining); m != nil {
				return m
			}
		default:
			if !isShell(n) {
				continue
			}
			sub := s.find(n.Children(), matchedLoc, matchedPath, remaining)
			if sub == nil {
				continue
			}
			shell := &Match{
				Route:           n,
				MatchedLocation: matchedLoc,
				MatchedPath:     matchedPath,
				PageKey:         "shell-" + n.info().id,
				Params:          map[string]string{},
			}
			return append([]*Match{shell}, sub...)
		}
	}
	return nil
}

// findRoute tries one leaf route and, on a partial match, its children.
func (s *search) findRoute(r *Route, matchedLoc, matchedPath, remaining string) []*Match {
	if r.pattern == nil {
		return nil
	}

	newPath := joinPaths(matchedPath, r.Path)

	if params, ok := r.pattern.MatchExact(remaining); ok {
		maps.Copy(s.params, params)
		return []*Match{s.newMatch(r, joinPaths(matchedLoc, remaining), newPath, params)}
	}

	if len(r.Routes) == 0 {
		return nil
	}

	consumed, params, ok := r.pattern.MatchPrefix(remaining)
	if !ok {
		return nil
	}
	rest := strings.TrimPrefix(remaining[len(consumed):], "/")
	if rest == "" {
		return nil
	}
	newLoc := joinPaths(matchedLoc, consumed)

	sub := s.find(r.Routes, newLoc, newPath, rest)
	if sub == nil {
		return nil
	}

	// Children were merged first; parent values never collide with them
	// because duplicate names are rejected by NewRouter.
	maps.Copy(s.params, params)
	return append([]*Match{s.newMatch(r, newLoc, newPath, params)}, sub...)
}

func (s *search) newMatch(r *Route, loc, path string, params map[string]string) *Match {
	return &Match{
		Route:           r,
		MatchedLocation: loc,
		MatchedPath:     path,
		PageKey:         path,
		Params:          params,
	}
}
