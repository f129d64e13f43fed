package nav

import (
	"fmt"
	"maps"
	"net/url"
	"strings"
)

// joinPaths appends child to parent with exactly one "/" between them.
func joinPaths(parent, child string) string {
	switch {
	case parent == "":
		return child
	case child == "":
		return parent
	case strings.HasSuffix(parent, "/"):
		return parent + strings.TrimPrefix(child, "/")
	default:
		return parent + "/" + strings.TrimPrefix(child, "/")
	}
}

// parseLocation parses a location into a canonical URI holding only a path
// and a query. The path always starts with "/" and has no trailing "/"
// except for the root. Scheme, host and fragment are dropped.
func parseLocation(location string) (*url.URL, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("nav: invalid location %q: %w", location, err)
	}

	escaped := u.EscapedPath()
	if !strings.HasPrefix(escaped, "/") {
		escaped = "/" + escaped
	}
	if len(escaped) > 1 {
		escaped = strings.TrimRight(escaped, "/")
		if escaped == "" {
			escaped = "/"
		}
	}

	return newURI(escaped, u.RawQuery)
}

// newURI builds a URI from an escaped path and a raw query.
func newURI(escapedPath, rawQuery string) (*url.URL, error) {
	p, err := url.PathUnescape(escapedPath)
	if err != nil {
		return nil, fmt.Errorf("nav: invalid path %q: %w", escapedPath, err)
	}

	u := &url.URL{Path: p, RawQuery: rawQuery}
	if u.EscapedPath() != escapedPath {
		u.RawPath = escapedPath
	}
	return u, nil
}

// cloneURI returns a copy of u.
func cloneURI(u *url.URL) *url.URL {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// cloneParams returns a copy of m that is never nil.
func cloneParams(m map[string]string) map[string]string {
	c := make(map[string]string, len(m))
	maps.Copy(c, m)
	return c
}

// firstValues flattens query values to their first value per key.
func firstValues(q url.Values) map[string]string {
	m := make(map[string]string, len(q))
	for k, v := range q {
		if len(v) > 0 {
			m[k] = v[0]
		}
	}
	return m
}
