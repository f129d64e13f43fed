package navigator

import "github.com/vitalvas/navstack/nav"

// Page is one entry of the render plan of the current stack.
type Page struct {
	// Key identifies the page across navigations.
	Key string

	// NavigatorKey is the navigator that hosts the page.
	NavigatorKey string

	// Route is the matched node.
	Route nav.Node

	// State is handed to the route builder.
	State *nav.RouteState
}

// Build runs the builder of the page. Shell pages wrap child; a shell
// without builder returns child unchanged. Pages without builder, such as
// the page of an error match list, return nil.
func (p Page) Build(child any) any {
	switch r := p.Route.(type) {
	case *nav.Route:
		if r.Builder != nil {
			return r.Builder(p.State)
		}
	case *nav.Shell:
		if r.Builder != nil {
			return r.Builder(p.State, child)
		}
		return child
	case *nav.StatefulShell:
		if r.Builder != nil {
			return r.Builder(p.State, child)
		}
		return child
	}
	return nil
}

// Pages returns the render plan of the current stack, bottom first.
func (n *Navigator) Pages() []Page {
	matches := n.current.Matches()
	pages := make([]Page, 0, len(matches))

	for _, m := range matches {
		pages = append(pages, Page{
			Key:          m.PageKey,
			NavigatorKey: n.current.NavigatorKey(m),
			Route:        m.Route,
			State:        n.current.State(m),
		})
	}

	return pages
}
