package nav

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// WalkFunc is the type of the function called for each node visited by Walk.
// It receives the node, the template of the location matched so far
// (the node's own full path for leaf routes) and the ancestors that led to it.
type WalkFunc func(node Node, fullPath string, ancestors []Node) error

// Router holds a validated, compiled route tree. It is immutable and safe for
// concurrent use once built.
type Router struct {
	routes []Node
	named  map[string]*Route
}

// NewRouter validates the route tree, compiles every path template and
// indexes named routes. All problems found are reported together.
//
// The tree must not be modified after it has been passed to NewRouter.
func NewRouter(routes ...Node) (*Router, error) {
	if len(routes) == 0 {
		return nil, errors.New("nav: at least one route is required")
	}

	b := &treeBuilder{
		named: make(map[string]*Route),
		seen:  make(map[Node]bool),
	}
	b.build(routes, "", "", false, nil)

	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}

	return &Router{
		routes: routes,
		named:  b.named,
	}, nil
}

// Routes returns the top-level nodes.
func (r *Router) Routes() []Node {
	return r.routes
}

// Get returns the route registered with the given name, or nil.
func (r *Router) Get(name string) *Route {
	return r.named[name]
}

// Location builds a concrete location for the route named name. Query values
// are appended in encoded form.
func (r *Router) Location(name string, params map[string]string, query url.Values) (string, error) {
	route := r.named[name]
	if route == nil {
		return "", fmt.Errorf("nav: %w %q", ErrUnknownRoute, name)
	}

	loc, err := ExpandPath(route.FullPath(), params)
	if err != nil {
		return "", err
	}

	if len(query) > 0 {
		loc += "?" + query.Encode()
	}

	return loc, nil
}

// Walk walks the route tree depth-first in declaration order, calling walkFn
// for each node. Returning SkipChildren from walkFn skips the node's
// children; any other error stops the walk and is returned.
func (r *Router) Walk(walkFn WalkFunc) error {
	return walk(r.routes, "", nil, walkFn)
}

func walk(nodes []Node, fullPath string, ancestors []Node, walkFn WalkFunc) error {
	for _, n := range nodes {
		p := fullPath
		if route, ok := n.(*Route); ok {
			p = route.FullPath()
		}

		err := walkFn(n, p, ancestors)
		if errors.Is(err, SkipChildren) {
			continue
		}
		if err != nil {
			return err
		}

		if err := walk(n.Children(), p, append(ancestors[:len(ancestors):len(ancestors)], n), walkFn); err != nil {
			return err
		}
	}
	return nil
}

// treeBuilder accumulates state while NewRouter validates a tree.
type treeBuilder struct {
	named map[string]*Route
	seen  map[Node]bool
	errs  []error
}

func (b *treeBuilder) fail(format string, args ...any) {
	b.errs = append(b.errs, fmt.Errorf("nav: "+format, args...))
}

// build validates and compiles nodes. nested is set below a leaf route;
// params holds the parameter names declared by leaf ancestors.
func (b *treeBuilder) build(nodes []Node, idPrefix, fullPath string, nested bool, params []string) {
	for i, n := range nodes {
		id := strconv.Itoa(i)
		if idPrefix != "" {
			id = idPrefix + "." + id
		}

		if n == nil {
			b.fail("nil route at %s", id)
			continue
		}
		if b.seen[n] {
			b.fail("route at %s is used more than once in the tree", id)
			continue
		}
		b.seen[n] = true

		switch v := n.(type) {
		case *Route:
			b.buildRoute(v, id, fullPath, nested, params)
		case *Shell:
			v.meta = nodeInfo{id: id, fullPath: fullPath}
			if v.NavigatorKey == "" {
				v.NavigatorKey = "shell-" + id
			}
			if len(v.Routes) == 0 {
				b.fail("shell at %s has no routes", id)
			}
			b.build(v.Routes, id, fullPath, nested, params)
		case *StatefulShell:
			b.buildStatefulShell(v, id, fullPath, nested, params)
		default:
			b.fail("unsupported node type %T at %s", n, id)
		}
	}
}

func (b *treeBuilder) buildRoute(r *Route, id, parentPath string, nested bool, params []string) {
	r.meta = nodeInfo{id: id, fullPath: joinPaths(parentPath, r.Path)}

	switch {
	case r.Path == "":
		b.fail("route at %s has an empty path", id)
		return
	case !nested && !strings.HasPrefix(r.Path, "/"):
		b.fail("top-level route path %q must start with \"/\"", r.Path)
	case nested && strings.HasPrefix(r.Path, "/"):
		b.fail("nested route path %q must not start with \"/\"", r.Path)
	case r.Path != "/" && strings.HasSuffix(r.Path, "/"):
		b.fail("route path %q must not end with \"/\"", r.Path)
	}

	if (r.Builder == nil) == (r.Redirect == nil) {
		b.fail("route %q must set exactly one of Builder and Redirect", r.Path)
	}

	p, err := Compile(r.Path)
	if err != nil {
		b.errs = append(b.errs, err)
		return
	}
	r.pattern = p

	names := p.Names()
	for _, name := range names {
		for _, inherited := range params {
			if name == inherited {
				b.fail("duplicated route parameter %q in %q", name, r.meta.fullPath)
			}
		}
	}

	if r.Name != "" {
		if other, ok := b.named[r.Name]; ok {
			b.fail("duplicated route name %q for %q and %q", r.Name, other.FullPath(), r.meta.fullPath)
		} else {
			b.named[r.Name] = r
		}
	}

	b.build(r.Routes, id, r.meta.fullPath, true, append(params[:len(params):len(params)], names...))
}

func (b *treeBuilder) buildStatefulShell(s *StatefulShell, id, fullPath string, nested bool, params []string) {
	s.meta = nodeInfo{id: id, fullPath: fullPath}
	if len(s.Branches) == 0 {
		b.fail("stateful shell at %s has no branches", id)
		return
	}

	var children []Node
	for bi, branch := range s.Branches {
		if branch == nil {
			b.fail("stateful shell at %s has a nil branch %d", id, bi)
			continue
		}
		if branch.NavigatorKey == "" {
			branch.NavigatorKey = fmt.Sprintf("branch-%s-%d", id, bi)
		}
		if len(branch.Routes) == 0 {
			b.fail("branch %d of stateful shell at %s has no routes", bi, id)
			continue
		}

		b.build(branch.Routes, id+"."+strconv.Itoa(bi), fullPath, nested, params)
		children = append(children, branch.Routes...)

		if branch.InitialLocation == "" {
			loc, err := defaultLocation(branch.Routes)
			if err != nil {
				b.fail("branch %d of stateful shell at %s needs an initial location: %v", bi, id, err)
				continue
			}
			branch.InitialLocation = loc
		}
	}
	s.children = children
}

// defaultLocation returns the location of the first leaf route reachable
// through nodes, which must not declare parameters.
func defaultLocation(nodes []Node) (string, error) {
	for _, n := range nodes {
		if r, ok := n.(*Route); ok {
			if r.pattern == nil {
				return "", errors.New("route did not compile")
			}
			return ExpandPath(r.FullPath(), nil)
		}
		if loc, err := defaultLocation(n.Children()); err == nil {
			return loc, nil
		}
	}
	return "", errors.New("no routes")
}
