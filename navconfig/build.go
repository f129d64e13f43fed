package navconfig

import (
	"errors"
	"fmt"

	"github.com/vitalvas/navstack/nav"
)

// Placeholder is the content produced by placeholder builders.
type Placeholder struct {
	// Page is the page or shell name from the route table.
	Page string

	// Child is the wrapped content for shells.
	Child any
}

// Registry resolves page and shell names to builders.
type Registry struct {
	pages        map[string]nav.BuilderFunc
	shells       map[string]nav.ShellBuilderFunc
	placeholders bool
}

// NewRegistry returns an empty registry. Building a table that names an
// unregistered page or shell fails.
func NewRegistry() *Registry {
	return &Registry{
		pages:  make(map[string]nav.BuilderFunc),
		shells: make(map[string]nav.ShellBuilderFunc),
	}
}

// Placeholders returns a registry that resolves every unregistered name to
// a builder producing a Placeholder. Useful for tooling and tests that only
// need the route structure.
func Placeholders() *Registry {
	r := NewRegistry()
	r.placeholders = true
	return r
}

// Page registers the builder of a page.
func (r *Registry) Page(name string, b nav.BuilderFunc) *Registry {
	r.pages[name] = b
	return r
}

// Shell registers the builder of a shell.
func (r *Registry) Shell(name string, b nav.ShellBuilderFunc) *Registry {
	r.shells[name] = b
	return r
}

func (r *Registry) page(name string) (nav.BuilderFunc, error) {
	if b, ok := r.pages[name]; ok {
		return b, nil
	}
	if r.placeholders {
		return func(*nav.RouteState) any { return Placeholder{Page: name} }, nil
	}
	return nil, fmt.Errorf("navconfig: unknown page %q", name)
}

func (r *Registry) shell(name string) (nav.ShellBuilderFunc, error) {
	if name == "" {
		return nil, nil
	}
	if b, ok := r.shells[name]; ok {
		return b, nil
	}
	if r.placeholders {
		return func(_ *nav.RouteState, child any) any { return Placeholder{Page: name, Child: child} }, nil
	}
	return nil, fmt.Errorf("navconfig: unknown shell %q", name)
}

// Build turns a route table into a compiled router. A nil registry is the
// same as Placeholders().
func Build(f *File, reg *Registry) (*nav.Router, error) {
	if reg == nil {
		reg = Placeholders()
	}

	b := &builder{reg: reg}
	nodes := b.nodes(f.Routes)
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}

	return nav.NewRouter(nodes...)
}

type builder struct {
	reg  *Registry
	errs []error
}

func (b *builder) nodes(in []Node) []nav.Node {
	out := make([]nav.Node, 0, len(in))
	for _, n := range in {
		out = append(out, b.node(n))
	}
	return out
}

func (b *builder) node(n Node) nav.Node {
	switch {
	case n.IsStatefulShell():
		s := &nav.StatefulShell{Builder: b.shellBuilder(n.Shell)}
		for _, br := range n.Branches {
			s.Branches = append(s.Branches, &nav.Branch{
				NavigatorKey:    br.NavigatorKey,
				InitialLocation: br.InitialLocation,
				Routes:          b.nodes(br.Routes),
			})
		}
		return s

	case n.IsShell():
		return &nav.Shell{
			NavigatorKey: n.NavigatorKey,
			Builder:      b.shellBuilder(n.Shell),
			Routes:       b.nodes(n.Routes),
		}

	default:
		r := &nav.Route{
			Path:               n.Path,
			Name:               n.Name,
			ParentNavigatorKey: n.ParentNavigatorKey,
			Routes:             b.nodes(n.Routes),
		}
		if n.RedirectTo != "" {
			r.Redirect = redirectTo(n.RedirectTo)
		} else {
			page, err := b.reg.page(n.Page)
			if err != nil {
				b.errs = append(b.errs, err)
			}
			r.Builder = page
		}
		return r
	}
}

func (b *builder) shellBuilder(name string) nav.ShellBuilderFunc {
	s, err := b.reg.shell(name)
	if err != nil {
		b.errs = append(b.errs, err)
	}
	return s
}

// redirectTo returns a redirect to target, a path template expanded with the
// path parameters of the redirecting location.
func redirectTo(target string) nav.RedirectFunc {
	return func(s *nav.RouteState) (string, error) {
		return nav.ExpandPath(target, s.PathParams)
	}
}
