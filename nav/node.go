package nav

// RootNavigatorKey identifies the top-level navigator. Matches that are not
// wrapped by any shell belong to it.
const RootNavigatorKey = "root"

// BuilderFunc produces the content for a matched leaf route. The returned
// value is opaque to this package.
type BuilderFunc func(state *RouteState) any

// ShellBuilderFunc produces the content wrapping the child content of a shell.
type ShellBuilderFunc func(state *RouteState, child any) any

// RedirectFunc decides whether navigation to the state's location must go
// elsewhere. It returns the new location, or an empty string to stay.
type RedirectFunc func(state *RouteState) (string, error)

// Node is one entry of a route tree: a leaf *Route, a *Shell or a
// *StatefulShell.
type Node interface {
	// Children returns the child nodes in match priority order.
	Children() []Node

	// ConsumesPath reports whether the node consumes a portion of the
	// location. Shell nodes are pass-through.
	ConsumesPath() bool

	// NavigatorKeyFor returns the key of the sub-navigator that hosts the
	// given direct child, or an empty string if the node does not own one.
	NavigatorKeyFor(child Node) string

	// info returns the data derived by NewRouter.
	info() *nodeInfo
}

// nodeInfo holds what NewRouter derives for every node.
type nodeInfo struct {
	// id is the dotted index path of the node, e.g. "0.2.1".
	id string
	// fullPath is the template of the node joined with its leaf ancestors.
	fullPath string
}

// Route is a leaf route that binds a path template to content.
//
// Exactly one of Builder and Redirect must be set.
type Route struct {
	// Path is the template matched by this route. Top-level routes start
	// with "/"; nested routes are relative and must not.
	Path string

	// Name optionally identifies the route for reverse routing. Names are
	// unique across the tree.
	Name string

	// Builder produces the page content.
	Builder BuilderFunc

	// Redirect sends navigation elsewhere.
	Redirect RedirectFunc

	// ParentNavigatorKey places the route on a specific navigator instead
	// of the one owned by the nearest enclosing shell.
	ParentNavigatorKey string

	// Routes are the nested routes.
	Routes []Node

	pattern *Pattern
	meta    nodeInfo
}

// Children implements Node.
func (r *Route) Children() []Node { return r.Routes }

// ConsumesPath implements Node.
func (r *Route) ConsumesPath() bool { return true }

// NavigatorKeyFor implements Node. Leaf routes do not own a navigator.
func (r *Route) NavigatorKeyFor(Node) string { return "" }

// Pattern returns the compiled path template, or nil before NewRouter.
func (r *Route) Pattern() *Pattern { return r.pattern }

// FullPath returns the template of the route joined with its ancestors.
func (r *Route) FullPath() string { return r.meta.fullPath }

func (r *Route) info() *nodeInfo { return &r.meta }

// Shell wraps its children with shared content and hosts them on a
// dedicated navigator. It contributes no path segment.
type Shell struct {
	// NavigatorKey identifies the navigator hosting the children.
	// NewRouter assigns "shell-<id>" when empty.
	NavigatorKey string

	// Builder wraps the child content.
	Builder ShellBuilderFunc

	// Routes are the wrapped routes; at least one is required.
	Routes []Node

	meta nodeInfo
}

// Children implements Node.
func (s *Shell) Children() []Node { return s.Routes }

// ConsumesPath implements Node.
func (s *Shell) ConsumesPath() bool { return false }

// NavigatorKeyFor implements Node. All children share the shell navigator.
func (s *Shell) NavigatorKeyFor(Node) string { return s.NavigatorKey }

func (s *Shell) info() *nodeInfo { return &s.meta }

// Branch is one independently navigable stack of a StatefulShell.
type Branch struct {
	// NavigatorKey identifies the navigator of the branch.
	// NewRouter assigns "branch-<id>-<index>" when empty.
	NavigatorKey string

	// InitialLocation is where GoBranch navigates when the branch has no
	// saved state. Defaults to the full path of the first leaf route in
	// the branch, which must then have no parameters.
	InitialLocation string

	// Routes are the routes of the branch; at least one is required.
	Routes []Node
}

// StatefulShell is a shell whose children are split into branches, each with
// its own navigator and preserved navigation state.
type StatefulShell struct {
	// Builder wraps the content of the active branch.
	Builder ShellBuilderFunc

	// Branches are the branches in order; at least one is required.
	Branches []*Branch

	children []Node
	meta     nodeInfo
}

// Children implements Node. It returns the routes of all branches in order.
func (s *StatefulShell) Children() []Node {
	if s.children != nil {
		return s.children
	}
	var all []Node
	for _, b := range s.Branches {
		all = append(all, b.Routes...)
	}
	return all
}

// ConsumesPath implements Node.
func (s *StatefulShell) ConsumesPath() bool { return false }

// NavigatorKeyFor implements Node. It returns the key of the branch that
// contains child.
func (s *StatefulShell) NavigatorKeyFor(child Node) string {
	if i := s.BranchIndex(child); i >= 0 {
		return s.Branches[i].NavigatorKey
	}
	return ""
}

// BranchIndex returns the index of the branch whose routes include child,
// or -1.
func (s *StatefulShell) BranchIndex(child Node) int {
	for i, b := range s.Branches {
		for _, n := range b.Routes {
			if n == child {
				return i
			}
		}
	}
	return -1
}

func (s *StatefulShell) info() *nodeInfo { return &s.meta }

// isShell reports whether n is a pass-through shell node.
func isShell(n Node) bool {
	return n != nil && !n.ConsumesPath()
}
