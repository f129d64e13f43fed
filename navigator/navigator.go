// Package navigator drives a nav.MatchList through navigation operations.
//
// A Navigator owns one match list. Go replaces the whole stack, Push adds a
// page on top, Pop removes the top page and resolves its completion handle.
// Every navigation runs redirects, records the state of stateful shell
// branches, persists the stack when a store is configured and notifies the
// observers.
//
// A Navigator is not safe for concurrent use.
package navigator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net/url"
	"slices"
	"strings"

	"github.com/vitalvas/navstack/nav"
	"github.com/vitalvas/navstack/navstore"
)

// pushCountsKey stores the push key counters next to the encoded match list.
const pushCountsKey = "pushCounts"

// branchRef identifies one branch of a stateful shell.
type branchRef struct {
	shell *nav.StatefulShell
	index int
}

// Navigator is a navigation controller for one route tree.
type Navigator struct {
	cfg      Config
	router   *nav.Router
	codec    *nav.Codec
	keys     *nav.PushKeys
	keyFunc  nav.KeyFunc
	logger   *slog.Logger
	current  *nav.MatchList
	branches map[branchRef]*nav.MatchList
}

// New creates a navigator. When cfg has a store and a restoration id, the
// persisted stack is restored; otherwise, or when the persisted stack no
// longer matches the route tree, it navigates to cfg.InitialLocation.
func New(ctx context.Context, cfg Config) (*Navigator, error) {
	if cfg.Router == nil {
		return nil, errors.New("navigator: router is required")
	}
	cfg = cfg.withDefaults()

	n := &Navigator{
		cfg:      cfg,
		router:   cfg.Router,
		codec:    nav.NewCodec(cfg.Router),
		keys:     nav.NewPushKeys(),
		logger:   cfg.Logger,
		branches: make(map[branchRef]*nav.MatchList),
	}

	n.keyFunc = cfg.KeyFunc
	if n.keyFunc == nil {
		n.keyFunc = n.keys.Next
	}

	if n.restore(ctx) {
		return n, nil
	}

	l, redirects := n.resolve(cfg.InitialLocation, cfg.InitialExtra)
	n.commit(ctx, KindGo, l, redirects)

	return n, nil
}

// Current returns a snapshot of the match list.
func (n *Navigator) Current() *nav.MatchList {
	return n.current.Clone()
}

// Location returns the location of the top-most page.
func (n *Navigator) Location() string {
	return n.current.CurrentLocation()
}

// CanPop reports whether Pop would remove a page. An error list has nothing
// to pop.
func (n *Navigator) CanPop() bool {
	return !n.current.IsError() && n.current.Leaves() > 1
}

// Go replaces the whole stack with the pages matched by location. When the
// location cannot be resolved the stack becomes an error match list and
// its error is returned.
func (n *Navigator) Go(ctx context.Context, location string, extra any) error {
	l, redirects := n.resolve(location, extra)
	n.commit(ctx, KindGo, l, redirects)
	return l.Err()
}

// GoNamed is like Go for the location of a named route.
func (n *Navigator) GoNamed(ctx context.Context, name string, params map[string]string, query url.Values, extra any) error {
	loc, err := n.router.Location(name, params, query)
	if err != nil {
		return err
	}
	return n.Go(ctx, loc, extra)
}

// Push resolves location and adds it on top of the stack. The returned
// completion is resolved with the result passed to Pop, or with nil when the
// page is replaced. A location that cannot be resolved leaves the stack
// unchanged.
//
// Pushing while the stack is an error list replaces it as with Go and
// returns a nil completion.
func (n *Navigator) Push(ctx context.Context, location string, extra any) (*nav.Completion, error) {
	sub, redirects := n.resolve(location, extra)
	if sub.IsError() {
		n.reject(KindPush, redirects, sub.Err())
		return nil, sub.Err()
	}

	if n.current.IsError() {
		n.commit(ctx, KindPush, sub, redirects)
		return nil, nil
	}

	next := n.current.Clone()
	done, err := n.pushOnto(next, sub, "")
	if err != nil {
		return nil, err
	}

	n.commit(ctx, KindPush, next, redirects)
	return done, nil
}

// PushNamed is like Push for the location of a named route.
func (n *Navigator) PushNamed(ctx context.Context, name string, params map[string]string, query url.Values, extra any) (*nav.Completion, error) {
	loc, err := n.router.Location(name, params, query)
	if err != nil {
		return nil, err
	}
	return n.Push(ctx, loc, extra)
}

// PushReplacement replaces the top-most page with the pages matched by
// location under a new page key. The completion of the replaced page is
// resolved with nil.
//
// When the top-most page is the only one, the stack is replaced as with Go
// and the returned completion is nil.
func (n *Navigator) PushReplacement(ctx context.Context, location string, extra any) (*nav.Completion, error) {
	return n.replace(ctx, KindPushReplacement, location, extra, false)
}

// Replace is like PushReplacement but the new page keeps the page key of
// the replaced one.
func (n *Navigator) Replace(ctx context.Context, location string, extra any) (*nav.Completion, error) {
	return n.replace(ctx, KindReplace, location, extra, true)
}

func (n *Navigator) replace(ctx context.Context, kind Kind, location string, extra any, keepKey bool) (*nav.Completion, error) {
	sub, redirects := n.resolve(location, extra)
	if sub.IsError() {
		n.reject(kind, redirects, sub.Err())
		return nil, sub.Err()
	}

	next := n.current.Clone()
	last := next.Last()

	if !n.CanPop() {
		complete(n.logger, last, nil)
		n.commit(ctx, kind, sub, redirects)
		return nil, nil
	}

	var key string
	if keepKey {
		key = last.PageKey
	}
	if err := next.Remove(last); err != nil {
		return nil, err
	}

	done, err := n.pushOnto(next, sub, key)
	if err != nil {
		return nil, err
	}
	complete(n.logger, last, nil)

	n.commit(ctx, kind, next, redirects)
	return done, nil
}

// Pop removes the top-most page and resolves its completion with result.
func (n *Navigator) Pop(ctx context.Context, result any) error {
	if !n.CanPop() {
		return fmt.Errorf("navigator: %w", ErrNothingToPop)
	}

	next := n.current.Clone()
	last := next.Last()
	if err := next.Remove(last); err != nil {
		return err
	}
	complete(n.logger, last, result)

	n.commit(ctx, KindPop, next, 0)
	return nil
}

// GoBranch switches to branch index of shell. The branch comes back with the
// stack it had when it was last shown, or starts at its initial location.
func (n *Navigator) GoBranch(ctx context.Context, shell *nav.StatefulShell, index int) error {
	if shell == nil || index < 0 || index >= len(shell.Branches) {
		return fmt.Errorf("navigator: %w %d", ErrInvalidBranch, index)
	}

	if saved, ok := n.branches[branchRef{shell: shell, index: index}]; ok {
		n.commit(ctx, KindBranch, saved.Clone(), 0)
		return nil
	}

	l, redirects := n.resolve(shell.Branches[index].InitialLocation, nil)
	n.commit(ctx, KindBranch, l, redirects)
	return l.Err()
}

// BranchIndex returns the active branch of shell, or -1 when the shell is
// not part of the current stack.
func (n *Navigator) BranchIndex(shell *nav.StatefulShell) int {
	return n.current.BranchIndex(shell)
}

// ClearState deletes the persisted state. The in-memory stack is kept and
// saved again by the next navigation.
func (n *Navigator) ClearState(ctx context.Context) error {
	if !n.cfg.persistent() {
		return nil
	}
	return n.cfg.Store.Delete(ctx, n.cfg.RestorationID)
}

// pushOnto pushes sub onto l as an imperative match. An empty key is
// generated from the full path of sub.
func (n *Navigator) pushOnto(l, sub *nav.MatchList, key string) (*nav.Completion, error) {
	if key == "" {
		key = n.keyFunc(sub.FullPath())
	}

	done := nav.NewCompletion()
	m, err := nav.NewImperativeMatch(sub, key, done)
	if err != nil {
		return nil, err
	}
	if err := l.Push(m); err != nil {
		return nil, err
	}
	return done, nil
}

// resolve matches location and follows redirects. Failures yield an error
// match list. The second result is the number of redirects followed.
func (n *Navigator) resolve(location string, extra any) (*nav.MatchList, int) {
	limit := max(n.cfg.RedirectLimit, 0)
	var visited []string

	for {
		l, err := n.router.Match(location, extra)
		if err != nil {
			return nav.NewErrorMatchList(location, err), len(visited)
		}

		loc := l.Location()
		if slices.Contains(visited, loc) {
			err := fmt.Errorf("navigator: %w: %s", ErrRedirectLoop, strings.Join(append(visited, loc), " -> "))
			return nav.NewErrorMatchList(location, err), len(visited)
		}
		visited = append(visited, loc)

		next, err := n.redirect(l)
		if err != nil {
			return nav.NewErrorMatchList(location, fmt.Errorf("navigator: %w from %q: %w", ErrRedirectFailed, loc, err)), len(visited) - 1
		}

		if next == "" {
			if r, ok := l.Last().Route.(*nav.Route); ok && r.Builder == nil {
				err := fmt.Errorf("navigator: %w: %q", ErrNoBuilder, r.FullPath())
				return nav.NewErrorMatchList(location, err), len(visited) - 1
			}
			return l, len(visited) - 1
		}

		if len(visited) > limit {
			err := fmt.Errorf("navigator: %w: limit %d reached at %q", ErrRedirectLimit, limit, loc)
			return nav.NewErrorMatchList(location, err), len(visited) - 1
		}

		n.logger.Debug("redirecting", slog.String("from", loc), slog.String("to", next))
		location = next
	}
}

// redirect asks the top-level redirect and then every route redirect of l,
// in match order, for a new location.
func (n *Navigator) redirect(l *nav.MatchList) (string, error) {
	if n.cfg.Redirect != nil {
		next, err := n.cfg.Redirect(l.State(l.Last()))
		if err != nil || next != "" {
			return next, err
		}
	}

	for _, m := range l.Matches() {
		r, ok := m.Route.(*nav.Route)
		if !ok || r.Redirect == nil {
			continue
		}
		next, err := r.Redirect(l.State(m))
		if err != nil || next != "" {
			return next, err
		}
	}

	return "", nil
}

// commit makes l the current stack and runs the post-navigation steps.
func (n *Navigator) commit(ctx context.Context, kind Kind, l *nav.MatchList, redirects int) {
	var previous string
	if n.current != nil {
		previous = n.current.CurrentLocation()
	}

	n.current = l
	n.captureBranches()
	n.persist(ctx)

	loc := l.CurrentLocation()
	if err := l.Err(); err != nil {
		n.logger.Debug("navigation failed",
			slog.String("kind", string(kind)),
			slog.String("location", loc),
			slog.String("error", err.Error()),
		)
	} else {
		n.logger.Debug("navigated",
			slog.String("kind", string(kind)),
			slog.String("location", loc),
			slog.Int("depth", l.Leaves()),
			slog.Int("redirects", redirects),
		)
	}

	n.notify(Event{
		Kind:      kind,
		Location:  loc,
		Previous:  previous,
		Matches:   l.Clone(),
		Redirects: redirects,
		Err:       l.Err(),
	})
}

// reject reports a navigation that left the stack unchanged.
func (n *Navigator) reject(kind Kind, redirects int, err error) {
	loc := n.current.CurrentLocation()
	n.logger.Debug("navigation rejected",
		slog.String("kind", string(kind)),
		slog.String("error", err.Error()),
	)
	n.notify(Event{
		Kind:      kind,
		Location:  loc,
		Previous:  loc,
		Matches:   n.current.Clone(),
		Redirects: redirects,
		Err:       err,
	})
}

func (n *Navigator) notify(e Event) {
	for _, o := range n.cfg.Observers {
		o.Navigated(e)
	}
}

// captureBranches records the current stack as the state of every stateful
// shell branch it goes through.
func (n *Navigator) captureBranches() {
	if n.current.IsError() {
		return
	}
	for _, m := range n.current.Matches() {
		shell, ok := m.Route.(*nav.StatefulShell)
		if !ok {
			continue
		}
		if idx := n.current.BranchIndex(shell); idx >= 0 {
			n.branches[branchRef{shell: shell, index: idx}] = n.current.Clone()
		}
	}
}

// persist saves the current stack and the push counters. Failures are
// logged and do not affect navigation.
func (n *Navigator) persist(ctx context.Context) {
	if !n.cfg.persistent() || n.current.IsError() {
		return
	}

	tree := n.codec.Encode(n.current)
	if tree == nil {
		return
	}

	counts := make(map[string]any)
	for base, c := range n.keys.Snapshot() {
		counts[base] = c
	}

	state := make(map[string]any, len(tree)+1)
	maps.Copy(state, tree)
	state[pushCountsKey] = counts

	if err := n.cfg.Store.Save(ctx, n.cfg.RestorationID, state); err != nil {
		n.logger.Warn("save navigation state",
			slog.String("id", n.cfg.RestorationID),
			slog.String("error", err.Error()),
		)
	}
}

// restore loads the persisted stack. It reports whether a stack was
// restored.
func (n *Navigator) restore(ctx context.Context) bool {
	if !n.cfg.persistent() {
		return false
	}

	state, err := n.cfg.Store.Load(ctx, n.cfg.RestorationID)
	if err != nil {
		if !errors.Is(err, navstore.ErrNotFound) {
			n.logger.Warn("load navigation state",
				slog.String("id", n.cfg.RestorationID),
				slog.String("error", err.Error()),
			)
		}
		return false
	}

	l := n.codec.Decode(state)
	if l == nil {
		n.logger.Warn("discarding stale navigation state", slog.String("id", n.cfg.RestorationID))
		return false
	}

	n.keys.Load(state[pushCountsKey])
	for _, key := range nav.ImperativePageKeys(state) {
		n.keys.Observe(key)
	}

	n.commit(ctx, KindRestore, l, 0)
	return true
}

// complete resolves the completion of m, if any.
func complete(logger *slog.Logger, m *nav.Match, result any) {
	c := m.Completion()
	if c == nil {
		return
	}
	if err := c.Complete(result); err != nil {
		logger.Debug("completion already resolved", slog.String("page", m.PageKey))
	}
}
