package navmetrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/navstack/nav"
	"github.com/vitalvas/navstack/navigator"
)

func newNavigator(t *testing.T, c *Collector) *navigator.Navigator {
	t.Helper()

	builder := func(*nav.RouteState) any { return nil }
	r, err := nav.NewRouter(
		&nav.Route{Path: "/", Builder: builder},
		&nav.Route{Path: "/family/:fid", Builder: builder},
		&nav.Route{Path: "/old", Redirect: func(*nav.RouteState) (string, error) { return "/family/f1", nil }},
		&nav.Route{Path: "/loop", Redirect: func(*nav.RouteState) (string, error) { return "/loop", nil }},
		&nav.Route{Path: "/denied", Redirect: func(*nav.RouteState) (string, error) { return "", errors.New("denied") }},
	)
	require.NoError(t, err)

	n, err := navigator.New(context.Background(), navigator.Config{
		Router:    r,
		Observers: []navigator.Observer{c},
	})
	require.NoError(t, err)
	return n
}

func TestCollector(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	c := New(WithRegistry(reg), WithNamespace("test"))
	n := newNavigator(t, c)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.navigations.WithLabelValues("go", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.stackDepth))

	_, err := n.Push(ctx, "/family/f1", nil)
	require.NoError(t, err)
	_, err = n.Push(ctx, "/family/f2", nil)
	require.NoError(t, err)
	assert.Equal(t, 2.0, testutil.ToFloat64(c.navigations.WithLabelValues("push", OutcomeOK)))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.stackDepth))

	_, err = n.Push(ctx, "/nope", nil)
	require.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.navigations.WithLabelValues("push", OutcomeRejected)))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.stackDepth))

	require.NoError(t, n.Pop(ctx, nil))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.navigations.WithLabelValues("pop", OutcomeOK)))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.stackDepth))

	require.NoError(t, n.Go(ctx, "/old", nil))
	require.Error(t, n.Go(ctx, "/loop", nil))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.navigations.WithLabelValues("go", OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.redirectErrors.WithLabelValues("loop")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.redirectErrors.WithLabelValues("limit")))

	require.Error(t, n.Go(ctx, "/denied", nil))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.navigations.WithLabelValues("go", OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.redirectErrors.WithLabelValues("error")))

	count, err := testutil.GatherAndCount(reg, "test_navigations_total", "test_redirects", "test_stack_depth")
	require.NoError(t, err)
	assert.Equal(t, 7, count)
}

func TestCollectorOptions(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(
		WithRegistry(reg),
		WithNamespace("app"),
		WithSubsystem("nav"),
		WithConstLabels(prometheus.Labels{"instance": "a"}),
	)

	c.Navigated(navigator.Event{Kind: navigator.KindGo, Err: navigator.ErrRedirectLimit, Matches: nav.NewErrorMatchList("/", navigator.ErrRedirectLimit)})

	count, err := testutil.GatherAndCount(reg, "app_nav_redirect_errors_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.navigations.WithLabelValues("go", OutcomeError)))

	assert.Panics(t, func() { New(WithRegistry(reg), WithNamespace("app"), WithSubsystem("nav")) })
}

func TestOutcome(t *testing.T) {
	ok := navigator.Event{}
	assert.Equal(t, OutcomeOK, outcome(ok))

	failed := navigator.Event{Err: nav.ErrNoMatch, Matches: nav.NewErrorMatchList("/x", nav.ErrNoMatch)}
	assert.Equal(t, OutcomeError, outcome(failed))

	rejected := navigator.Event{Err: nav.ErrNoMatch}
	assert.Equal(t, OutcomeRejected, outcome(rejected))
}
