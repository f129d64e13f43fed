// Package navmetrics exports navigation events as Prometheus metrics.
//
// Metrics collected:
//   - navstack_navigations_total: navigations by kind and outcome
//   - navstack_redirects: histogram of redirects followed per navigation
//   - navstack_redirect_errors_total: redirect failures by reason (loop, limit, error)
//   - navstack_stack_depth: number of pages on the stack
//
// Register the collector as a navigator observer:
//
//	c := navmetrics.New(navmetrics.WithRegistry(reg))
//	n, err := navigator.New(ctx, navigator.Config{
//		Router:    router,
//		Observers: []navigator.Observer{c},
//	})
package navmetrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vitalvas/navstack/navigator"
)

// Outcomes of a navigation.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeRejected = "rejected"
)

// Config configures the collector.
type Config struct {
	// Namespace is the metrics namespace (default: "navstack").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// Collector records navigator events. It implements navigator.Observer.
type Collector struct {
	navigations    *prometheus.CounterVec
	redirects      prometheus.Histogram
	redirectErrors *prometheus.CounterVec
	stackDepth     prometheus.Gauge
}

// New creates a collector and registers its metrics. It panics if the
// metrics are already registered with the same registry.
func New(opts ...Option) *Collector {
	cfg := Config{
		Namespace: "navstack",
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	factory := promauto.With(cfg.Registry)

	return &Collector{
		navigations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "navigations_total",
			Help:        "Total number of navigations by kind and outcome",
			ConstLabels: cfg.ConstLabels,
		}, []string{"kind", "outcome"}),

		redirects: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "redirects",
			Help:        "Redirects followed per navigation",
			ConstLabels: cfg.ConstLabels,
			Buckets:     []float64{0, 1, 2, 3, 5, 10},
		}),

		redirectErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "redirect_errors_total",
			Help:        "Total number of navigations aborted by a redirect failure",
			ConstLabels: cfg.ConstLabels,
		}, []string{"reason"}),

		stackDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "stack_depth",
			Help:        "Number of pages on the navigation stack",
			ConstLabels: cfg.ConstLabels,
		}),
	}
}

// Navigated implements navigator.Observer.
func (c *Collector) Navigated(e navigator.Event) {
	c.navigations.WithLabelValues(string(e.Kind), outcome(e)).Inc()
	c.redirects.Observe(float64(e.Redirects))

	switch {
	case errors.Is(e.Err, navigator.ErrRedirectLoop):
		c.redirectErrors.WithLabelValues("loop").Inc()
	case errors.Is(e.Err, navigator.ErrRedirectLimit):
		c.redirectErrors.WithLabelValues("limit").Inc()
	case errors.Is(e.Err, navigator.ErrRedirectFailed):
		c.redirectErrors.WithLabelValues("error").Inc()
	}

	if e.Matches != nil {
		c.stackDepth.Set(float64(e.Matches.Leaves()))
	}
}

func outcome(e navigator.Event) string {
	switch {
	case e.Err == nil:
		return OutcomeOK
	case e.Matches != nil && e.Matches.IsError():
		return OutcomeError
	default:
		return OutcomeRejected
	}
}
