package navigator

import (
	"io"
	"log/slog"

	"github.com/vitalvas/navstack/nav"
	"github.com/vitalvas/navstack/navstore"
)

const (
	// DefaultInitialLocation is used when Config.InitialLocation is empty.
	DefaultInitialLocation = "/"

	// DefaultRedirectLimit is used when Config.RedirectLimit is zero.
	DefaultRedirectLimit = 5
)

// Config configures a Navigator.
type Config struct {
	// Router is the compiled route tree. Required.
	Router *nav.Router

	// InitialLocation is where navigation starts when nothing is restored.
	// Default: "/".
	InitialLocation string

	// InitialExtra is the payload of the initial navigation.
	InitialExtra any

	// Redirect is consulted before any route-level redirect on every
	// navigation.
	Redirect nav.RedirectFunc

	// RedirectLimit is the maximum number of redirects followed by one
	// navigation. Default: 5. A negative limit makes every redirect fail.
	RedirectLimit int

	// Store persists the navigation state after every change and restores
	// it in New. Persistence is enabled only when RestorationID is also set.
	Store navstore.Store

	// RestorationID identifies the persisted state in Store.
	RestorationID string

	// KeyFunc issues page keys for pushed matches. Default: a per-navigator
	// counter producing keys such as "family/:fid-p1".
	KeyFunc nav.KeyFunc

	// Observers are notified synchronously after every navigation.
	Observers []Observer

	// Logger receives navigation diagnostics.
	// If nil, logging is disabled.
	Logger *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.InitialLocation == "" {
		c.InitialLocation = DefaultInitialLocation
	}
	if c.RedirectLimit == 0 {
		c.RedirectLimit = DefaultRedirectLimit
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

func (c Config) persistent() bool {
	return c.Store != nil && c.RestorationID != ""
}
