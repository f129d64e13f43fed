package navigator

import "errors"

var (
	// ErrRedirectLoop is returned when a redirect leads back to a location
	// already visited by the same navigation.
	ErrRedirectLoop = errors.New("redirect loop")

	// ErrRedirectLimit is returned when a navigation follows more redirects
	// than Config.RedirectLimit allows.
	ErrRedirectLimit = errors.New("too many redirects")

	// ErrRedirectFailed wraps an error returned by a redirect function.
	ErrRedirectFailed = errors.New("redirect failed")

	// ErrNothingToPop is returned by Pop when the stack holds a single page.
	ErrNothingToPop = errors.New("nothing to pop")

	// ErrNoBuilder is returned when navigation ends on a route that can only
	// redirect and did not.
	ErrNoBuilder = errors.New("route has no builder")

	// ErrInvalidBranch is returned by GoBranch for an unknown branch index.
	ErrInvalidBranch = errors.New("invalid branch")
)
