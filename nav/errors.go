package nav

import "errors"

// ErrNoMatch is returned when no branch of the route tree fully matches a
// location. Callers usually replace the result with NewErrorMatchList.
var ErrNoMatch = errors.New("no routes for location")

// ErrMissingParameter is returned when a path template is expanded without a
// value for one of its parameters.
var ErrMissingParameter = errors.New("missing route parameter")

// ErrInvalidParameter is returned when an expanded value does not satisfy the
// constraint declared for its parameter.
var ErrInvalidParameter = errors.New("invalid route parameter")

// ErrUnknownRoute is returned by reverse routing when no route has the
// requested name.
var ErrUnknownRoute = errors.New("unknown route name")

// ErrInvariantViolation reports a broken caller contract, such as removing a
// match that is not in the list or pushing a shell route.
var ErrInvariantViolation = errors.New("invariant violation")

// ErrAlreadyCompleted is returned when a completion handle is resolved twice.
var ErrAlreadyCompleted = errors.New("completion already resolved")

// SkipChildren is used as a return value from WalkFunc to indicate that the
// children of the current node should not be visited.
var SkipChildren = errors.New("skip children") //nolint:revive,staticcheck // mirrors filepath.SkipDir
