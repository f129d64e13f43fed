package navigator

import "github.com/vitalvas/navstack/nav"

// Kind names the operation that produced an Event.
type Kind string

// Navigation kinds.
const (
	KindGo              Kind = "go"
	KindPush            Kind = "push"
	KindPushReplacement Kind = "push_replacement"
	KindReplace         Kind = "replace"
	KindPop             Kind = "pop"
	KindBranch          Kind = "branch"
	KindRestore         Kind = "restore"
)

// Event describes a completed navigation.
type Event struct {
	Kind Kind

	// Location is the current location after the navigation.
	Location string

	// Previous is the current location before the navigation; empty for
	// the first one.
	Previous string

	// Matches is a snapshot of the match list after the navigation.
	Matches *nav.MatchList

	// Redirects is the number of redirects followed.
	Redirects int

	// Err is set when the navigation ended on an error match list or was
	// rejected.
	Err error
}

// Observer is notified after every navigation, on the goroutine that
// performed it.
type Observer interface {
	Navigated(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// Navigated implements Observer.
func (f ObserverFunc) Navigated(e Event) {
	f(e)
}
