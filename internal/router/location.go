package router

import "strings"

// Location owns the current URL fragment, standing in for the browser
// location object. Setting a new fragment fires the change callback;
// setting the same fragment is a no-op, matching hashchange semantics.
type Location struct {
	fragment string
	onChange func()
}

// NewLocation creates a Location with an empty fragment.
func NewLocation() *Location {
	return &Location{}
}

// Fragment returns the current fragment including its leading "#"
// (empty when never set).
func (l *Location) Fragment() string {
	return l.fragment
}

// Set updates the fragment and fires the change callback when it differs
// from the current value. A missing leading "#" is added.
func (l *Location) Set(fragment string) {
	if fragment != "" && !strings.HasPrefix(fragment, "#") {
		fragment = "#" + fragment
	}

	if fragment == l.fragment {
		return
	}

	l.fragment = fragment
	if l.onChange != nil {
		l.onChange()
	}
}

func (l *Location) listen(fn func()) {
	l.onChange = fn
}
