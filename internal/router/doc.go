// Package router implements fragment-based navigation for the Spolify client.
//
// Routes are registered once at startup as patterns of literal and :param
// segments (e.g. "playlist-:idplaylist"); both "/" and "-" separate segments.
// A [Location] owns the current fragment and notifies the router on change,
// the router matches patterns in registration order, applies the session gate,
// and dispatches the matching [Controller]. Controllers render through a
// token-bound [Screen]: every navigation gets a monotonic token and a write
// from a stale navigation is dropped, so a slow controller can never clobber
// the view of a newer one.
//
// Protected routes redirect to "login" when no session marker is present.
// An empty fragment normalizes to "#home" by rewriting the location first,
// which re-enters matching through the change notification - the address and
// the dispatched route key never disagree.
package router
