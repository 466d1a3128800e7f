// Package store persists the client's local state in SQLite: the session
// marker (the "is a user believed logged in" hint, never the source of truth)
// and a cache of the library for offline listings.
//
// One owning store, accessed through repositories; nothing else holds
// library state.
package store
