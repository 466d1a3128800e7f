// Package order computes playlist display orders and reorder payloads.
//
// A playlist's persisted explicit order may be empty, partial, or stale
// relative to its membership. [Resolve] merges the two into a complete,
// deterministic display order: the persisted sequence first, then any songs
// added since the last manual reorder, sorted by album artist (case
// insensitive) and album year. [Reorder] holds the in-memory ordered list a
// reorder session edits; the view renders it, never the other way around.
// [Pager] windows a resolved order into fixed-size carousel pages.
package order
