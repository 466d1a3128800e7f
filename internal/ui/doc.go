// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for the music library:
//  1. [LoginView] : Authenticate against the backend
//  2. [HomeView] : Browse playlists, newest first, and create new ones
//  3. [SongListView] : Browse the full song library
//  4. [PlaylistView] : Page through a playlist's resolved order, five songs at a time
//  5. [ReorderView] : Grab and move songs, then save or cancel the new order
//
// The [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Reordering is backed by an [order.Reorder] session, so cancelling restores
// the order the session opened with and a failed save keeps the attempted
// order on screen for retry.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, space, q)
// with contextual help displayed via charmbracelet/bubbles/help.
package ui
