// Package models defines domain entities and persistence interfaces for the Spolify client.
//
// The package contains two categories of types:
//
// 1. Wire types: structs matching the Spolify REST API's JSON bodies
//   - [User] : the authenticated account
//   - [Playlist] : playlist metadata with its song membership
//   - [Song], [Album], [SongWithAlbum] : library entries as returned by /songs
//   - [Genre], [AddSongsResult] : auxiliary response bodies
//
// 2. Persistent entities: rows in the local SQLite cache
//   - [CachedPlaylist] : a playlist snapshot for offline listings
//   - [CachedSong] : a song+album snapshot for offline listings
//
// Persistent entities implement the Model interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for store access.
package models
