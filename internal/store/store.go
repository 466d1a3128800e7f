package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store bundles the local database and its repositories.
type Store struct {
	db        *sql.DB
	Session   *SessionStore
	Playlists *PlaylistCache
	Songs     *SongCache
}

// Open opens (or creates) the local database at path and runs migrations.
// The path can be ":memory:" for a throwaway store.
func Open(path string, maxOpenConns, maxIdleConns int) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	if maxIdleConns > 0 {
		db.SetMaxIdleConns(maxIdleConns)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:        db,
		Session:   NewSessionStore(db),
		Playlists: NewPlaylistCache(db),
		Songs:     NewSongCache(db),
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
