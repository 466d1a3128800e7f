package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spolify/spolify/internal/models"
	"github.com/spolify/spolify/internal/shared"
)

// PlaylistCache implements models.Repository[*models.CachedPlaylist] over the
// local playlists table, with soft delete.
type PlaylistCache struct {
	db *sql.DB
}

var _ models.Repository[*models.CachedPlaylist] = (*PlaylistCache)(nil)

// NewPlaylistCache creates a PlaylistCache over the given database.
func NewPlaylistCache(db *sql.DB) *PlaylistCache {
	return &PlaylistCache{db: db}
}

// Create inserts a new playlist snapshot with a generated row ID.
func (c *PlaylistCache) Create(playlist *models.CachedPlaylist) error {
	playlist.SetID(shared.GenerateID())

	if err := playlist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	songIDs, err := json.Marshal(playlist.SongIDs())
	if err != nil {
		return fmt.Errorf("failed to encode song IDs: %w", err)
	}

	query := `
		INSERT INTO playlists (id, remote_id, name, birthday, song_ids, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = c.db.Exec(query,
		playlist.ID(),
		playlist.RemoteID(),
		playlist.Name(),
		playlist.Birthday(),
		string(songIDs),
		playlist.CreatedAt(),
		playlist.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert playlist: %w", err)
	}

	return nil
}

// Get retrieves a playlist snapshot by row ID, excluding soft-deleted rows.
func (c *PlaylistCache) Get(id string) (*models.CachedPlaylist, error) {
	query := `
		SELECT id, remote_id, name, birthday, song_ids, created_at, updated_at, deleted_at
		FROM playlists
		WHERE id = ? AND deleted_at IS NULL
	`
	return c.scanOne(c.db.QueryRow(query, id))
}

// GetByRemoteID retrieves a playlist snapshot by its backend ID.
func (c *PlaylistCache) GetByRemoteID(remoteID int64) (*models.CachedPlaylist, error) {
	query := `
		SELECT id, remote_id, name, birthday, song_ids, created_at, updated_at, deleted_at
		FROM playlists
		WHERE remote_id = ? AND deleted_at IS NULL
	`
	return c.scanOne(c.db.QueryRow(query, remoteID))
}

// Update modifies an existing playlist snapshot.
func (c *PlaylistCache) Update(playlist *models.CachedPlaylist) error {
	if err := playlist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	playlist.SetUpdatedAt(time.Now())

	songIDs, err := json.Marshal(playlist.SongIDs())
	if err != nil {
		return fmt.Errorf("failed to encode song IDs: %w", err)
	}

	query := `
		UPDATE playlists
		SET name = ?, birthday = ?, song_ids = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`
	result, err := c.db.Exec(query, playlist.Name(), playlist.Birthday(), string(songIDs), playlist.UpdatedAt(), playlist.ID())
	if err != nil {
		return fmt.Errorf("failed to update playlist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return shared.ErrPlaylistNotFound
	}

	return nil
}

// Delete soft-deletes a playlist snapshot.
func (c *PlaylistCache) Delete(id string) error {
	result, err := c.db.Exec("UPDATE playlists SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL", time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return shared.ErrPlaylistNotFound
	}

	return nil
}

// List retrieves playlist snapshots; criteria supports "name".
func (c *PlaylistCache) List(criteria map[string]any) ([]*models.CachedPlaylist, error) {
	query := `
		SELECT id, remote_id, name, birthday, song_ids, created_at, updated_at, deleted_at
		FROM playlists
		WHERE deleted_at IS NULL
	`
	args := []any{}

	if name, ok := criteria["name"]; ok {
		query += " AND name = ?"
		args = append(args, name)
	}

	query += " ORDER BY birthday DESC"

	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	defer rows.Close()

	var playlists []*models.CachedPlaylist
	for rows.Next() {
		playlist, err := c.scanRow(rows)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, playlist)
	}

	return playlists, rows.Err()
}

// Replace swaps the whole cache for a fresh backend listing.
func (c *PlaylistCache) Replace(playlists []models.Playlist) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM playlists"); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear playlist cache: %w", err)
	}

	query := `
		INSERT INTO playlists (id, remote_id, name, birthday, song_ids, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	for _, p := range playlists {
		cached := models.NewCachedPlaylist(p)
		cached.SetID(shared.GenerateID())
		if err := cached.Validate(); err != nil {
			tx.Rollback()
			return fmt.Errorf("validation failed: %w", err)
		}

		songIDs, err := json.Marshal(cached.SongIDs())
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to encode song IDs: %w", err)
		}

		if _, err := tx.Exec(query, cached.ID(), cached.RemoteID(), cached.Name(), cached.Birthday(), string(songIDs), cached.CreatedAt(), cached.UpdatedAt()); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert playlist: %w", err)
		}
	}

	return tx.Commit()
}

func (c *PlaylistCache) scanOne(row *sql.Row) (*models.CachedPlaylist, error) {
	playlist, err := scanPlaylist(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrPlaylistNotFound
	}
	return playlist, err
}

func (c *PlaylistCache) scanRow(rows *sql.Rows) (*models.CachedPlaylist, error) {
	return scanPlaylist(rows.Scan)
}

func scanPlaylist(scan func(dest ...any) error) (*models.CachedPlaylist, error) {
	var (
		id        string
		remoteID  int64
		name      string
		birthday  sql.NullString
		songIDs   string
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	if err := scan(&id, &remoteID, &name, &birthday, &songIDs, &createdAt, &updatedAt, &deletedAt); err != nil {
		return nil, err
	}

	var ids []int64
	if err := json.Unmarshal([]byte(songIDs), &ids); err != nil {
		return nil, fmt.Errorf("failed to decode song IDs: %w", err)
	}

	var deleted *time.Time
	if deletedAt.Valid {
		deleted = &deletedAt.Time
	}

	return models.RestoreCachedPlaylist(id, remoteID, name, birthday.String, ids, createdAt, updatedAt, deleted), nil
}
