package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/spolify/spolify/internal/models"
	"github.com/spolify/spolify/internal/shared"
)

// SongCache implements models.Repository[*models.CachedSong] over the local
// songs table, with soft delete.
type SongCache struct {
	db *sql.DB
}

var _ models.Repository[*models.CachedSong] = (*SongCache)(nil)

// NewSongCache creates a SongCache over the given database.
func NewSongCache(db *sql.DB) *SongCache {
	return &SongCache{db: db}
}

const songColumns = "id, remote_id, title, genre, year, audio_file, album_id, album_name, album_artist, album_year, album_image, created_at, updated_at, deleted_at"

// Create inserts a new song snapshot with a generated row ID.
func (c *SongCache) Create(song *models.CachedSong) error {
	song.SetID(shared.GenerateID())

	if err := song.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO songs (id, remote_id, title, genre, year, audio_file, album_id, album_name, album_artist, album_year, album_image, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := c.db.Exec(query,
		song.ID(),
		song.RemoteID(),
		song.Title(),
		song.Genre(),
		song.Year(),
		song.AudioFile(),
		song.AlbumID(),
		song.AlbumName(),
		song.AlbumArtist(),
		song.AlbumYear(),
		song.AlbumImage(),
		song.CreatedAt(),
		song.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert song: %w", err)
	}

	return nil
}

// Get retrieves a song snapshot by row ID, excluding soft-deleted rows.
func (c *SongCache) Get(id string) (*models.CachedSong, error) {
	query := fmt.Sprintf("SELECT %s FROM songs WHERE id = ? AND deleted_at IS NULL", songColumns)
	return c.scanOne(c.db.QueryRow(query, id))
}

// GetByRemoteID retrieves a song snapshot by its backend ID.
func (c *SongCache) GetByRemoteID(remoteID int64) (*models.CachedSong, error) {
	query := fmt.Sprintf("SELECT %s FROM songs WHERE remote_id = ? AND deleted_at IS NULL", songColumns)
	return c.scanOne(c.db.QueryRow(query, remoteID))
}

// Update modifies an existing song snapshot.
func (c *SongCache) Update(song *models.CachedSong) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	song.SetUpdatedAt(time.Now())

	query := `
		UPDATE songs
		SET title = ?, genre = ?, year = ?, audio_file = ?, album_id = ?, album_name = ?, album_artist = ?, album_year = ?, album_image = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`
	result, err := c.db.Exec(query,
		song.Title(),
		song.Genre(),
		song.Year(),
		song.AudioFile(),
		song.AlbumID(),
		song.AlbumName(),
		song.AlbumArtist(),
		song.AlbumYear(),
		song.AlbumImage(),
		song.UpdatedAt(),
		song.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update song: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return shared.ErrSongNotFound
	}

	return nil
}

// Delete soft-deletes a song snapshot.
func (c *SongCache) Delete(id string) error {
	result, err := c.db.Exec("UPDATE songs SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL", time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return shared.ErrSongNotFound
	}

	return nil
}

// List retrieves song snapshots; criteria supports "genre" and "album_artist".
func (c *SongCache) List(criteria map[string]any) ([]*models.CachedSong, error) {
	query := fmt.Sprintf("SELECT %s FROM songs WHERE deleted_at IS NULL", songColumns)
	args := []any{}

	if genre, ok := criteria["genre"]; ok {
		query += " AND genre = ?"
		args = append(args, genre)
	}
	if artist, ok := criteria["album_artist"]; ok {
		query += " AND album_artist = ?"
		args = append(args, artist)
	}

	query += " ORDER BY album_artist COLLATE NOCASE ASC, album_year ASC"

	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}
	defer rows.Close()

	var songs []*models.CachedSong
	for rows.Next() {
		song, err := c.scanRow(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}

	return songs, rows.Err()
}

// Replace swaps the whole cache for a fresh backend listing.
func (c *SongCache) Replace(songs []models.SongWithAlbum) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM songs"); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear song cache: %w", err)
	}

	query := `
		INSERT INTO songs (id, remote_id, title, genre, year, audio_file, album_id, album_name, album_artist, album_year, album_image, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for _, swa := range songs {
		cached := models.NewCachedSong(swa)
		cached.SetID(shared.GenerateID())
		if err := cached.Validate(); err != nil {
			tx.Rollback()
			return fmt.Errorf("validation failed: %w", err)
		}

		if _, err := tx.Exec(query,
			cached.ID(), cached.RemoteID(), cached.Title(), cached.Genre(), cached.Year(), cached.AudioFile(),
			cached.AlbumID(), cached.AlbumName(), cached.AlbumArtist(), cached.AlbumYear(), cached.AlbumImage(),
			cached.CreatedAt(), cached.UpdatedAt(),
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert song: %w", err)
		}
	}

	return tx.Commit()
}

func (c *SongCache) scanOne(row *sql.Row) (*models.CachedSong, error) {
	song, err := scanSong(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrSongNotFound
	}
	return song, err
}

func (c *SongCache) scanRow(rows *sql.Rows) (*models.CachedSong, error) {
	return scanSong(rows.Scan)
}

func scanSong(scan func(dest ...any) error) (*models.CachedSong, error) {
	var (
		id          string
		remoteID    int64
		title       string
		genre       sql.NullString
		year        sql.NullInt64
		audioFile   sql.NullString
		albumID     sql.NullInt64
		albumName   sql.NullString
		albumArtist sql.NullString
		albumYear   sql.NullInt64
		albumImage  sql.NullString
		createdAt   time.Time
		updatedAt   time.Time
		deletedAt   sql.NullTime
	)

	if err := scan(&id, &remoteID, &title, &genre, &year, &audioFile, &albumID, &albumName, &albumArtist, &albumYear, &albumImage, &createdAt, &updatedAt, &deletedAt); err != nil {
		return nil, err
	}

	var deleted *time.Time
	if deletedAt.Valid {
		deleted = &deletedAt.Time
	}

	return models.RestoreCachedSong(
		id, remoteID, title, genre.String, int(year.Int64), audioFile.String,
		albumID.Int64, albumName.String, albumArtist.String, int(albumYear.Int64), albumImage.String,
		createdAt, updatedAt, deleted,
	), nil
}
