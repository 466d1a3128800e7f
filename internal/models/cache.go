package models

import (
	"fmt"
	"time"
)

// CachedPlaylist is a local snapshot of a remote playlist, used for offline listings.
type CachedPlaylist struct {
	id        string
	remoteID  int64
	name      string
	birthday  string
	songIDs   []int64
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewCachedPlaylist builds a cache row from a wire playlist.
func NewCachedPlaylist(p Playlist) *CachedPlaylist {
	now := time.Now()
	return &CachedPlaylist{
		remoteID:  p.ID,
		name:      p.Name,
		birthday:  p.CreatedAt,
		songIDs:   p.Songs,
		createdAt: now,
		updatedAt: now,
	}
}

// RestoreCachedPlaylist rebuilds a cache row from stored columns.
func RestoreCachedPlaylist(id string, remoteID int64, name, birthday string, songIDs []int64, createdAt, updatedAt time.Time, deletedAt *time.Time) *CachedPlaylist {
	return &CachedPlaylist{
		id:        id,
		remoteID:  remoteID,
		name:      name,
		birthday:  birthday,
		songIDs:   songIDs,
		createdAt: createdAt,
		updatedAt: updatedAt,
		deletedAt: deletedAt,
	}
}

func (p *CachedPlaylist) ID() string            { return p.id }
func (p *CachedPlaylist) SetID(id string)       { p.id = id }
func (p *CachedPlaylist) RemoteID() int64       { return p.remoteID }
func (p *CachedPlaylist) Name() string          { return p.name }
func (p *CachedPlaylist) Birthday() string      { return p.birthday }
func (p *CachedPlaylist) SongIDs() []int64      { return p.songIDs }
func (p *CachedPlaylist) CreatedAt() time.Time  { return p.createdAt }
func (p *CachedPlaylist) UpdatedAt() time.Time  { return p.updatedAt }
func (p *CachedPlaylist) SetUpdatedAt(t time.Time) { p.updatedAt = t }
func (p *CachedPlaylist) DeletedAt() *time.Time { return p.deletedAt }

// Validate checks the cache row before writing it.
func (p *CachedPlaylist) Validate() error {
	if p.remoteID <= 0 {
		return fmt.Errorf("cached playlist requires a positive remote ID, got %d", p.remoteID)
	}
	if p.name == "" {
		return fmt.Errorf("cached playlist requires a name")
	}
	return nil
}

// Wire converts the cache row back to its wire representation.
func (p *CachedPlaylist) Wire() Playlist {
	return Playlist{
		ID:        p.remoteID,
		Name:      p.name,
		CreatedAt: p.birthday,
		Songs:     p.songIDs,
	}
}

// CachedSong is a local snapshot of a remote song with its album detail.
type CachedSong struct {
	id          string
	remoteID    int64
	title       string
	genre       string
	year        int
	audioFile   string
	albumID     int64
	albumName   string
	albumArtist string
	albumYear   int
	albumImage  string
	createdAt   time.Time
	updatedAt   time.Time
	deletedAt   *time.Time
}

// NewCachedSong builds a cache row from a wire song+album pair.
func NewCachedSong(swa SongWithAlbum) *CachedSong {
	now := time.Now()
	return &CachedSong{
		remoteID:    swa.Song.ID,
		title:       swa.Song.Title,
		genre:       swa.Song.Genre,
		year:        swa.Song.Year,
		audioFile:   swa.Song.AudioFile,
		albumID:     swa.Album.ID,
		albumName:   swa.Album.Name,
		albumArtist: swa.Album.Artist,
		albumYear:   swa.Album.Year,
		albumImage:  swa.Album.Image,
		createdAt:   now,
		updatedAt:   now,
	}
}

// RestoreCachedSong rebuilds a cache row from stored columns.
func RestoreCachedSong(id string, remoteID int64, title, genre string, year int, audioFile string, albumID int64, albumName, albumArtist string, albumYear int, albumImage string, createdAt, updatedAt time.Time, deletedAt *time.Time) *CachedSong {
	return &CachedSong{
		id:          id,
		remoteID:    remoteID,
		title:       title,
		genre:       genre,
		year:        year,
		audioFile:   audioFile,
		albumID:     albumID,
		albumName:   albumName,
		albumArtist: albumArtist,
		albumYear:   albumYear,
		albumImage:  albumImage,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		deletedAt:   deletedAt,
	}
}

func (s *CachedSong) ID() string               { return s.id }
func (s *CachedSong) SetID(id string)          { s.id = id }
func (s *CachedSong) RemoteID() int64          { return s.remoteID }
func (s *CachedSong) Title() string            { return s.title }
func (s *CachedSong) Genre() string            { return s.genre }
func (s *CachedSong) Year() int                { return s.year }
func (s *CachedSong) AudioFile() string        { return s.audioFile }
func (s *CachedSong) AlbumID() int64           { return s.albumID }
func (s *CachedSong) AlbumName() string        { return s.albumName }
func (s *CachedSong) AlbumArtist() string      { return s.albumArtist }
func (s *CachedSong) AlbumYear() int           { return s.albumYear }
func (s *CachedSong) AlbumImage() string       { return s.albumImage }
func (s *CachedSong) CreatedAt() time.Time     { return s.createdAt }
func (s *CachedSong) UpdatedAt() time.Time     { return s.updatedAt }
func (s *CachedSong) SetUpdatedAt(t time.Time) { s.updatedAt = t }
func (s *CachedSong) DeletedAt() *time.Time    { return s.deletedAt }

// Validate checks the cache row before writing it.
func (s *CachedSong) Validate() error {
	if s.remoteID <= 0 {
		return fmt.Errorf("cached song requires a positive remote ID, got %d", s.remoteID)
	}
	if s.title == "" {
		return fmt.Errorf("cached song requires a title")
	}
	return nil
}

// Wire converts the cache row back to its wire representation.
func (s *CachedSong) Wire() SongWithAlbum {
	return SongWithAlbum{
		Song: Song{
			ID:        s.remoteID,
			Title:     s.title,
			AlbumID:   s.albumID,
			Year:      s.year,
			Genre:     s.genre,
			AudioFile: s.audioFile,
		},
		Album: Album{
			ID:     s.albumID,
			Name:   s.albumName,
			Year:   s.albumYear,
			Artist: s.albumArtist,
			Image:  s.albumImage,
		},
	}
}
