// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spolify/spolify/internal/models"
)

// SongLibrary is a test double for the song-detail fetch capability.
// Failing IDs return an error; every lookup is recorded in Calls.
type SongLibrary struct {
	Songs   map[int64]models.SongWithAlbum
	Failing map[int64]bool
	Calls   []int64
}

// NewSongLibrary builds a library from the given songs, keyed by song ID.
func NewSongLibrary(songs ...models.SongWithAlbum) *SongLibrary {
	lib := &SongLibrary{
		Songs:   map[int64]models.SongWithAlbum{},
		Failing: map[int64]bool{},
	}
	for _, swa := range songs {
		lib.Songs[swa.Song.ID] = swa
	}
	return lib
}

// Song implements the order.SongFetcher seam.
func (l *SongLibrary) Song(ctx context.Context, id int64) (models.SongWithAlbum, error) {
	l.Calls = append(l.Calls, id)
	if l.Failing[id] {
		return models.SongWithAlbum{}, fmt.Errorf("song %d unavailable", id)
	}
	swa, ok := l.Songs[id]
	if !ok {
		return models.SongWithAlbum{}, fmt.Errorf("song %d not found", id)
	}
	return swa, nil
}

// Track builds a song+album pair with just the fields order resolution reads.
func Track(id int64, title, artist string, year int) models.SongWithAlbum {
	return models.SongWithAlbum{
		Song:  models.Song{ID: id, Title: title, AlbumID: id, Year: year, AudioFile: fmt.Sprintf("%d.mp3", id)},
		Album: models.Album{ID: id, Name: title + " LP", Artist: artist, Year: year},
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	MaxWrites int
	written   int
	Target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.MaxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.Target.Write(p)
}
