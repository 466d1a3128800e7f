package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/spolify/spolify/internal/models"
)

var (
	_ list.Item = playlistItem{}
	_ list.Item = songItem{}
)

// playlistItem wraps [models.Playlist] to implement [list.Item].
type playlistItem struct {
	playlist models.Playlist
}

func (i playlistItem) FilterValue() string { return i.playlist.Name }
func (i playlistItem) Title() string       { return i.playlist.Name }
func (i playlistItem) Description() string {
	desc := fmt.Sprintf("%d songs", len(i.playlist.Songs))
	if i.playlist.CreatedAt != "" {
		desc = fmt.Sprintf("%s • created %s", desc, i.playlist.CreatedAt)
	}
	return desc
}

// songItem wraps [models.SongWithAlbum] to implement [list.Item].
type songItem struct {
	song models.SongWithAlbum
}

func (i songItem) FilterValue() string { return i.song.Song.Title }
func (i songItem) Title() string       { return i.song.Song.Title }
func (i songItem) Description() string {
	desc := i.song.Album.Artist
	if i.song.Album.Name != "" {
		desc = fmt.Sprintf("%s • %s (%d)", desc, i.song.Album.Name, i.song.Album.Year)
	}
	return desc
}
