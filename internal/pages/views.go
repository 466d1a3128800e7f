package pages

import (
	"fmt"
	"strings"

	"github.com/spolify/spolify/internal/models"
	"github.com/spolify/spolify/internal/order"
)

const loginView = `Sign In

Enter your username and password to access your library.
No account yet? Head to the signup screen.`

const signupView = `Create Account

Pick a username and password to start building your library.`

// renderHome lists playlists with their creation date and song count.
func renderHome(playlists []models.Playlist) string {
	var b strings.Builder
	b.WriteString("Your Playlists\n\n")

	if len(playlists) == 0 {
		b.WriteString("No playlists yet. Create one to get started.\n")
		return b.String()
	}

	for _, p := range playlists {
		fmt.Fprintf(&b, "  %s (%d songs, created %s)\n", p.Name, len(p.Songs), p.CreatedAt)
	}
	return b.String()
}

// renderSongs lists the whole library with album detail.
func renderSongs(songs []models.SongWithAlbum) string {
	var b strings.Builder
	b.WriteString("Your Songs\n\n")

	if len(songs) == 0 {
		b.WriteString("No songs yet. Upload one to get started.\n")
		return b.String()
	}

	for _, swa := range songs {
		fmt.Fprintf(&b, "  %s - %s (%s, %d)\n", swa.Album.Artist, swa.Song.Title, swa.Album.Name, swa.Album.Year)
	}
	return b.String()
}

// renderPlaylist shows the current page of a resolved order, with absolute
// track positions so reordering discussions have stable numbers.
func renderPlaylist(playlist models.Playlist, songs []models.SongWithAlbum, pager *order.Pager) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", playlist.Name)

	if len(songs) == 0 {
		b.WriteString("This playlist is empty.\n")
		return b.String()
	}

	start, end := pager.Bounds()
	for i := start; i < end; i++ {
		swa := songs[i]
		fmt.Fprintf(&b, "  %d. %s - %s (%d)\n", i+1, swa.Album.Artist, swa.Song.Title, swa.Album.Year)
	}

	fmt.Fprintf(&b, "\nPage %d of %d\n", pager.Page()+1, pager.Pages())
	return b.String()
}
