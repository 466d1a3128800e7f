package models

// User represents the authenticated Spolify account.
type User struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
}

// Album represents an album as embedded in song responses.
type Album struct {
	ID     int64  `json:"idAlbum"`
	Name   string `json:"name"`
	Year   int    `json:"year"`
	Artist string `json:"artist"`
	Image  string `json:"image,omitempty"`
	UserID string `json:"idUser"`
}

// Song represents a single library song without album detail.
type Song struct {
	ID        int64  `json:"idSong"`
	Title     string `json:"title"`
	AlbumID   int64  `json:"idAlbum"`
	Year      int    `json:"year"`
	Genre     string `json:"genre,omitempty"`
	AudioFile string `json:"audioFile"`
	UserID    string `json:"idUser"`
}

// SongWithAlbum pairs a song with its album detail, as returned by /songs and /songs/{id}.
type SongWithAlbum struct {
	Song  Song  `json:"song"`
	Album Album `json:"album"`
}

// Playlist represents a playlist with its unordered song membership.
//
// The wire field "birthday" is the creation timestamp; "songs" carries no
// guaranteed order. The explicit display order lives behind a separate
// endpoint (/playlists/{id}/order).
type Playlist struct {
	ID        int64   `json:"idPlaylist"`
	Name      string  `json:"name"`
	CreatedAt string  `json:"birthday"`
	UserID    string  `json:"idUser"`
	Songs     []int64 `json:"songs"`
}

// Genre represents an available song genre.
type Genre struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AddSongsResult reports which songs were added to a playlist and which were already present.
type AddSongsResult struct {
	Message          string  `json:"message"`
	AddedSongIDs     []int64 `json:"addedSongIds"`
	DuplicateSongIDs []int64 `json:"duplicateSongIds"`
}
