package store

import (
	"reflect"
	"testing"

	"github.com/spolify/spolify/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(":memory:", 1, 1)
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSessionStore(t *testing.T) {
	t.Run("Marker Lifecycle", func(t *testing.T) {
		s := openTestStore(t)

		if s.Session.Active() {
			t.Error("fresh store must have no session marker")
		}

		user := models.User{Username: "ada", Name: "Ada", Surname: "Lovelace"}
		if err := s.Session.SaveUser(user); err != nil {
			t.Fatalf("failed to save marker: %v", err)
		}

		if !s.Session.Active() {
			t.Error("marker should be active after save")
		}

		got, err := s.Session.CurrentUser()
		if err != nil {
			t.Fatalf("failed to read marker: %v", err)
		}
		if got == nil || *got != user {
			t.Errorf("expected %+v, got %+v", user, got)
		}

		if err := s.Session.Clear(); err != nil {
			t.Fatalf("failed to clear marker: %v", err)
		}
		if s.Session.Active() {
			t.Error("marker should be gone after clear")
		}
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		s := openTestStore(t)

		if err := s.Session.SaveUser(models.User{Username: "first"}); err != nil {
			t.Fatalf("failed to save marker: %v", err)
		}
		if err := s.Session.SaveUser(models.User{Username: "second"}); err != nil {
			t.Fatalf("failed to overwrite marker: %v", err)
		}

		got, err := s.Session.CurrentUser()
		if err != nil {
			t.Fatalf("failed to read marker: %v", err)
		}
		if got.Username != "second" {
			t.Errorf("expected latest user, got %q", got.Username)
		}
	})
}

func TestPlaylistCache(t *testing.T) {
	wire := models.Playlist{
		ID:        42,
		Name:      "Road Trip",
		CreatedAt: "2025-06-01T10:00:00Z",
		Songs:     []int64{3, 1, 2},
	}

	t.Run("Create And Get By Remote ID", func(t *testing.T) {
		s := openTestStore(t)

		cached := models.NewCachedPlaylist(wire)
		if err := s.Playlists.Create(cached); err != nil {
			t.Fatalf("failed to create: %v", err)
		}
		if cached.ID() == "" {
			t.Error("expected a generated row ID")
		}

		got, err := s.Playlists.GetByRemoteID(42)
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if got.Name() != "Road Trip" {
			t.Errorf("expected name Road Trip, got %q", got.Name())
		}
		if !reflect.DeepEqual(got.SongIDs(), []int64{3, 1, 2}) {
			t.Errorf("expected song IDs [3 1 2], got %v", got.SongIDs())
		}
	})

	t.Run("Validation Rejects Bad Rows", func(t *testing.T) {
		s := openTestStore(t)

		bad := models.NewCachedPlaylist(models.Playlist{ID: 0, Name: ""})
		if err := s.Playlists.Create(bad); err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("Soft Delete Hides The Row", func(t *testing.T) {
		s := openTestStore(t)

		cached := models.NewCachedPlaylist(wire)
		if err := s.Playlists.Create(cached); err != nil {
			t.Fatalf("failed to create: %v", err)
		}
		if err := s.Playlists.Delete(cached.ID()); err != nil {
			t.Fatalf("failed to delete: %v", err)
		}
		if _, err := s.Playlists.Get(cached.ID()); err == nil {
			t.Error("expected not-found after soft delete")
		}
	})

	t.Run("Replace Swaps The Cache", func(t *testing.T) {
		s := openTestStore(t)

		if err := s.Playlists.Replace([]models.Playlist{wire}); err != nil {
			t.Fatalf("failed to replace: %v", err)
		}
		if err := s.Playlists.Replace([]models.Playlist{
			{ID: 7, Name: "Fresh", CreatedAt: "2025-07-01T10:00:00Z"},
		}); err != nil {
			t.Fatalf("failed to replace again: %v", err)
		}

		playlists, err := s.Playlists.List(nil)
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(playlists) != 1 || playlists[0].RemoteID() != 7 {
			t.Errorf("expected only the fresh listing, got %d rows", len(playlists))
		}
	})
}

func TestSongCache(t *testing.T) {
	swa := models.SongWithAlbum{
		Song:  models.Song{ID: 9, Title: "Song Nine", AlbumID: 4, Year: 1999, Genre: "ROCK", AudioFile: "nine.mp3"},
		Album: models.Album{ID: 4, Name: "Nines", Artist: "The Nines", Year: 1999},
	}

	t.Run("Round Trip Through Wire", func(t *testing.T) {
		s := openTestStore(t)

		cached := models.NewCachedSong(swa)
		if err := s.Songs.Create(cached); err != nil {
			t.Fatalf("failed to create: %v", err)
		}

		got, err := s.Songs.GetByRemoteID(9)
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if !reflect.DeepEqual(got.Wire(), swa) {
			t.Errorf("wire round trip mismatch:\nwant %+v\ngot  %+v", swa, got.Wire())
		}
	})

	t.Run("List Orders By Artist Then Year", func(t *testing.T) {
		s := openTestStore(t)

		err := s.Songs.Replace([]models.SongWithAlbum{
			{Song: models.Song{ID: 1, Title: "A"}, Album: models.Album{Artist: "zeta", Year: 2000}},
			{Song: models.Song{ID: 2, Title: "B"}, Album: models.Album{Artist: "Alpha", Year: 2010}},
			{Song: models.Song{ID: 3, Title: "C"}, Album: models.Album{Artist: "alpha", Year: 1990}},
		})
		if err != nil {
			t.Fatalf("failed to replace: %v", err)
		}

		songs, err := s.Songs.List(nil)
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}

		var got []int64
		for _, song := range songs {
			got = append(got, song.RemoteID())
		}
		want := []int64{3, 2, 1}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected order %v, got %v", want, got)
		}
	})

	t.Run("List Filters By Genre", func(t *testing.T) {
		s := openTestStore(t)

		err := s.Songs.Replace([]models.SongWithAlbum{
			{Song: models.Song{ID: 1, Title: "A", Genre: "ROCK"}, Album: models.Album{Artist: "x"}},
			{Song: models.Song{ID: 2, Title: "B", Genre: "JAZZ"}, Album: models.Album{Artist: "y"}},
		})
		if err != nil {
			t.Fatalf("failed to replace: %v", err)
		}

		songs, err := s.Songs.List(map[string]any{"genre": "JAZZ"})
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(songs) != 1 || songs[0].RemoteID() != 2 {
			t.Errorf("expected only the jazz song, got %d rows", len(songs))
		}
	})
}
