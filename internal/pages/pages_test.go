package pages

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spolify/spolify/internal/api"
	"github.com/spolify/spolify/internal/models"
	"github.com/spolify/spolify/internal/router"
	"github.com/spolify/spolify/internal/shared"
	apptesting "github.com/spolify/spolify/internal/testing"
)

type stubSession struct {
	user *models.User
}

func (s *stubSession) SaveUser(u models.User) error { s.user = &u; return nil }
func (s *stubSession) Clear() error                 { s.user = nil; return nil }
func (s *stubSession) Active() bool                 { return s.user != nil }

type stubBackend struct {
	playlists     []models.Playlist
	orders        map[int64][]int64
	library       *apptesting.SongLibrary
	songs         []models.SongWithAlbum
	meErr         error
	loginErr      error
	logoutErr     error
	saveErr       error
	saved         [][]int64
	playlistCalls atomic.Int32
}

func (b *stubBackend) Me(ctx context.Context) (*models.User, error) {
	if b.meErr != nil {
		return nil, b.meErr
	}
	return &models.User{Username: "ada"}, nil
}

func (b *stubBackend) Login(ctx context.Context, creds api.Credentials) (*models.User, error) {
	if b.loginErr != nil {
		return nil, b.loginErr
	}
	return &models.User{Username: creds.Username}, nil
}

func (b *stubBackend) Logout(ctx context.Context) error { return b.logoutErr }

func (b *stubBackend) Signup(ctx context.Context, data api.SignupData) (*models.User, error) {
	return &models.User{Username: data.Username}, nil
}

func (b *stubBackend) Playlists(ctx context.Context) ([]models.Playlist, error) {
	b.playlistCalls.Add(1)
	return b.playlists, nil
}

func (b *stubBackend) CreatePlaylist(ctx context.Context, data api.PlaylistCreation) (*models.Playlist, error) {
	return &models.Playlist{ID: 100, Name: data.Name, Songs: data.SongIDs}, nil
}

func (b *stubBackend) PlaylistOrder(ctx context.Context, playlistID int64) ([]int64, error) {
	return b.orders[playlistID], nil
}

func (b *stubBackend) UpdatePlaylistOrder(ctx context.Context, playlistID int64, songIDs []int64) ([]int64, error) {
	if b.saveErr != nil {
		return nil, b.saveErr
	}
	b.saved = append(b.saved, songIDs)
	return songIDs, nil
}

func (b *stubBackend) AddSongs(ctx context.Context, playlistID int64, songIDs []int64) (*models.AddSongsResult, error) {
	return &models.AddSongsResult{AddedSongIDs: songIDs}, nil
}

func (b *stubBackend) Songs(ctx context.Context) ([]models.SongWithAlbum, error) {
	return b.songs, nil
}

func (b *stubBackend) Song(ctx context.Context, id int64) (models.SongWithAlbum, error) {
	return b.library.Song(ctx, id)
}

func (b *stubBackend) Genres(ctx context.Context) ([]models.Genre, error) { return nil, nil }

func newTestRouter(t *testing.T, backend *stubBackend, session *stubSession) (*router.Router, *Controllers) {
	t.Helper()

	r := router.New(router.Opts{
		Session: session,
		Logger:  log.New(io.Discard),
	})
	controllers := New(Opts{
		Backend: backend,
		Session: session,
		Logger:  log.New(io.Discard),
	})
	if err := controllers.Register(r); err != nil {
		t.Fatalf("failed to register routes: %v", err)
	}
	return r, controllers
}

func signedIn() *stubSession {
	return &stubSession{user: &models.User{Username: "ada"}}
}

func TestPlaylistScreen(t *testing.T) {
	backend := &stubBackend{
		playlists: []models.Playlist{
			{ID: 7, Name: "Road Trip", CreatedAt: "2025-06-01", Songs: []int64{1, 2, 3}},
		},
		orders: map[int64][]int64{7: {3, 1}},
		library: apptesting.NewSongLibrary(
			apptesting.Track(1, "One", "aardvark", 1991),
			apptesting.Track(2, "Two", "bobcat", 1992),
			apptesting.Track(3, "Three", "zeta", 1993),
		),
	}

	t.Run("Shows The Resolved Order", func(t *testing.T) {
		r, _ := newTestRouter(t, backend, signedIn())
		r.Start(context.Background())
		r.Navigate("#playlist-7")
		r.Wait()

		view := r.Display().View()
		if !strings.Contains(view, "Road Trip") {
			t.Errorf("expected the playlist name, got %q", view)
		}

		// Persisted prefix [3 1], then the remainder fallback-sorted.
		three := strings.Index(view, "Three")
		one := strings.Index(view, "One")
		two := strings.Index(view, "Two")
		if three < 0 || one < 0 || two < 0 || !(three < one && one < two) {
			t.Errorf("expected order Three, One, Two in view:\n%s", view)
		}

		if !strings.Contains(view, "Page 1 of 1") {
			t.Errorf("expected the pager footer, got %q", view)
		}
	})

	t.Run("Unknown Playlist Shows The Error View", func(t *testing.T) {
		r, _ := newTestRouter(t, backend, signedIn())
		r.Start(context.Background())
		r.Navigate("#playlist-99")
		r.Wait()

		if view := r.Display().View(); !strings.Contains(view, "Error loading page") {
			t.Errorf("expected the error view, got %q", view)
		}
		if r.State() != router.StateDispatched {
			t.Errorf("expected StateDispatched after a failed controller, got %v", r.State())
		}
	})

	t.Run("Paginates Long Playlists", func(t *testing.T) {
		long := &stubBackend{
			playlists: []models.Playlist{
				{ID: 1, Name: "Marathon", Songs: []int64{1, 2, 3, 4, 5, 6, 7}},
			},
			orders:  map[int64][]int64{},
			library: apptesting.NewSongLibrary(),
		}
		for i := int64(1); i <= 7; i++ {
			track := apptesting.Track(i, fmt.Sprintf("Track%d", i), fmt.Sprintf("artist%d", i), 2000)
			long.library.Songs[i] = track
		}

		r, _ := newTestRouter(t, long, signedIn())
		r.Start(context.Background())
		r.Navigate("#playlist-1")
		r.Wait()

		view := r.Display().View()
		if !strings.Contains(view, "Page 1 of 2") {
			t.Errorf("expected two pages for seven songs, got %q", view)
		}
		if strings.Contains(view, "Track6") {
			t.Errorf("expected the first page to stop at five songs, got %q", view)
		}
	})
}

func TestSessionGate(t *testing.T) {
	t.Run("Redirects To Login Without A Marker", func(t *testing.T) {
		backend := &stubBackend{}
		r, _ := newTestRouter(t, backend, &stubSession{})
		r.Start(context.Background())
		r.Wait()

		if view := r.Display().View(); !strings.Contains(view, "Sign In") {
			t.Errorf("expected the login screen, got %q", view)
		}
		if calls := backend.playlistCalls.Load(); calls != 0 {
			t.Errorf("expected no backend calls behind the gate, got %d", calls)
		}
	})

	t.Run("Signup Stays Reachable", func(t *testing.T) {
		r, _ := newTestRouter(t, &stubBackend{}, &stubSession{})
		r.Start(context.Background())
		r.Navigate("#signup")
		r.Wait()

		if view := r.Display().View(); !strings.Contains(view, "Create Account") {
			t.Errorf("expected the signup screen, got %q", view)
		}
	})
}

func TestRegister(t *testing.T) {
	t.Run("Wires Screens In Declaration Order", func(t *testing.T) {
		r := router.New(router.Opts{Session: signedIn(), Logger: log.New(io.Discard)})
		occupied := func(ctx context.Context, screen router.Screen, _ router.Params) error { return nil }

		// Occupy two patterns. Registration walks its table in order, so the
		// conflict it reports must always be the earliest one, "home".
		if err := r.Handle("songs", occupied); err != nil {
			t.Fatalf("failed to seed route: %v", err)
		}
		if err := r.Handle("home", occupied); err != nil {
			t.Fatalf("failed to seed route: %v", err)
		}

		controllers := New(Opts{Backend: &stubBackend{}, Session: signedIn()})
		err := controllers.Register(r)
		if err == nil {
			t.Fatal("expected a conflict error")
		}
		if !strings.Contains(err.Error(), `"home"`) {
			t.Errorf("expected the conflict on %q first, got %v", "home", err)
		}
	})
}

func TestHomeScreen(t *testing.T) {
	t.Run("Lists Playlists Newest First", func(t *testing.T) {
		backend := &stubBackend{
			playlists: []models.Playlist{
				{ID: 1, Name: "Oldest", CreatedAt: "2024-01-01T00:00:00Z"},
				{ID: 2, Name: "Newest", CreatedAt: "2025-06-01T00:00:00Z"},
			},
		}

		r, _ := newTestRouter(t, backend, signedIn())
		r.Start(context.Background())
		r.Wait()

		view := r.Display().View()
		newest := strings.Index(view, "Newest")
		oldest := strings.Index(view, "Oldest")
		if newest < 0 || oldest < 0 || newest > oldest {
			t.Errorf("expected Newest before Oldest:\n%s", view)
		}
	})

	t.Run("Empty Library Gets A Hint", func(t *testing.T) {
		r, _ := newTestRouter(t, &stubBackend{}, signedIn())
		r.Start(context.Background())
		r.Wait()

		if view := r.Display().View(); !strings.Contains(view, "No playlists yet") {
			t.Errorf("expected the empty state, got %q", view)
		}
	})
}

func TestAuthActions(t *testing.T) {
	t.Run("Sign In Stores The Marker", func(t *testing.T) {
		session := &stubSession{}
		controllers := New(Opts{Backend: &stubBackend{}, Session: session})

		user, err := controllers.SignIn(context.Background(), "ada", "secret")
		if err != nil {
			t.Fatalf("failed to sign in: %v", err)
		}
		if user.Username != "ada" {
			t.Errorf("expected the logged-in user back, got %+v", user)
		}
		if !session.Active() {
			t.Error("expected an active session marker")
		}
	})

	t.Run("Failed Sign In Leaves No Marker", func(t *testing.T) {
		session := &stubSession{}
		backend := &stubBackend{loginErr: &api.Error{Status: 401, Message: "bad credentials"}}
		controllers := New(Opts{Backend: backend, Session: session})

		if _, err := controllers.SignIn(context.Background(), "ada", "wrong"); err == nil {
			t.Fatal("expected the login error to surface")
		}
		if session.Active() {
			t.Error("expected no marker after a failed login")
		}
	})

	t.Run("Rejected Session Restore Clears The Marker", func(t *testing.T) {
		session := signedIn()
		backend := &stubBackend{meErr: &api.Error{Status: 401, Message: "session expired"}}
		controllers := New(Opts{Backend: backend, Session: session})

		_, err := controllers.Restore(context.Background())
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
		if session.Active() {
			t.Error("expected the marker to be cleared")
		}
	})

	t.Run("Restore Keeps The Marker On Transport Failures", func(t *testing.T) {
		session := signedIn()
		backend := &stubBackend{meErr: &api.Error{Status: 0, Message: "connection refused"}}
		controllers := New(Opts{Backend: backend, Session: session})

		_, err := controllers.Restore(context.Background())
		if errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected a plain transport error, got %v", err)
		}
		if !session.Active() {
			t.Error("expected the marker to survive a network failure")
		}
	})

	t.Run("Sign Out Clears The Marker Even When The Backend Fails", func(t *testing.T) {
		session := signedIn()
		backend := &stubBackend{logoutErr: &api.Error{Status: 0, Message: "connection refused"}}
		controllers := New(Opts{Backend: backend, Session: session})

		if err := controllers.SignOut(context.Background()); err == nil {
			t.Error("expected the backend error to surface")
		}
		if session.Active() {
			t.Error("expected the marker to be cleared regardless")
		}
	})
}

func TestSaveOrder(t *testing.T) {
	t.Run("Persists And Confirms", func(t *testing.T) {
		backend := &stubBackend{}
		controllers := New(Opts{Backend: backend, Session: &stubSession{}})

		confirmed, err := controllers.SaveOrder(context.Background(), 7, []int64{2, 3, 1})
		if err != nil {
			t.Fatalf("failed to save: %v", err)
		}
		if len(confirmed) != 3 || confirmed[0] != 2 {
			t.Errorf("expected the confirmation to echo the order, got %v", confirmed)
		}
		if len(backend.saved) != 1 {
			t.Errorf("expected exactly one save call, got %d", len(backend.saved))
		}
	})

	t.Run("Surfaces Save Failures", func(t *testing.T) {
		backend := &stubBackend{saveErr: &api.Error{Status: 500, Message: "boom"}}
		controllers := New(Opts{Backend: backend, Session: &stubSession{}})

		if _, err := controllers.SaveOrder(context.Background(), 7, []int64{1}); err == nil {
			t.Error("expected the save error to surface")
		}
	})
}
