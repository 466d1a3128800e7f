package pages

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spolify/spolify/internal/api"
	"github.com/spolify/spolify/internal/models"
	"github.com/spolify/spolify/internal/order"
	"github.com/spolify/spolify/internal/router"
	"github.com/spolify/spolify/internal/shared"
)

// Backend is the slice of the API client the pages need. *api.Client
// satisfies it; tests substitute a stub.
type Backend interface {
	Me(ctx context.Context) (*models.User, error)
	Login(ctx context.Context, creds api.Credentials) (*models.User, error)
	Logout(ctx context.Context) error
	Signup(ctx context.Context, data api.SignupData) (*models.User, error)
	Playlists(ctx context.Context) ([]models.Playlist, error)
	CreatePlaylist(ctx context.Context, data api.PlaylistCreation) (*models.Playlist, error)
	PlaylistOrder(ctx context.Context, playlistID int64) ([]int64, error)
	UpdatePlaylistOrder(ctx context.Context, playlistID int64, songIDs []int64) ([]int64, error)
	AddSongs(ctx context.Context, playlistID int64, songIDs []int64) (*models.AddSongsResult, error)
	Songs(ctx context.Context) ([]models.SongWithAlbum, error)
	Song(ctx context.Context, id int64) (models.SongWithAlbum, error)
	Genres(ctx context.Context) ([]models.Genre, error)
}

var _ Backend = (*api.Client)(nil)

// Session is the local marker the auth gate reads and the auth actions write.
type Session interface {
	SaveUser(user models.User) error
	Clear() error
	Active() bool
}

// PlaylistCacher refreshes the local playlist snapshot after a listing.
type PlaylistCacher interface {
	Replace(playlists []models.Playlist) error
}

// SongCacher refreshes the local song snapshot after a listing.
type SongCacher interface {
	Replace(songs []models.SongWithAlbum) error
}

// Opts contains the collaborators Controllers need. Caches are optional;
// when nil, listings are simply not snapshotted locally.
type Opts struct {
	Backend       Backend
	Session       Session
	Logger        *log.Logger
	PageSize      int
	PlaylistCache PlaylistCacher
	SongCache     SongCacher
}

// Controllers holds one controller per screen plus the shared actions.
type Controllers struct {
	backend       Backend
	session       Session
	logger        *log.Logger
	pageSize      int
	playlistCache PlaylistCacher
	songCache     SongCacher
	saves         *keyedMutex
}

// New creates the page controllers.
func New(opts Opts) *Controllers {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = order.DefaultPageSize
	}

	return &Controllers{
		backend:       opts.Backend,
		session:       opts.Session,
		logger:        logger,
		pageSize:      pageSize,
		playlistCache: opts.PlaylistCache,
		songCache:     opts.SongCache,
		saves:         newKeyedMutex(),
	}
}

// Register wires every screen into the router. Login and signup skip the
// session gate; everything else redirects to login without a marker.
func (c *Controllers) Register(r *router.Router) error {
	routes := []struct {
		pattern    string
		controller router.Controller
	}{
		{router.HomeRoute, c.Home},
		{router.LoginRoute, c.Login},
		{"signup", c.Signup},
		{"songs", c.Songs},
		{"playlist-:id", c.Playlist},
	}
	for _, rt := range routes {
		if err := r.Handle(rt.pattern, rt.controller); err != nil {
			return err
		}
	}

	r.Public(router.LoginRoute, "signup")
	return nil
}

// Home lists the user's playlists, newest first.
func (c *Controllers) Home(ctx context.Context, screen router.Screen, _ router.Params) error {
	playlists, err := c.PlaylistListing(ctx)
	if err != nil {
		return err
	}

	screen.Render(renderHome(playlists))
	return nil
}

// PlaylistListing fetches the user's playlists sorted newest first,
// refreshing the local snapshot along the way.
func (c *Controllers) PlaylistListing(ctx context.Context) ([]models.Playlist, error) {
	playlists, err := c.backend.Playlists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlists: %w", err)
	}

	if c.playlistCache != nil {
		if err := c.playlistCache.Replace(playlists); err != nil {
			c.logger.Warn("failed to refresh playlist cache", "err", err)
		}
	}

	byCreation := make([]models.Playlist, len(playlists))
	copy(byCreation, playlists)
	sort.SliceStable(byCreation, func(i, j int) bool {
		return byCreation[i].CreatedAt > byCreation[j].CreatedAt
	})
	return byCreation, nil
}

// Login renders the sign-in screen.
func (c *Controllers) Login(_ context.Context, screen router.Screen, _ router.Params) error {
	screen.Render(loginView)
	return nil
}

// Signup renders the registration screen.
func (c *Controllers) Signup(_ context.Context, screen router.Screen, _ router.Params) error {
	screen.Render(signupView)
	return nil
}

// Songs lists the whole library, refreshing the local snapshot.
func (c *Controllers) Songs(ctx context.Context, screen router.Screen, _ router.Params) error {
	songs, err := c.SongListing(ctx)
	if err != nil {
		return err
	}

	screen.Render(renderSongs(songs))
	return nil
}

// SongListing fetches the song library, refreshing the local snapshot.
func (c *Controllers) SongListing(ctx context.Context) ([]models.SongWithAlbum, error) {
	songs, err := c.backend.Songs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch songs: %w", err)
	}

	if c.songCache != nil {
		if err := c.songCache.Replace(songs); err != nil {
			c.logger.Warn("failed to refresh song cache", "err", err)
		}
	}
	return songs, nil
}

// CreateNamedPlaylist creates a playlist with the given name, optionally
// seeded with initial songs.
func (c *Controllers) CreateNamedPlaylist(ctx context.Context, name string, songIDs ...int64) (*models.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("playlist name: %w", shared.ErrInvalidInput)
	}
	return c.backend.CreatePlaylist(ctx, api.PlaylistCreation{Name: name, SongIDs: songIDs})
}

// Playlist shows one playlist in its resolved display order, first page.
func (c *Controllers) Playlist(ctx context.Context, screen router.Screen, params router.Params) error {
	id, err := api.ParsePlaylistID(params["id"])
	if err != nil {
		return err
	}

	playlist, songs, err := c.ResolvedOrder(ctx, id)
	if err != nil {
		return err
	}

	pager := order.NewPager(len(songs), c.pageSize)
	screen.Render(renderPlaylist(playlist, songs, pager))
	return nil
}

// ResolvedOrder fetches a playlist and computes its display order. A missing
// persisted order is treated as empty, falling back to the sorted membership.
func (c *Controllers) ResolvedOrder(ctx context.Context, playlistID int64) (models.Playlist, []models.SongWithAlbum, error) {
	playlists, err := c.backend.Playlists(ctx)
	if err != nil {
		return models.Playlist{}, nil, fmt.Errorf("failed to fetch playlists: %w", err)
	}

	var playlist *models.Playlist
	for i := range playlists {
		if playlists[i].ID == playlistID {
			playlist = &playlists[i]
			break
		}
	}
	if playlist == nil {
		return models.Playlist{}, nil, fmt.Errorf("playlist %d: %w", playlistID, shared.ErrPlaylistNotFound)
	}

	persisted, err := c.backend.PlaylistOrder(ctx, playlistID)
	if err != nil {
		if apiErr, ok := api.AsError(err); ok && apiErr.IsNotFound() {
			persisted = nil
		} else {
			return models.Playlist{}, nil, fmt.Errorf("failed to fetch playlist order: %w", err)
		}
	}

	songs, err := order.Resolve(ctx, playlist.Songs, persisted, c.backend, c.logger)
	if err != nil {
		return models.Playlist{}, nil, err
	}

	return *playlist, songs, nil
}

// SaveOrder persists a new explicit order, serialized per playlist.
func (c *Controllers) SaveOrder(ctx context.Context, playlistID int64, songIDs []int64) ([]int64, error) {
	unlock := c.saves.lock(playlistID)
	defer unlock()

	confirmed, err := c.backend.UpdatePlaylistOrder(ctx, playlistID, songIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to save playlist order: %w", err)
	}
	return confirmed, nil
}

// AddToPlaylist adds songs to a playlist, serialized with order saves.
func (c *Controllers) AddToPlaylist(ctx context.Context, playlistID int64, songIDs []int64) (*models.AddSongsResult, error) {
	unlock := c.saves.lock(playlistID)
	defer unlock()

	return c.backend.AddSongs(ctx, playlistID, songIDs)
}

// SignIn authenticates and stores the session marker.
func (c *Controllers) SignIn(ctx context.Context, username, password string) (*models.User, error) {
	user, err := c.backend.Login(ctx, api.Credentials{Username: username, Password: password})
	if err != nil {
		return nil, err
	}

	if err := c.session.SaveUser(*user); err != nil {
		return nil, fmt.Errorf("failed to store session marker: %w", err)
	}
	return user, nil
}

// SignOut ends the backend session. The local marker is cleared even when
// the backend call fails; a stale marker only causes a redirect loop.
func (c *Controllers) SignOut(ctx context.Context) error {
	err := c.backend.Logout(ctx)
	if clearErr := c.session.Clear(); clearErr != nil && err == nil {
		err = clearErr
	}
	return err
}

// SignUp registers an account. The backend does not log the new user in.
func (c *Controllers) SignUp(ctx context.Context, data api.SignupData) (*models.User, error) {
	return c.backend.Signup(ctx, data)
}

// Restore asks the backend whether the session cookie is still valid and
// refreshes the marker accordingly. Called once on startup. A rejected
// session clears the marker and surfaces as [shared.ErrNotAuthenticated].
func (c *Controllers) Restore(ctx context.Context) (*models.User, error) {
	user, err := c.backend.Me(ctx)
	if err != nil {
		if apiErr, ok := api.AsError(err); ok && apiErr.IsAuth() {
			c.session.Clear()
			return nil, fmt.Errorf("%w: %v", shared.ErrNotAuthenticated, err)
		}
		return nil, err
	}

	if err := c.session.SaveUser(*user); err != nil {
		return nil, fmt.Errorf("failed to store session marker: %w", err)
	}
	return user, nil
}
