package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spolify/spolify/internal/models"
)

// PlaylistCreation carries the fields for creating a playlist, optionally with initial songs.
type PlaylistCreation struct {
	Name    string  `json:"name"`
	SongIDs []int64 `json:"songIds,omitempty"`
}

type addSongsRequest struct {
	SongIDs []int64 `json:"songIds"`
}

// Playlists fetches all playlists for the authenticated user.
func (c *Client) Playlists(ctx context.Context) ([]models.Playlist, error) {
	var playlists []models.Playlist
	if err := c.do(ctx, http.MethodGet, "/playlists", nil, &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

// CreatePlaylist creates a new playlist.
func (c *Client) CreatePlaylist(ctx context.Context, data PlaylistCreation) (*models.Playlist, error) {
	var playlist models.Playlist
	if err := c.do(ctx, http.MethodPost, "/playlists", data, &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// PlaylistOrder fetches the persisted explicit song order for a playlist.
// The result may be empty or shorter than the playlist's membership.
func (c *Client) PlaylistOrder(ctx context.Context, playlistID int64) ([]int64, error) {
	var order []int64
	path := fmt.Sprintf("/playlists/%d/order", playlistID)
	if err := c.do(ctx, http.MethodGet, path, nil, &order); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdatePlaylistOrder persists a new explicit song order for a playlist.
func (c *Client) UpdatePlaylistOrder(ctx context.Context, playlistID int64, songIDs []int64) ([]int64, error) {
	var confirmed []int64
	path := fmt.Sprintf("/playlists/%d/order", playlistID)
	if err := c.do(ctx, http.MethodPut, path, songIDs, &confirmed); err != nil {
		return nil, err
	}
	return confirmed, nil
}

// AddSongs adds songs to a playlist; the response distinguishes added from duplicate IDs.
func (c *Client) AddSongs(ctx context.Context, playlistID int64, songIDs []int64) (*models.AddSongsResult, error) {
	var result models.AddSongsResult
	path := fmt.Sprintf("/playlists/%d/songs", playlistID)
	if err := c.do(ctx, http.MethodPost, path, addSongsRequest{SongIDs: songIDs}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
