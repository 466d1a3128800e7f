package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spolify/spolify/internal/api"
	"github.com/spolify/spolify/internal/formatter"
	"github.com/spolify/spolify/internal/models"
	"github.com/spolify/spolify/internal/order"
	"github.com/spolify/spolify/internal/shared"
	"github.com/urfave/cli/v3"
)

// PlaylistList prints the user's playlists, newest first. With --cached the
// listing comes from the local store instead of the backend.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	var playlists []models.Playlist

	if cmd.Bool("cached") {
		s, err := r.openStore()
		if err != nil {
			return err
		}
		rows, err := s.Playlists.List(nil)
		if err != nil {
			return err
		}
		for _, row := range rows {
			playlists = append(playlists, row.Wire())
		}
		sort.SliceStable(playlists, func(i, j int) bool {
			return playlists[i].CreatedAt > playlists[j].CreatedAt
		})
	} else {
		controllers, err := r.controllers()
		if err != nil {
			return err
		}
		playlists, err = controllers.PlaylistListing(ctx)
		if err != nil {
			return err
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, cmd.Bool("pretty"))
	}

	for _, p := range playlists {
		r.writePlain("%d\t%s (%d songs, created %s)\n", p.ID, p.Name, len(p.Songs), p.CreatedAt)
	}
	return nil
}

// PlaylistShow prints a playlist's complete resolved display order.
func (r *Runner) PlaylistShow(ctx context.Context, cmd *cli.Command) error {
	controllers, err := r.controllers()
	if err != nil {
		return err
	}

	id, err := api.ParsePlaylistID(cmd.StringArg("id"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}

	playlist, songs, err := controllers.ResolvedOrder(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(formatter.Export{Playlist: playlist, Songs: songs}, cmd.Bool("pretty"))
	}

	r.writePlain("%s (%d songs)\n", playlist.Name, len(songs))
	for i, swa := range songs {
		r.writePlain("%d. %s - %s (%d)\n", i+1, swa.Album.Artist, swa.Song.Title, swa.Album.Year)
	}
	return nil
}

// PlaylistCreate creates a playlist, optionally seeded with initial songs.
func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	controllers, err := r.controllers()
	if err != nil {
		return err
	}

	var songIDs []int64
	for _, arg := range cmd.StringArgs("songs") {
		songID, err := api.ParseSongID(arg)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
		}
		songIDs = append(songIDs, songID)
	}

	playlist, err := controllers.CreateNamedPlaylist(ctx, cmd.StringArg("name"), songIDs...)
	if err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}

	return r.writePlain("✓ Created %q (id %d)\n", playlist.Name, playlist.ID)
}

// PlaylistMove moves one song to a new position in the resolved order and
// persists the result, the CLI equivalent of a single drag-and-drop.
func (r *Runner) PlaylistMove(ctx context.Context, cmd *cli.Command) error {
	controllers, err := r.controllers()
	if err != nil {
		return err
	}

	id, err := api.ParsePlaylistID(cmd.StringArg("id"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}

	from := int(cmd.Int("from"))
	to := int(cmd.Int("to"))

	_, songs, err := controllers.ResolvedOrder(ctx, id)
	if err != nil {
		return err
	}
	if from < 1 || from > len(songs) || to < 1 || to > len(songs) {
		return fmt.Errorf("%w: positions must be between 1 and %d", shared.ErrInvalidArgument, len(songs))
	}

	session := order.NewReorder(songs)
	session.Grab(from - 1)
	session.MoveTo(to-1, to < from)
	session.Drop()

	confirmed, err := controllers.SaveOrder(ctx, id, session.Payload())
	if err != nil {
		return err
	}

	r.logger.Info("order saved", "playlist", id, "songs", len(confirmed))
	return r.writePlain("✓ Moved position %d to %d\n", from, to)
}

// PlaylistAdd adds songs to a playlist, reporting duplicates separately.
func (r *Runner) PlaylistAdd(ctx context.Context, cmd *cli.Command) error {
	controllers, err := r.controllers()
	if err != nil {
		return err
	}

	id, err := api.ParsePlaylistID(cmd.StringArg("id"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}

	var songIDs []int64
	for _, arg := range cmd.StringArgs("songs") {
		songID, err := api.ParseSongID(arg)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
		}
		songIDs = append(songIDs, songID)
	}

	result, err := controllers.AddToPlaylist(ctx, id, songIDs)
	if err != nil {
		return err
	}

	r.writePlain("✓ Added %d songs\n", len(result.AddedSongIDs))
	if len(result.DuplicateSongIDs) > 0 {
		ids := make([]string, len(result.DuplicateSongIDs))
		for i, songID := range result.DuplicateSongIDs {
			ids[i] = fmt.Sprintf("%d", songID)
		}
		r.writePlain("Skipped duplicates: %s\n", strings.Join(ids, ", "))
	}
	return nil
}

// PlaylistQueue prints the play queue for a playlist: audio stream URLs in
// resolved order, starting at the chosen song and running to the end.
func (r *Runner) PlaylistQueue(ctx context.Context, cmd *cli.Command) error {
	controllers, err := r.controllers()
	if err != nil {
		return err
	}

	id, err := api.ParsePlaylistID(cmd.StringArg("id"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}

	playlist, songs, err := controllers.ResolvedOrder(ctx, id)
	if err != nil {
		return err
	}
	if len(songs) == 0 {
		return r.writePlain("%s is empty\n", playlist.Name)
	}

	start := 0
	if from := cmd.String("from"); from != "" {
		songID, err := api.ParseSongID(from)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
		}
		start = -1
		for i, swa := range songs {
			if swa.Song.ID == songID {
				start = i
				break
			}
		}
		if start < 0 {
			return fmt.Errorf("%w: song %d is not in %q", shared.ErrInvalidArgument, songID, playlist.Name)
		}
	}

	for i, swa := range songs[start:] {
		r.writePlain("%d. %s - %s\t%s\n", i+1, swa.Album.Artist, swa.Song.Title, r.client.SongAudioURL(swa.Song.ID))
	}
	return nil
}

// PlaylistExport writes a playlist's resolved order to disk in the chosen format.
func (r *Runner) PlaylistExport(ctx context.Context, cmd *cli.Command) error {
	controllers, err := r.controllers()
	if err != nil {
		return err
	}

	id, err := api.ParsePlaylistID(cmd.StringArg("id"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}

	playlist, songs, err := controllers.ResolvedOrder(ctx, id)
	if err != nil {
		return err
	}

	export := &formatter.Export{Playlist: playlist, Songs: songs}
	output := cmd.String("output")

	switch cmd.String("format") {
	case "text":
		path, err := formatter.WriteTextExport(export, output)
		if err != nil {
			return err
		}
		return r.writePlain("✓ Exported to %s\n", path)
	case "csv":
		result, err := formatter.WriteCSVExport(export, output)
		if err != nil {
			return err
		}
		return r.writePlain("✓ Exported to %s and %s\n", result.SongsFile, result.MetadataFile)
	case "markdown":
		var imageURL string
		if len(songs) > 0 && songs[0].Album.Image != "" {
			imageURL = r.client.SongImageURL(songs[0].Song.ID)
		}
		result, err := formatter.WriteMarkdownExport(export, output, imageURL)
		if err != nil {
			return err
		}
		return r.writePlain("✓ Exported to %s\n", result.Directory)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, cmd.String("format"))
	}
}
