package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spolify/spolify/internal/api"
	"github.com/spolify/spolify/internal/models"
	"github.com/spolify/spolify/internal/shared"
	"github.com/urfave/cli/v3"
)

// SongList prints the whole library with album detail. With --cached the
// listing comes from the local store instead of the backend.
func (r *Runner) SongList(ctx context.Context, cmd *cli.Command) error {
	var songs []models.SongWithAlbum

	if cmd.Bool("cached") {
		s, err := r.openStore()
		if err != nil {
			return err
		}
		rows, err := s.Songs.List(nil)
		if err != nil {
			return err
		}
		for _, row := range rows {
			songs = append(songs, row.Wire())
		}
	} else {
		controllers, err := r.controllers()
		if err != nil {
			return err
		}
		songs, err = controllers.SongListing(ctx)
		if err != nil {
			return err
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(songs, cmd.Bool("pretty"))
	}

	for _, swa := range songs {
		r.writePlain("%d\t%s - %s (%s, %d)\n", swa.Song.ID, swa.Album.Artist, swa.Song.Title, swa.Album.Name, swa.Album.Year)
	}
	return nil
}

// SongGenres prints the available genres.
func (r *Runner) SongGenres(ctx context.Context, cmd *cli.Command) error {
	if r.client == nil {
		return fmt.Errorf("%w: backend client not configured", shared.ErrMissingConfig)
	}

	genres, err := r.client.Genres(ctx)
	if err != nil {
		return err
	}

	for _, genre := range genres {
		if genre.Description != "" {
			r.writePlain("%s\t%s\n", genre.Name, genre.Description)
		} else {
			r.writePlain("%s\n", genre.Name)
		}
	}
	return nil
}

// SongUpload uploads a new song with its album metadata as multipart form data.
func (r *Runner) SongUpload(ctx context.Context, cmd *cli.Command) error {
	if r.client == nil {
		return fmt.Errorf("%w: backend client not configured", shared.ErrMissingConfig)
	}

	audioPath := cmd.String("audio")
	audio, err := os.Open(audioPath)
	if err != nil {
		return fmt.Errorf("failed to open audio file: %w", err)
	}
	defer audio.Close()

	upload := api.SongUpload{
		Title:       cmd.String("title"),
		AlbumTitle:  cmd.String("album"),
		AlbumArtist: cmd.String("artist"),
		AlbumYear:   int(cmd.Int("year")),
		Genre:       cmd.String("genre"),
		Audio:       audio,
		AudioName:   filepath.Base(audioPath),
	}

	if imagePath := cmd.String("image"); imagePath != "" {
		image, err := os.Open(imagePath)
		if err != nil {
			return fmt.Errorf("failed to open album image: %w", err)
		}
		defer image.Close()
		upload.Image = image
		upload.ImageName = filepath.Base(imagePath)
	}

	r.logger.Info("uploading song", "title", upload.Title, "audio", audioPath)

	song, err := r.client.UploadSong(ctx, upload)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	return r.writePlain("✓ Uploaded %q (id %d)\n", song.Song.Title, song.Song.ID)
}
