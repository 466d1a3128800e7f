package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/spolify/spolify/internal/models"
)

// SongUpload carries the multipart fields for uploading a new song.
// Audio is required; Image is optional album art.
type SongUpload struct {
	Title       string
	AlbumTitle  string
	AlbumArtist string
	AlbumYear   int
	Genre       string
	Audio       io.Reader
	AudioName   string
	Image       io.Reader
	ImageName   string
}

// Songs fetches all songs (with album detail) for the authenticated user.
func (c *Client) Songs(ctx context.Context) ([]models.SongWithAlbum, error) {
	var songs []models.SongWithAlbum
	if err := c.do(ctx, http.MethodGet, "/songs", nil, &songs); err != nil {
		return nil, err
	}
	return songs, nil
}

// Song fetches a single song with its album detail.
func (c *Client) Song(ctx context.Context, songID int64) (models.SongWithAlbum, error) {
	var song models.SongWithAlbum
	path := fmt.Sprintf("/songs/%d", songID)
	if err := c.do(ctx, http.MethodGet, path, nil, &song); err != nil {
		return models.SongWithAlbum{}, err
	}
	return song, nil
}

// Genres fetches the available song genres.
func (c *Client) Genres(ctx context.Context) ([]models.Genre, error) {
	var genres []models.Genre
	if err := c.do(ctx, http.MethodGet, "/songs/genres", nil, &genres); err != nil {
		return nil, err
	}
	return genres, nil
}

// UploadSong uploads a new song as a multipart form.
func (c *Client) UploadSong(ctx context.Context, upload SongUpload) (*models.SongWithAlbum, error) {
	if upload.Audio == nil {
		return nil, fmt.Errorf("song upload requires an audio file")
	}

	body, contentType, err := buildUploadForm(upload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/songs", body)
	if err != nil {
		return nil, transportError(err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", contentType)

	var song models.SongWithAlbum
	if err := c.send(req, &song); err != nil {
		return nil, err
	}
	return &song, nil
}

func buildUploadForm(upload SongUpload) (io.Reader, string, error) {
	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		defer pw.Close()

		fields := map[string]string{
			"title":       upload.Title,
			"albumTitle":  upload.AlbumTitle,
			"albumArtist": upload.AlbumArtist,
			"albumYear":   strconv.Itoa(upload.AlbumYear),
			"genre":       upload.Genre,
		}
		for name, value := range fields {
			if err := writer.WriteField(name, value); err != nil {
				pw.CloseWithError(err)
				return
			}
		}

		part, err := writer.CreateFormFile("audioFile", upload.AudioName)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, upload.Audio); err != nil {
			pw.CloseWithError(err)
			return
		}

		if upload.Image != nil {
			part, err := writer.CreateFormFile("albumImage", upload.ImageName)
			if err != nil {
				pw.CloseWithError(err)
				return
			}
			if _, err := io.Copy(part, upload.Image); err != nil {
				pw.CloseWithError(err)
				return
			}
		}

		pw.CloseWithError(writer.Close())
	}()

	return pr, writer.FormDataContentType(), nil
}

// SongImageURL constructs the URL for a song's album image. The image is a
// binary stream fetched by whatever renders it, never as JSON.
func (c *Client) SongImageURL(songID int64) string {
	return fmt.Sprintf("%s/songs/%d/image", c.baseURL, songID)
}

// SongAudioURL constructs the URL for a song's audio stream.
func (c *Client) SongAudioURL(songID int64) string {
	return fmt.Sprintf("%s/songs/%d/audio", c.baseURL, songID)
}
