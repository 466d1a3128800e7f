package order

import (
	"context"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spolify/spolify/internal/models"
)

// SongFetcher retrieves full song+album detail by ID, one call per ID.
// *api.Client satisfies it via its Song method.
type SongFetcher interface {
	Song(ctx context.Context, id int64) (models.SongWithAlbum, error)
}

// Resolve computes the complete display order for a playlist.
//
// With no persisted order, the whole membership is sorted by the fallback
// rule. With a persisted order, its songs form the prefix (membership-
// filtered) and the remaining membership is appended, fallback-sorted - songs
// added since the last manual reorder land at the end, internally sorted
// sensibly. Persisted IDs no longer in membership are dropped silently.
//
// A failed fetch for one ID skips that song and continues; a single broken
// song must not blank the playlist view. Only context cancellation aborts.
func Resolve(ctx context.Context, membership, persisted []int64, fetcher SongFetcher, logger *log.Logger) ([]models.SongWithAlbum, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	member := make(map[int64]bool, len(membership))
	for _, id := range membership {
		member[id] = true
	}

	if len(persisted) == 0 {
		songs, err := fetchAll(ctx, membership, fetcher, logger)
		if err != nil {
			return nil, err
		}
		sortByArtistYear(songs)
		return songs, nil
	}

	prefixIDs := make([]int64, 0, len(persisted))
	inPrefix := make(map[int64]bool, len(persisted))
	for _, id := range persisted {
		if !member[id] {
			continue
		}
		prefixIDs = append(prefixIDs, id)
		inPrefix[id] = true
	}

	resolved, err := fetchAll(ctx, prefixIDs, fetcher, logger)
	if err != nil {
		return nil, err
	}

	var remainderIDs []int64
	for _, id := range membership {
		if !inPrefix[id] {
			remainderIDs = append(remainderIDs, id)
		}
	}

	remainder, err := fetchAll(ctx, remainderIDs, fetcher, logger)
	if err != nil {
		return nil, err
	}
	sortByArtistYear(remainder)

	return append(resolved, remainder...), nil
}

// SavePayload extracts the ID sequence to persist from a displayed order.
// The server validates membership; nothing is deduplicated client-side.
func SavePayload(songs []models.SongWithAlbum) []int64 {
	ids := make([]int64, len(songs))
	for i, swa := range songs {
		ids[i] = swa.Song.ID
	}
	return ids
}

// fetchAll retrieves detail for each ID in sequence, one request in flight at
// a time, skipping IDs whose fetch fails.
func fetchAll(ctx context.Context, ids []int64, fetcher SongFetcher, logger *log.Logger) ([]models.SongWithAlbum, error) {
	songs := make([]models.SongWithAlbum, 0, len(ids))

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		swa, err := fetcher.Song(ctx, id)
		if err != nil {
			logger.Warn("failed to fetch song detail, skipping", "song", id, "err", err)
			continue
		}
		songs = append(songs, swa)
	}

	return songs, nil
}

// sortByArtistYear is the deterministic fallback order: album artist name
// case-insensitive ascending, ties broken by album year ascending. Stable, so
// equal artist/year pairs keep their input order.
func sortByArtistYear(songs []models.SongWithAlbum) {
	sort.SliceStable(songs, func(i, j int) bool {
		artistI := strings.ToLower(songs[i].Album.Artist)
		artistJ := strings.ToLower(songs[j].Album.Artist)
		if artistI != artistJ {
			return artistI < artistJ
		}
		return songs[i].Album.Year < songs[j].Album.Year
	})
}
