package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/booking/internal/apperror"
	"github.com/sakif/booking/internal/model"
	"github.com/sakif/booking/internal/repository"
)

var _ repository.ArtistRepository = (*DB)(nil)

const artistColumns = `id, name, city, state, phone, genres, image_link,
	facebook_link, website_link, seeking_venue, seeking_description, created_at`

const upcomingForArtist = `(SELECT COUNT(*) FROM shows s
	WHERE s.artist_id = a.id AND s.start_time > ` + sqlNow + `)`

func scanArtist(row rowScanner) (*model.Artist, error) {
	var (
		a      model.Artist
		genres string
	)
	if err := row.Scan(
		&a.ID, &a.Name, &a.City, &a.State, &a.Phone, &genres,
		&a.ImageLink, &a.FacebookLink, &a.WebsiteLink, &a.SeekingVenue,
		&a.SeekingDescription, &a.CreatedAt,
	); err != nil {
		return nil, err
	}
	g, err := decodeGenres(genres)
	if err != nil {
		return nil, err
	}
	a.Genres = g
	return &a, nil
}

func (db *DB) CreateArtist(ctx context.Context, artist *model.Artist) error {
	genres, err := encodeGenres(artist.Genres)
	if err != nil {
		return err
	}

	id := xid.New().String()
	createdAt := time.Now().UTC()

	err = db.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO artists (`+artistColumns+`)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, artist.Name, artist.City, artist.State, artist.Phone, genres,
			artist.ImageLink, artist.FacebookLink, artist.WebsiteLink,
			artist.SeekingVenue, artist.SeekingDescription, createdAt,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("sqlite: creating artist: %w", err)
	}

	artist.ID = id
	artist.CreatedAt = createdAt
	if artist.Genres == nil {
		artist.Genres = []string{}
	}
	return nil
}

func (db *DB) GetArtist(ctx context.Context, id string) (*model.Artist, error) {
	a, err := scanArtist(db.conn.QueryRowContext(ctx,
		`SELECT `+artistColumns+` FROM artists WHERE id = ?`, id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("artist", id)
		}
		return nil, fmt.Errorf("sqlite: getting artist %s: %w", id, err)
	}
	return a, nil
}

func (db *DB) UpdateArtist(ctx context.Context, artist *model.Artist) error {
	genres, err := encodeGenres(artist.Genres)
	if err != nil {
		return err
	}

	return db.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE artists
			 SET name = ?, city = ?, state = ?, phone = ?, genres = ?,
			     image_link = ?, facebook_link = ?, website_link = ?,
			     seeking_venue = ?, seeking_description = ?
			 WHERE id = ?`,
			artist.Name, artist.City, artist.State, artist.Phone, genres,
			artist.ImageLink, artist.FacebookLink, artist.WebsiteLink,
			artist.SeekingVenue, artist.SeekingDescription,
			artist.ID,
		)
		if err != nil {
			return fmt.Errorf("sqlite: updating artist %s: %w", artist.ID, err)
		}
		return requireOneRow(result, "artist", artist.ID)
	})
}

func (db *DB) DeleteArtist(ctx context.Context, id string) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM artists WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("sqlite: deleting artist %s: %w", id, err)
		}
		return requireOneRow(result, "artist", id)
	})
}

// ListArtists returns every artist's id and name in insertion order.
func (db *DB) ListArtists(ctx context.Context) ([]model.ArtistSummary, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name FROM artists ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing artists: %w", err)
	}
	defer rows.Close()

	artists := []model.ArtistSummary{}
	for rows.Next() {
		var s model.ArtistSummary
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("sqlite: scanning artist row: %w", err)
		}
		artists = append(artists, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating artists: %w", err)
	}
	return artists, nil
}

func (db *DB) SearchArtists(ctx context.Context, term string) ([]model.ArtistSummary, error) {
	return db.artistSummaries(ctx,
		`SELECT a.id, a.name, `+upcomingForArtist+`
		 FROM artists a
		 WHERE fold(a.name) LIKE ? ESCAPE '\'
		 ORDER BY a.rowid`,
		likePattern(term),
	)
}

func (db *DB) RecentArtists(ctx context.Context, limit int) ([]model.ArtistSummary, error) {
	return db.artistSummaries(ctx,
		`SELECT a.id, a.name, `+upcomingForArtist+`
		 FROM artists a
		 ORDER BY a.created_at DESC, a.rowid DESC
		 LIMIT ?`,
		limit,
	)
}

func (db *DB) artistSummaries(ctx context.Context, query string, args ...any) ([]model.ArtistSummary, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: querying artists: %w", err)
	}
	defer rows.Close()

	artists := []model.ArtistSummary{}
	for rows.Next() {
		var s model.ArtistSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.NumUpcomingShows); err != nil {
			return nil, fmt.Errorf("sqlite: scanning artist row: %w", err)
		}
		artists = append(artists, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating artists: %w", err)
	}
	return artists, nil
}

// ArtistDetail mirrors VenueDetail from the artist side of the join.
func (db *DB) ArtistDetail(ctx context.Context, id string) (*model.ArtistDetail, error) {
	artist, err := db.GetArtist(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT v.id, v.name, v.image_link, s.start_time,
		        s.start_time > `+sqlNow+` AS upcoming
		 FROM shows s
		 JOIN venues v ON v.id = s.venue_id
		 WHERE s.artist_id = ?
		 ORDER BY s.start_time, s.rowid`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing shows for artist %s: %w", id, err)
	}
	defer rows.Close()

	detail := &model.ArtistDetail{
		Artist:        *artist,
		PastShows:     []model.ArtistShow{},
		UpcomingShows: []model.ArtistShow{},
	}
	for rows.Next() {
		var (
			show     model.ArtistShow
			upcoming bool
		)
		if err := rows.Scan(&show.VenueID, &show.VenueName, &show.VenueImageLink,
			&show.StartTime, &upcoming); err != nil {
			return nil, fmt.Errorf("sqlite: scanning artist show row: %w", err)
		}
		if upcoming {
			detail.UpcomingShows = append(detail.UpcomingShows, show)
		} else {
			detail.PastShows = append(detail.PastShows, show)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating artist shows: %w", err)
	}

	detail.PastShowsCount = len(detail.PastShows)
	detail.UpcomingShowsCount = len(detail.UpcomingShows)
	return detail, nil
}
