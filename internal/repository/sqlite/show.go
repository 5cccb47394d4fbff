package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/xid"
	"github.com/sakif/booking/internal/model"
	"github.com/sakif/booking/internal/repository"
)

var _ repository.ShowRepository = (*DB)(nil)

// CreateShow inserts a show. The foreign keys reject unknown venue or
// artist ids, which surfaces here as a constraint error.
func (db *DB) CreateShow(ctx context.Context, show *model.Show) error {
	id := xid.New().String()

	err := db.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO shows (id, venue_id, artist_id, start_time) VALUES (?, ?, ?, ?)`,
			id, show.VenueID, show.ArtistID, model.FormatStartTime(show.StartTime),
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("sqlite: creating show: %w", err)
	}

	show.ID = id
	return nil
}

// ListShows joins every show to its venue and artist, earliest first.
func (db *DB) ListShows(ctx context.Context) ([]model.ShowListing, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT s.venue_id, v.name, s.artist_id, a.name, a.image_link, s.start_time
		 FROM shows s
		 JOIN venues v ON v.id = s.venue_id
		 JOIN artists a ON a.id = s.artist_id
		 ORDER BY s.start_time ASC, s.rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing shows: %w", err)
	}
	defer rows.Close()

	shows := []model.ShowListing{}
	for rows.Next() {
		var s model.ShowListing
		if err := rows.Scan(&s.VenueID, &s.VenueName, &s.ArtistID, &s.ArtistName,
			&s.ArtistImageLink, &s.StartTime); err != nil {
			return nil, fmt.Errorf("sqlite: scanning show row: %w", err)
		}
		shows = append(shows, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating shows: %w", err)
	}
	return shows, nil
}
