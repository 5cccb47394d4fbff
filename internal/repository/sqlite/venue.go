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

var _ repository.VenueRepository = (*DB)(nil)

const venueColumns = `id, name, city, state, address, phone, genres, image_link,
	facebook_link, website_link, seeking_talent, seeking_description, created_at`

// upcomingForVenue counts the future shows of the venue aliased "v".
const upcomingForVenue = `(SELECT COUNT(*) FROM shows s
	WHERE s.venue_id = v.id AND s.start_time > ` + sqlNow + `)`

func scanVenue(row rowScanner) (*model.Venue, error) {
	var (
		v      model.Venue
		genres string
	)
	if err := row.Scan(
		&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone, &genres,
		&v.ImageLink, &v.FacebookLink, &v.WebsiteLink, &v.SeekingTalent,
		&v.SeekingDescription, &v.CreatedAt,
	); err != nil {
		return nil, err
	}
	g, err := decodeGenres(genres)
	if err != nil {
		return nil, err
	}
	v.Genres = g
	return &v, nil
}

// CreateVenue inserts a venue in its own transaction and fills in the
// generated ID and creation time.
func (db *DB) CreateVenue(ctx context.Context, venue *model.Venue) error {
	genres, err := encodeGenres(venue.Genres)
	if err != nil {
		return err
	}

	id := xid.New().String()
	createdAt := time.Now().UTC()

	err = db.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO venues (`+venueColumns+`)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, venue.Name, venue.City, venue.State, venue.Address, venue.Phone,
			genres, venue.ImageLink, venue.FacebookLink, venue.WebsiteLink,
			venue.SeekingTalent, venue.SeekingDescription, createdAt,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("sqlite: creating venue: %w", err)
	}

	venue.ID = id
	venue.CreatedAt = createdAt
	if venue.Genres == nil {
		venue.Genres = []string{}
	}
	return nil
}

func (db *DB) GetVenue(ctx context.Context, id string) (*model.Venue, error) {
	v, err := scanVenue(db.conn.QueryRowContext(ctx,
		`SELECT `+venueColumns+` FROM venues WHERE id = ?`, id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("venue", id)
		}
		return nil, fmt.Errorf("sqlite: getting venue %s: %w", id, err)
	}
	return v, nil
}

// UpdateVenue overwrites every mutable column of the venue.
func (db *DB) UpdateVenue(ctx context.Context, venue *model.Venue) error {
	genres, err := encodeGenres(venue.Genres)
	if err != nil {
		return err
	}

	return db.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE venues
			 SET name = ?, city = ?, state = ?, address = ?, phone = ?, genres = ?,
			     image_link = ?, facebook_link = ?, website_link = ?,
			     seeking_talent = ?, seeking_description = ?
			 WHERE id = ?`,
			venue.Name, venue.City, venue.State, venue.Address, venue.Phone, genres,
			venue.ImageLink, venue.FacebookLink, venue.WebsiteLink,
			venue.SeekingTalent, venue.SeekingDescription,
			venue.ID,
		)
		if err != nil {
			return fmt.Errorf("sqlite: updating venue %s: %w", venue.ID, err)
		}
		return requireOneRow(result, "venue", venue.ID)
	})
}

// DeleteVenue removes the venue; its shows go with it (ON DELETE CASCADE).
func (db *DB) DeleteVenue(ctx context.Context, id string) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("sqlite: deleting venue %s: %w", id, err)
		}
		return requireOneRow(result, "venue", id)
	})
}

// ListVenuesByLocality groups every venue under its exact (city, state).
//
// Two queries instead of one per locality: the distinct pairs, then all
// venues with their upcoming counts, bucketed in memory by the same key.
func (db *DB) ListVenuesByLocality(ctx context.Context) ([]model.LocalityGroup, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT DISTINCT city, state FROM venues ORDER BY state, city`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing localities: %w", err)
	}
	defer rows.Close()

	var groups localityGroups
	for rows.Next() {
		var city, state string
		if err := rows.Scan(&city, &state); err != nil {
			return nil, fmt.Errorf("sqlite: scanning locality row: %w", err)
		}
		groups.lookup(city, state)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating localities: %w", err)
	}
	rows.Close()

	venueRows, err := db.conn.QueryContext(ctx,
		`SELECT v.id, v.name, v.city, v.state, `+upcomingForVenue+`
		 FROM venues v
		 ORDER BY v.rowid`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing venues: %w", err)
	}
	defer venueRows.Close()

	for venueRows.Next() {
		var (
			s           model.VenueSummary
			city, state string
		)
		if err := venueRows.Scan(&s.ID, &s.Name, &city, &state, &s.NumUpcomingShows); err != nil {
			return nil, fmt.Errorf("sqlite: scanning venue row: %w", err)
		}
		// A venue inserted between the two queries gets its own group.
		g := groups.lookup(city, state)
		g.Venues = append(g.Venues, s)
	}
	if err := venueRows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating venues: %w", err)
	}

	return groups.result(), nil
}

type locality struct{ city, state string }

// localityGroups buckets venues by (city, state) in first-seen order.
type localityGroups struct {
	groups []model.LocalityGroup
	index  map[locality]int
}

// lookup returns the group for the pair, appending an empty one if needed.
func (l *localityGroups) lookup(city, state string) *model.LocalityGroup {
	key := locality{city, state}
	i, ok := l.index[key]
	if !ok {
		if l.index == nil {
			l.index = make(map[locality]int)
		}
		i = len(l.groups)
		l.index[key] = i
		l.groups = append(l.groups, model.LocalityGroup{City: city, State: state, Venues: []model.VenueSummary{}})
	}
	return &l.groups[i]
}

func (l *localityGroups) result() []model.LocalityGroup {
	if l.groups == nil {
		return []model.LocalityGroup{}
	}
	return l.groups
}

// SearchVenues matches term as a case-insensitive substring of the name.
func (db *DB) SearchVenues(ctx context.Context, term string) ([]model.VenueSummary, error) {
	return db.venueSummaries(ctx,
		`SELECT v.id, v.name, `+upcomingForVenue+`
		 FROM venues v
		 WHERE fold(v.name) LIKE ? ESCAPE '\'
		 ORDER BY v.rowid`,
		likePattern(term),
	)
}

// RecentVenues returns the newest venues first.
func (db *DB) RecentVenues(ctx context.Context, limit int) ([]model.VenueSummary, error) {
	return db.venueSummaries(ctx,
		`SELECT v.id, v.name, `+upcomingForVenue+`
		 FROM venues v
		 ORDER BY v.created_at DESC, v.rowid DESC
		 LIMIT ?`,
		limit,
	)
}

func (db *DB) venueSummaries(ctx context.Context, query string, args ...any) ([]model.VenueSummary, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: querying venues: %w", err)
	}
	defer rows.Close()

	venues := []model.VenueSummary{}
	for rows.Next() {
		var s model.VenueSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.NumUpcomingShows); err != nil {
			return nil, fmt.Errorf("sqlite: scanning venue row: %w", err)
		}
		venues = append(venues, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating venues: %w", err)
	}
	return venues, nil
}

// VenueDetail loads the venue and its shows, split into past and upcoming
// by the database clock. A show starting exactly now is past.
func (db *DB) VenueDetail(ctx context.Context, id string) (*model.VenueDetail, error) {
	venue, err := db.GetVenue(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT a.id, a.name, a.image_link, s.start_time,
		        s.start_time > `+sqlNow+` AS upcoming
		 FROM shows s
		 JOIN artists a ON a.id = s.artist_id
		 WHERE s.venue_id = ?
		 ORDER BY s.start_time, s.rowid`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing shows for venue %s: %w", id, err)
	}
	defer rows.Close()

	detail := &model.VenueDetail{
		Venue:         *venue,
		PastShows:     []model.VenueShow{},
		UpcomingShows: []model.VenueShow{},
	}
	for rows.Next() {
		var (
			show     model.VenueShow
			upcoming bool
		)
		if err := rows.Scan(&show.ArtistID, &show.ArtistName, &show.ArtistImageLink,
			&show.StartTime, &upcoming); err != nil {
			return nil, fmt.Errorf("sqlite: scanning venue show row: %w", err)
		}
		if upcoming {
			detail.UpcomingShows = append(detail.UpcomingShows, show)
		} else {
			detail.PastShows = append(detail.PastShows, show)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating venue shows: %w", err)
	}

	detail.PastShowsCount = len(detail.PastShows)
	detail.UpcomingShowsCount = len(detail.UpcomingShows)
	return detail, nil
}

// requireOneRow turns "nothing matched the WHERE id = ?" into NotFound.
func requireOneRow(result sql.Result, resource, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if n == 0 {
		return apperror.NotFound(resource, id)
	}
	return nil
}
