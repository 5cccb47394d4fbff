package sqlite

import (
	"context"
	"testing"

	"github.com/sakif/booking/internal/model"
)

// TESTING WITH IN-MEMORY SQLITE:
// ":memory:" gives each test a fresh, isolated database that disappears
// when the connection closes. New pins the pool to one connection so the
// whole test sees the same database.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestVenue(t *testing.T, db *DB, name, city, state string) *model.Venue {
	t.Helper()
	venue := &model.Venue{Name: name, City: city, State: state, Genres: []string{"Jazz"}}
	if err := db.CreateVenue(context.Background(), venue); err != nil {
		t.Fatalf("failed to create test venue: %v", err)
	}
	return venue
}

func createTestArtist(t *testing.T, db *DB, name string) *model.Artist {
	t.Helper()
	artist := &model.Artist{Name: name, City: "San Francisco", State: "CA", Genres: []string{"Rock n Roll"}}
	if err := db.CreateArtist(context.Background(), artist); err != nil {
		t.Fatalf("failed to create test artist: %v", err)
	}
	return artist
}

// insertShowAt places a show at a time computed by SQLite itself, e.g.
// "datetime('now')" or "datetime('now', '+1 year')". Using the database
// clock is the only way to put a show exactly at the partition boundary.
func insertShowAt(t *testing.T, db *DB, venueID, artistID, sqlTime string) {
	t.Helper()
	_, err := db.conn.Exec(
		`INSERT INTO shows (id, venue_id, artist_id, start_time) VALUES (lower(hex(randomblob(10))), ?, ?, `+sqlTime+`)`,
		venueID, artistID,
	)
	if err != nil {
		t.Fatalf("failed to insert show at %s: %v", sqlTime, err)
	}
}

func TestNew_MigrationsAreIdempotent(t *testing.T) {
	db := newTestDB(t)

	if err := db.migrate(); err != nil {
		t.Fatalf("second migrate() error = %v", err)
	}
}

func TestNew_ForeignKeysEnabled(t *testing.T) {
	db := newTestDB(t)

	var enabled int
	if err := db.conn.QueryRow(`PRAGMA foreign_keys`).Scan(&enabled); err != nil {
		t.Fatalf("reading foreign_keys pragma: %v", err)
	}
	if enabled != 1 {
		t.Errorf("foreign_keys = %d, want 1", enabled)
	}
}

func TestDSN(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{":memory:", ":memory:?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"},
		{"data/booking.db", "data/booking.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"},
		{"file:x.db?cache=shared", "file:x.db?cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"},
	}
	for _, tt := range tests {
		if got := dsn(tt.path); got != tt.want {
			t.Errorf("dsn(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestLikePattern(t *testing.T) {
	tests := []struct {
		term string
		want string
	}{
		{"fill", "%fill%"},
		{"FILL", "%fill%"},
		{"100%", `%100\%%`},
		{"a_b", `%a\_b%`},
		{`c:\`, `%c:\\%`},
	}
	for _, tt := range tests {
		if got := likePattern(tt.term); got != tt.want {
			t.Errorf("likePattern(%q) = %q, want %q", tt.term, got, tt.want)
		}
	}
}

func TestGenresRoundTripNeverNull(t *testing.T) {
	raw, err := encodeGenres(nil)
	if err != nil {
		t.Fatalf("encodeGenres(nil) error = %v", err)
	}
	if raw != "[]" {
		t.Errorf("encodeGenres(nil) = %q, want %q", raw, "[]")
	}

	genres, err := decodeGenres("")
	if err != nil {
		t.Fatalf("decodeGenres(\"\") error = %v", err)
	}
	if genres == nil {
		t.Error("decodeGenres(\"\") returned nil, want empty slice")
	}
}

func TestPing(t *testing.T) {
	db := newTestDB(t)
	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}
