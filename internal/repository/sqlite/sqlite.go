// Package sqlite implements the repository interfaces using SQLite as the storage backend.
//
// WHY modernc.org/sqlite?
// It is a pure Go translation of SQLite: no C compiler, no CGo, and the
// same binary runs the tests against ":memory:".
//
// TIME HANDLING:
// Show start times are stored as UTC TEXT in model.StartTimeLayout. That
// is exactly the format of SQLite's datetime('now'), so "is this show in
// the future?" is a plain string comparison evaluated by the database at
// query time:
//
//	s.start_time > datetime('now')   → upcoming
//	s.start_time <= datetime('now')  → past
package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	sqlitedriver "modernc.org/sqlite"
)

// sqlNow is the database clock every temporal filter is evaluated against.
const sqlNow = "datetime('now')"

// DB wraps a sql.DB connection pool and implements every repository
// interface in internal/repository.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
//
// dbPath examples:
//   - "data/booking.db"  → file-based database (persistent)
//   - ":memory:"         → in-memory database (tests)
//
// PRAGMAS PER CONNECTION:
// foreign_keys is a per-connection setting, and sql.DB is a pool. Running
// "PRAGMA foreign_keys=ON" once would only configure whichever connection
// happened to run it, so the pragma goes into the DSN instead and the
// driver applies it to every connection it opens.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Every connection to ":memory:" is a separate, empty database.
	// Pin the pool to one connection so all queries see the same data.
	if isMemory(dbPath) {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets readers proceed while a write transaction is open.
	// In-memory databases answer "memory" and that is fine.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

func dsn(dbPath string) string {
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return dbPath + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func isMemory(dbPath string) bool {
	return dbPath == ":memory:" || strings.Contains(dbPath, "mode=memory")
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping checks that the database is reachable. Used by the health endpoint.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// withTx runs fn inside a transaction.
//
// SCOPED ACQUISITION:
// The transaction pins one pooled connection until it ends. The deferred
// Rollback releases it on every path: after a successful Commit it is a
// no-op (sql.ErrTxDone), after a failure it undoes the partial work.
// fn must only use tx; going back to db.conn while holding the single
// ":memory:" connection would block forever.
func (db *DB) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing transaction: %w", err)
	}
	return nil
}

// migrate runs all database migrations.
//
// Phase 1 is the initial directory schema. Phase 2 adds the columns that
// came later (genres, website and "seeking" fields); addColumnIfNotExists
// keeps it safe to run against databases created by phase 1 only.
func (db *DB) migrate() error {
	// Phase 1: base tables
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS venues (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			city          TEXT NOT NULL DEFAULT '',
			state         TEXT NOT NULL DEFAULT '',
			address       TEXT NOT NULL DEFAULT '',
			phone         TEXT NOT NULL DEFAULT '',
			image_link    TEXT NOT NULL DEFAULT '',
			facebook_link TEXT NOT NULL DEFAULT '',
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_venues_locality ON venues(state, city);
	`)
	if err != nil {
		return fmt.Errorf("creating venues table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS artists (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			city          TEXT NOT NULL DEFAULT '',
			state         TEXT NOT NULL DEFAULT '',
			phone         TEXT NOT NULL DEFAULT '',
			image_link    TEXT NOT NULL DEFAULT '',
			facebook_link TEXT NOT NULL DEFAULT '',
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating artists table: %w", err)
	}

	// Deleting a venue or an artist removes its shows with it.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS shows (
			id         TEXT PRIMARY KEY,
			venue_id   TEXT NOT NULL REFERENCES venues(id) ON DELETE CASCADE,
			artist_id  TEXT NOT NULL REFERENCES artists(id) ON DELETE CASCADE,
			start_time TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_shows_venue_id ON shows(venue_id);
		CREATE INDEX IF NOT EXISTS idx_shows_artist_id ON shows(artist_id);
		CREATE INDEX IF NOT EXISTS idx_shows_start_time ON shows(start_time);
	`)
	if err != nil {
		return fmt.Errorf("creating shows table: %w", err)
	}

	// Phase 2: profile columns
	for _, table := range []string{"venues", "artists"} {
		columns := []struct{ name, definition string }{
			{"genres", "TEXT NOT NULL DEFAULT '[]'"},
			{"website_link", "TEXT NOT NULL DEFAULT ''"},
			{"seeking_description", "TEXT NOT NULL DEFAULT ''"},
		}
		for _, c := range columns {
			if err := db.addColumnIfNotExists(table, c.name, c.definition); err != nil {
				return fmt.Errorf("adding %s to %s: %w", c.name, table, err)
			}
		}
	}
	if err := db.addColumnIfNotExists("venues", "seeking_talent", "INTEGER NOT NULL DEFAULT 0"); err != nil {
		return fmt.Errorf("adding seeking_talent to venues: %w", err)
	}
	if err := db.addColumnIfNotExists("artists", "seeking_venue", "INTEGER NOT NULL DEFAULT 0"); err != nil {
		return fmt.Errorf("adding seeking_venue to artists: %w", err)
	}

	return nil
}

// addColumnIfNotExists adds a column to a table only if it doesn't already exist.
// Makes ALTER TABLE migrations idempotent, so New can run them on every start.
func (db *DB) addColumnIfNotExists(table, column, definition string) error {
	var count int
	err := db.conn.QueryRow(
		`SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`,
		table, column,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("checking column %s.%s: %w", table, column, err)
	}
	if count > 0 {
		return nil
	}
	_, err = db.conn.Exec(fmt.Sprintf(
		`ALTER TABLE %s ADD COLUMN %s %s`, table, column, definition,
	))
	return err
}

// encodeGenres stores a genre list as a JSON array. nil becomes "[]" so the
// column never holds null.
func encodeGenres(genres []string) (string, error) {
	if genres == nil {
		genres = []string{}
	}
	b, err := json.Marshal(genres)
	if err != nil {
		return "", fmt.Errorf("sqlite: encoding genres: %w", err)
	}
	return string(b), nil
}

func decodeGenres(raw string) ([]string, error) {
	genres := []string{}
	if raw == "" {
		return genres, nil
	}
	if err := json.Unmarshal([]byte(raw), &genres); err != nil {
		return nil, fmt.Errorf("sqlite: decoding genres %q: %w", raw, err)
	}
	return genres, nil
}

func init() {
	// SQLite's lower() only folds ASCII. Searches compare fold(name) against
	// a pattern lowered by the same Go function so both sides agree.
	sqlitedriver.MustRegisterDeterministicScalarFunction("fold", 1, foldFunc)
}

func foldFunc(_ *sqlitedriver.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// likePattern turns a user search term into a LIKE pattern matching it as a
// literal substring. Use with ESCAPE '\'.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
