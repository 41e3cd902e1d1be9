package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/mikey-austin/mu_browse/internal/media"
)

const (
	appName    = "mu"
	dbFileName = "browse.db"
	memoryPath = ":memory:"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = media.ErrNotFound

// Store is the local library and queue store backed by SQLite.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the database location under the XDG data directory.
func DefaultPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

// Open opens (creating if needed) the database at path. An empty path uses
// DefaultPath.
func Open(path string) (*Store, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	if path != memoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if path == memoryPath {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS songs (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			artist_id TEXT,
			artist_name TEXT,
			album_id TEXT,
			album_title TEXT,
			track_number INTEGER,
			duration_ms INTEGER,
			thumbnail_url TEXT,
			stream_url TEXT,
			video INTEGER NOT NULL DEFAULT 0,
			episode INTEGER NOT NULL DEFAULT 0,
			in_library INTEGER NOT NULL DEFAULT 0,
			on_device INTEGER NOT NULL DEFAULT 0,
			hidden INTEGER NOT NULL DEFAULT 0,
			date_added INTEGER NOT NULL,
			liked_at INTEGER,
			play_time_ms INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_songs_date_added ON songs(date_added);
		CREATE INDEX IF NOT EXISTS idx_songs_liked_at ON songs(liked_at);
		CREATE INDEX IF NOT EXISTS idx_songs_artist ON songs(artist_id);
		CREATE INDEX IF NOT EXISTS idx_songs_album ON songs(album_id);

		CREATE TABLE IF NOT EXISTS artists (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			thumbnail_url TEXT,
			in_library INTEGER NOT NULL DEFAULT 0,
			bookmarked_at INTEGER
		);

		CREATE TABLE IF NOT EXISTS albums (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			artist_id TEXT,
			artist_name TEXT,
			year INTEGER,
			thumbnail_url TEXT,
			in_library INTEGER NOT NULL DEFAULT 0,
			bookmarked_at INTEGER
		);

		CREATE TABLE IF NOT EXISTS playlists (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			author TEXT,
			remote_id TEXT,
			thumbnail_url TEXT,
			podcast INTEGER NOT NULL DEFAULT 0,
			editable INTEGER NOT NULL DEFAULT 0,
			bookmarked_at INTEGER,
			created_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS playlist_songs (
			playlist_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			song_id TEXT NOT NULL,
			PRIMARY KEY (playlist_id, position)
		);

		CREATE TABLE IF NOT EXISTS queue_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			position_ms INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS queue_items (
			position INTEGER PRIMARY KEY,
			node_id TEXT NOT NULL,
			song_id TEXT NOT NULL,
			title TEXT NOT NULL,
			artist_name TEXT,
			album_title TEXT,
			duration_ms INTEGER,
			thumbnail_url TEXT,
			video INTEGER NOT NULL DEFAULT 0,
			episode INTEGER NOT NULL DEFAULT 0,
			resume_point INTEGER NOT NULL DEFAULT 0
		);
	`)
	return err
}

// withTx executes fn within a transaction, rolling back on error.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func nullInt64Value(n sql.NullInt64) int64 {
	if !n.Valid {
		return 0
	}
	return n.Int64
}

func nullStringValue(n sql.NullString) string {
	if !n.Valid {
		return ""
	}
	return n.String
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

func notFound(err error, what, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
	}
	return err
}
