package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/apimgr/moviesaver/src/model"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS movies (
	position   INTEGER PRIMARY KEY,
	updated_at TEXT    NOT NULL,
	title      TEXT    NOT NULL,
	year       INTEGER NOT NULL,
	price      REAL    NOT NULL
)`

// SQLiteStore keeps the catalog in a single-table SQLite database. The position column
// preserves insertion order; Save replaces every row inside one transaction.
type SQLiteStore struct {
	path string
}

// NewSQLiteStore returns a store for the database file at path
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Path() string   { return s.path }
func (s *SQLiteStore) Format() Format { return FormatSQLite }

func (s *SQLiteStore) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return db, nil
}

// Load reads every row ordered by position. A missing file is an empty catalog and is
// not created.
func (s *SQLiteStore) Load(ctx context.Context) ([]model.Movie, error) {
	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat %s: %w", s.path, err)
	}

	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		"SELECT updated_at, title, year, price FROM movies ORDER BY position")
	if err != nil {
		if strings.Contains(err.Error(), "no such table") {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	defer rows.Close()

	var movies []model.Movie
	for rows.Next() {
		var m model.Movie
		if err := rows.Scan(&m.Timestamp, &m.Title, &m.Year, &m.Price); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return movies, nil
}

// Save replaces the table contents with movies
func (s *SQLiteStore) Save(ctx context.Context, movies []model.Movie) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create storage directory: %w", err)
	}

	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("create movies table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM movies"); err != nil {
		return fmt.Errorf("clear movies: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO movies (position, updated_at, title, year, price) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, m := range movies {
		if _, err := stmt.ExecContext(ctx, i+1, m.Timestamp, m.Title, m.Year, m.Price); err != nil {
			return fmt.Errorf("insert movie %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
