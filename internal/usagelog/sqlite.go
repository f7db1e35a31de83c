package usagelog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

const createTableSQL = `CREATE TABLE IF NOT EXISTS usage_log (
	id                 INTEGER PRIMARY KEY AUTOINCREMENT,
	user               TEXT    NOT NULL,
	tree_species       TEXT    NOT NULL,
	trees_planted      INTEGER NOT NULL,
	years              INTEGER NOT NULL,
	co2_sequestered_kg REAL    NOT NULL
)`

// SQLiteStore keeps the log in a SQLite table. Unlike the file stores it
// appends with a single INSERT and never rewrites earlier rows. The database
// is opened on first use, so an unusable path surfaces from Append or Entries
// like any other persistence failure.
type SQLiteStore struct {
	path string

	mu sync.Mutex
	db *sql.DB
}

// NewSQLiteStore returns a store for the database at path.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Path returns the database file.
func (s *SQLiteStore) Path() string { return s.path }

// Close closes the database if it was opened.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// conn opens (creating if needed) the database. A failed open is retried on
// the next call.
func (s *SQLiteStore) conn(ctx context.Context) (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db, nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		return nil, persistenceError("creating directory for", s.path, err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, persistenceError("opening", s.path, err)
	}
	if _, err = db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, persistenceError("configuring", s.path, err)
	}
	if _, err = db.ExecContext(ctx, createTableSQL); err != nil {
		_ = db.Close()
		return nil, persistenceError("creating table in", s.path, err)
	}

	s.db = db
	return db, nil
}

// Append inserts e as the newest row.
func (s *SQLiteStore) Append(ctx context.Context, e Entry) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO usage_log (user, tree_species, trees_planted, years, co2_sequestered_kg)
		 VALUES (?, ?, ?, ?, ?)`,
		e.User, e.TreeSpecies, e.TreesPlanted, e.Years, e.CO2SequesteredKg)
	if err != nil {
		return persistenceError("inserting into", s.path, err)
	}
	return nil
}

// Entries returns all rows in insertion order.
func (s *SQLiteStore) Entries(ctx context.Context) ([]Entry, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx,
		`SELECT user, tree_species, trees_planted, years, co2_sequestered_kg
		 FROM usage_log ORDER BY id`)
	if err != nil {
		return nil, persistenceError("querying", s.path, err)
	}
	defer func() { _ = rows.Close() }()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err = rows.Scan(&e.User, &e.TreeSpecies, &e.TreesPlanted, &e.Years, &e.CO2SequesteredKg); err != nil {
			return nil, persistenceError("scanning", s.path, err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, persistenceError("iterating", s.path, fmt.Errorf("rows: %w", err))
	}
	return entries, nil
}
