package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	// Pure-Go SQLite driver
	_ "modernc.org/sqlite"
)

// DefaultDocument is the row name used when one database holds a single canvas
const DefaultDocument = "notes"

const openTimeout = 5 * time.Second

// SQLiteStore keeps documents as rows of a SQLite database
type SQLiteStore struct {
	db   *sql.DB
	path string
	name string
}

// OpenSQLite opens or creates the database at path and ensures the schema
func OpenSQLite(ctx context.Context, path, name string) (*SQLiteStore, error) {
	if name == "" {
		name = DefaultDocument
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "create %s", dir)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(ctx, openTimeout)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "enable WAL")
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS documents (
		name       TEXT PRIMARY KEY,
		body       BLOB NOT NULL,
		updated_at INTEGER
	);`); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "create documents table")
	}

	return &SQLiteStore{db: db, path: path, name: name}, nil
}

// Load returns the stored document body
func (s *SQLiteStore) Load(ctx context.Context) ([]byte, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE name = ?`, s.name).Scan(&body)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrNotFound
	case err != nil:
		return nil, errors.Wrapf(err, "load %s", s.name)
	}
	return body, nil
}

// Save upserts the document body
func (s *SQLiteStore) Save(ctx context.Context, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (name, body, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		s.name, data, time.Now().Unix())
	if err != nil {
		return errors.Wrapf(err, "save %s", s.name)
	}
	return nil
}

// UpdatedAt returns when the document was last saved
func (s *SQLiteStore) UpdatedAt(ctx context.Context) (time.Time, error) {
	var ts sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT updated_at FROM documents WHERE name = ?`, s.name).Scan(&ts)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return time.Time{}, ErrNotFound
	case err != nil:
		return time.Time{}, errors.Wrapf(err, "stat %s", s.name)
	}
	return time.Unix(ts.Int64, 0), nil
}

// Location returns "path#name"
func (s *SQLiteStore) Location() string {
	return s.path + "#" + s.name
}

// Close releases the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
