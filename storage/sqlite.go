package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLite persists items in a SQLite database so values survive between
// runs. Every item belongs to an origin, the way browser storage is
// partitioned per site.
type SQLite struct {
	db     *sql.DB
	origin string
}

// NewSQLite opens (or creates) the database at path, ensures the data
// directory exists, and runs schema migrations.
func NewSQLite(path, origin string) (*SQLite, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets a running server and the CLI share the file; the busy
	// timeout makes writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &SQLite{db: db, origin: origin}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS local_storage (
    origin TEXT NOT NULL,
    key TEXT NOT NULL,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    PRIMARY KEY (origin, key)
);
`)
	return err
}

// GetItem returns the value for key or ErrNotFound.
func (s *SQLite) GetItem(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM local_storage WHERE origin = ? AND key = ?`, s.origin, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetItem upserts value under key.
func (s *SQLite) SetItem(key, value string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO local_storage (origin, key, value, updated_at) VALUES (?, ?, ?, ?)`,
		s.origin, key, value, time.Now().UTC().Format(time.RFC3339))
	return err
}

// RemoveItem deletes key.
func (s *SQLite) RemoveItem(key string) error {
	_, err := s.db.Exec(`DELETE FROM local_storage WHERE origin = ? AND key = ?`, s.origin, key)
	return err
}

// Keys returns the keys stored for the origin, sorted.
func (s *SQLite) Keys() ([]string, error) {
	rows, err := s.db.Query(`SELECT key FROM local_storage WHERE origin = ? ORDER BY key`, s.origin)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
