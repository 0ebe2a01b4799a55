// Package httpcache keeps successful GET responses on disk, keyed by URL,
// so repeated runs against the same pages skip the network.
package httpcache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type Entry struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	StoredAt   time.Time
}

// Store maps request URLs to cached responses.
type Store interface {
	Get(url string) (Entry, bool, error)
	Set(url string, e Entry) error
	Erase(url string) error
	Clear() error
	Count() (int, error)
	Close() error
}

const schema = `
CREATE TABLE IF NOT EXISTS responses (
	url        TEXT PRIMARY KEY,
	status     INTEGER NOT NULL,
	header     BLOB,
	body       BLOB,
	stored_at  INTEGER NOT NULL
);`

type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (creating if needed) the cache database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("cache dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init cache %s: %w", path, err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) Get(url string) (Entry, bool, error) {
	var (
		e        Entry
		header   []byte
		storedAt int64
	)

	row := s.db.QueryRow(`SELECT status, header, body, stored_at FROM responses WHERE url = ?`, url)
	err := row.Scan(&e.StatusCode, &header, &e.Body, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}

	if len(header) > 0 {
		if err := json.Unmarshal(header, &e.Header); err != nil {
			return Entry{}, false, fmt.Errorf("decode cached header for %s: %w", url, err)
		}
	}
	e.StoredAt = time.Unix(storedAt, 0)

	return e, true, nil
}

func (s *SQLiteStore) Set(url string, e Entry) error {
	header, err := json.Marshal(e.Header)
	if err != nil {
		return err
	}

	if e.StoredAt.IsZero() {
		e.StoredAt = time.Now()
	}

	_, err = s.db.Exec(
		`INSERT INTO responses (url, status, header, body, stored_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(url) DO UPDATE SET status = excluded.status, header = excluded.header,
		 body = excluded.body, stored_at = excluded.stored_at`,
		url, e.StatusCode, header, e.Body, e.StoredAt.Unix(),
	)

	return err
}

func (s *SQLiteStore) Erase(url string) error {
	_, err := s.db.Exec(`DELETE FROM responses WHERE url = ?`, url)
	return err
}

func (s *SQLiteStore) Clear() error {
	_, err := s.db.Exec(`DELETE FROM responses`)
	return err
}

func (s *SQLiteStore) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM responses`).Scan(&n)
	return n, err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
