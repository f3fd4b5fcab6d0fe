package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps entries in a local SQLite file. Meant for local runs of
// the HTTP server where no AWS account is available.
type SQLiteStore struct {
	db    *sql.DB
	clock clockwork.Clock
}

// OpenSQLiteStore opens (creating if needed) the database at path. Use
// ":memory:" for a throwaway store.
func OpenSQLiteStore(path string, clock clockwork.Clock) (*SQLiteStore, error) {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}
	// A single connection keeps ":memory:" databases coherent.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS cache_entries (
			cache_key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			last_updated INTEGER NOT NULL,
			expires_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_cache_entries_expires ON cache_entries(expires_at);
	`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating cache_entries table: %w", err)
	}

	return &SQLiteStore{db: db, clock: clock}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	var expiresAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT value, expires_at FROM cache_entries WHERE cache_key = ?`, key,
	).Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying cache entry: %w", err)
	}

	if s.clock.Now().Unix() >= expiresAt {
		return nil, nil
	}
	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	now := s.clock.Now().Unix()
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO cache_entries (cache_key, value, last_updated, expires_at) VALUES (?, ?, ?, ?)`,
		key, value, now, now+int64(ttl.Seconds()),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Purge deletes expired rows and reports how many were removed.
func (s *SQLiteStore) Purge(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE expires_at <= ?`, s.clock.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("purging cache entries: %w", err)
	}
	return res.RowsAffected()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
