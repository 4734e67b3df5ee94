package session

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

const sessionKey = "session"

// Store persists the signed-in session between runs.
type Store interface {
	LoadSession(ctx context.Context) (*Session, error)
	SaveSession(ctx context.Context, s *Session) error
	ClearSession(ctx context.Context) error
}

// StateStore is a Store backed by a metadata(key, value) table in a local
// SQLite file.
type StateStore struct {
	db *sql.DB
}

var _ Store = (*StateStore)(nil)

// OpenStateStore opens (creating if needed) the SQLite state file at dsn and
// applies its migrations. ":memory:" gives a private in-memory store.
func OpenStateStore(ctx context.Context, dsn string) (*StateStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}
	// ":memory:" databases exist per connection.
	db.SetMaxOpenConns(1)

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &StateStore{db: db}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	fsys, err := fs.Sub(migrationFS, "migrations")
	if err != nil {
		return err
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return fmt.Errorf("state db migrations: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("state db migrations: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *StateStore) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key, or nil if there is none.
func (s *StateStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get metadata[%s]: %w", key, err)
	}
	return value, nil
}

// Set upserts value under key.
func (s *StateStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("set metadata[%s]: %w", key, err)
	}
	return nil
}

// Delete removes key. Missing keys are not an error.
func (s *StateStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete metadata[%s]: %w", key, err)
	}
	return nil
}

func (s *StateStore) LoadSession(ctx context.Context) (*Session, error) {
	raw, err := s.Get(ctx, sessionKey)
	if err != nil || raw == nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode stored session: %w", err)
	}
	return &sess, nil
}

func (s *StateStore) SaveSession(ctx context.Context, sess *Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.Set(ctx, sessionKey, raw)
}

func (s *StateStore) ClearSession(ctx context.Context) error {
	return s.Delete(ctx, sessionKey)
}
