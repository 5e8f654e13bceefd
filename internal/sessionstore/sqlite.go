package sessionstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStore struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

func NewSQLiteStore(path string, ttl time.Duration) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		path = "sessions.db"
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	store := &SQLiteStore{db: db, ttl: ttl, now: time.Now}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS session_flags (
			session_id TEXT NOT NULL,
			name TEXT NOT NULL,
			expires_at_unix INTEGER NOT NULL,
			PRIMARY KEY (session_id, name)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_session_flags_expires_at ON session_flags(expires_at_unix);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Set(ctx context.Context, sessionID, name string) error {
	now := s.now()
	if _, err := s.db.ExecContext(
		ctx,
		`DELETE FROM session_flags WHERE expires_at_unix <= ?`,
		now.Unix(),
	); err != nil {
		return err
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO session_flags (session_id, name, expires_at_unix)
		 VALUES (?, ?, ?)
		 ON CONFLICT(session_id, name) DO UPDATE SET expires_at_unix = excluded.expires_at_unix`,
		sessionID,
		name,
		now.Add(s.ttl).Unix(),
	)
	return err
}

// Take reads and deletes the flag in one transaction so two page loads cannot both
// observe it.
func (s *SQLiteStore) Take(ctx context.Context, sessionID, name string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var expiresAtUnix int64
	err = tx.QueryRowContext(
		ctx,
		`SELECT expires_at_unix FROM session_flags WHERE session_id = ? AND name = ?`,
		sessionID,
		name,
	).Scan(&expiresAtUnix)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if _, err := tx.ExecContext(
		ctx,
		`DELETE FROM session_flags WHERE session_id = ? AND name = ?`,
		sessionID,
		name,
	); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}

	return s.now().Unix() < expiresAtUnix, nil
}

func (s *SQLiteStore) Clear(ctx context.Context, sessionID, name string) error {
	_, err := s.db.ExecContext(
		ctx,
		`DELETE FROM session_flags WHERE session_id = ? AND name = ?`,
		sessionID,
		name,
	)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
