package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/hammamikhairi/vintagevendor/internal/domain"
	"github.com/hammamikhairi/vintagevendor/internal/logger"
)

const (
	progressKey = "progress"
	savedAtKey  = "saved_at"
)

var _ domain.ProgressStore = (*SQLiteStore)(nil)

// SQLiteStore keeps the save record as a JSON blob in a key/value table.
type SQLiteStore struct {
	conn *sqlx.DB
	log  *logger.Logger
}

// OpenSQLite opens or creates the save database at path.
func OpenSQLite(path string, log *logger.Logger) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create save dir: %w", err)
		}
	}

	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{conn: conn, log: log}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	log.Debug("save database ready at %s", path)
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS save_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`
	_, err := s.conn.Exec(schema)
	return err
}

// Save writes the record and its timestamp in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, rec *domain.SaveRecord) error {
	data, err := encodeRecord(rec)
	if err != nil {
		return err
	}

	tx, err := s.conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, "INSERT OR REPLACE INTO save_meta (key, value) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx, progressKey, string(data)); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	if _, err := stmt.ExecContext(ctx, savedAtKey, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("save timestamp: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	s.log.Debug("progress saved (%d bytes)", len(data))
	return nil
}

// Load reads and decodes the record, upgrading older layouts.
func (s *SQLiteStore) Load(ctx context.Context) (*domain.SaveRecord, error) {
	var value string
	err := s.conn.GetContext(ctx, &value, "SELECT value FROM save_meta WHERE key = ?", progressKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	return decodeRecord([]byte(value))
}

// SavedAt reports when the record was last written.
func (s *SQLiteStore) SavedAt(ctx context.Context) (time.Time, error) {
	var value string
	err := s.conn.GetContext(ctx, &value, "SELECT value FROM save_meta WHERE key = ?", savedAtKey)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, domain.ErrNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("load timestamp: %w", err)
	}
	return time.Parse(time.RFC3339, value)
}

// putRaw stores an already-encoded blob. Tests use it to seed old layouts.
func (s *SQLiteStore) putRaw(ctx context.Context, blob string) error {
	_, err := s.conn.ExecContext(ctx, "INSERT OR REPLACE INTO save_meta (key, value) VALUES (?, ?)", progressKey, blob)
	return err
}
