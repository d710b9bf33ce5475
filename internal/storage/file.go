package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/hammamikhairi/vintagevendor/internal/domain"
	"github.com/hammamikhairi/vintagevendor/internal/logger"
)

var _ domain.ProgressStore = (*FileStore)(nil)

// FileStore keeps the save record in a single JSON file. Writes go to a
// temp file in the same directory and are renamed into place.
type FileStore struct {
	path string
	log  *logger.Logger
}

// NewFileStore returns a store backed by path. The file is created on
// the first Save.
func NewFileStore(path string, log *logger.Logger) *FileStore {
	return &FileStore{path: path, log: log}
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Save atomically replaces the save file.
func (s *FileStore) Save(ctx context.Context, rec *domain.SaveRecord) error {
	data, err := encodeRecord(rec)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".save-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace save file: %w", err)
	}

	s.log.Debug("progress written to %s", s.path)
	return nil
}

// Load reads and decodes the save file.
func (s *FileStore) Load(ctx context.Context) (*domain.SaveRecord, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read save file: %w", err)
	}
	return decodeRecord(data)
}

// SavedAt reports the save file's modification time.
func (s *FileStore) SavedAt(ctx context.Context) (time.Time, error) {
	info, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return time.Time{}, domain.ErrNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("stat save file: %w", err)
	}
	return info.ModTime(), nil
}
