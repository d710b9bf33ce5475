// Package storage provides progress persistence implementations.
package storage

import (
	"context"
	"sync"

	"github.com/hammamikhairi/vintagevendor/internal/domain"
	"github.com/hammamikhairi/vintagevendor/internal/logger"
)

// Compile-time interface check.
var _ domain.ProgressStore = (*MemoryStore)(nil)

// MemoryStore keeps the save record in memory. Safe for concurrent access.
type MemoryStore struct {
	mu  sync.RWMutex
	rec *domain.SaveRecord
	log *logger.Logger
}

// NewMemoryStore creates an empty in-memory progress store.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{log: log}
}

// Save stores a copy of rec, replacing any previous one.
func (s *MemoryStore) Save(ctx context.Context, rec *domain.SaveRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("saving progress for %s (level=%d, coins=%d)", rec.PlayerID, rec.Level, rec.Coins)
	c := rec.Clone()
	s.rec = &c
	return nil
}

// Load returns a copy of the last saved record.
func (s *MemoryStore) Load(ctx context.Context) (*domain.SaveRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.rec == nil {
		s.log.Debug("no progress saved yet")
		return nil, domain.ErrNotFound
	}
	c := s.rec.Clone()
	return &c, nil
}
