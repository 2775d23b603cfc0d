package store

import (
	"context"
	"sync"
	"time"

	"github.com/roach88/nyx/internal/domain"
)

// MemoryStore is the in-process implementation of domain.Store, used by
// tests and for running without a database.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string]map[string]domain.Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: make(map[string]map[string]domain.Record)}
}

func (s *MemoryStore) Get(_ context.Context, table, id string) (domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.tables[table][id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return rec.Clone(), nil
}

func (s *MemoryStore) Upsert(_ context.Context, table string, rec domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, ok := s.tables[table]
	if !ok {
		rows = make(map[string]domain.Record)
		s.tables[table] = rows
	}
	rows[rec.ID()] = rec.Clone()
	return nil
}

func (s *MemoryStore) LastModified(_ context.Context, table, id string) (time.Time, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.tables[table][id]
	if !ok {
		return time.Time{}, false, nil
	}
	ts, _ := rec.LastModified()
	return ts, true, nil
}
