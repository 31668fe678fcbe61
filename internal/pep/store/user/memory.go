package user

import (
	"context"
	"sync"

	"pepgate/internal/pep/models"
)

// MemoryRecord is one in-memory user row.
type MemoryRecord struct {
	UniqueID     string
	Suitability  bool
	IsExposed    bool
	ExposedNames []string
}

// MemoryStore is an in-memory Store for unit tests and local development.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]*MemoryRecord
}

func NewMemory() *MemoryStore {
	return &MemoryStore{users: make(map[string]*MemoryRecord)}
}

// Seed inserts or replaces a user row.
func (s *MemoryStore) Seed(rec MemoryRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[rec.UniqueID] = &rec
}

// Get returns a copy of the stored row.
func (s *MemoryStore) Get(uniqueID string) (MemoryRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[uniqueID]
	if !ok {
		return MemoryRecord{}, false
	}
	return *rec, true
}

func (s *MemoryStore) FindSuitability(_ context.Context, uniqueID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[uniqueID]
	if !ok {
		return false, ErrUserNotFound
	}
	return rec.Suitability, nil
}

func (s *MemoryStore) UpdateDeclaration(_ context.Context, record models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[record.UniqueID]
	if !ok {
		return ErrUserNotFound
	}
	rec.IsExposed = record.IsExposed
	rec.ExposedNames = append([]string(nil), record.ExposedNames...)
	return nil
}
