package storage

import (
	"context"
	"slices"
	"sync"
)

// MemorySelectionStore is used when no redis is configured and in tests.
type MemorySelectionStore struct {
	mu       sync.RWMutex
	sessions map[string][]string
}

func NewMemorySelectionStore() *MemorySelectionStore {
	return &MemorySelectionStore{sessions: make(map[string][]string)}
}

func (s *MemorySelectionStore) Load(_ context.Context, sessionId string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.sessions[sessionId]), nil
}

func (s *MemorySelectionStore) Save(_ context.Context, sessionId string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(ids) == 0 {
		delete(s.sessions, sessionId)
		return nil
	}
	s.sessions[sessionId] = slices.Clone(ids)
	return nil
}

func (s *MemorySelectionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *MemorySelectionStore) Close() error { return nil }
