package store

import (
	"context"
	"sync"

	"github.com/kapu/ghostchess/pkg/coredto"
)

// MemoryStore is a development fallback used when no Redis is configured.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]coredto.SessionState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]coredto.SessionState)}
}

func (s *MemoryStore) Save(_ context.Context, state coredto.SessionState) error {
	s.mu.Lock()
	s.states[state.SessionID] = state
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Load(_ context.Context, sessionID string) (*coredto.SessionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	out := state
	return &out, nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.states, sessionID)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) ListIDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.states))
	for id := range s.states {
		ids = append(ids, id)
	}
	return ids, nil
}
