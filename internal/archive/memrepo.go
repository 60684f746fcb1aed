package archive

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/kapu/ghostchess/internal/domain"
)

// memrepo is a development-only archive used when no database is
// configured.
type memrepo struct {
	mu sync.RWMutex

	nextID    int64
	games     []*domain.GameRecord
	bySession map[string]*domain.GameRecord
}

func NewMemoryRepository() Repository {
	return &memrepo{bySession: make(map[string]*domain.GameRecord)}
}

func (m *memrepo) InsertGame(_ context.Context, game *domain.GameRecord) (int64, error) {
	if game == nil {
		return 0, ErrDuplicateGame
	}
	key := strings.TrimSpace(game.SessionID)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.bySession[key]; exists {
		return 0, ErrDuplicateGame
	}
	m.nextID++
	stored := *game
	stored.ID = m.nextID
	m.games = append(m.games, &stored)
	m.bySession[key] = &stored
	return stored.ID, nil
}

func (m *memrepo) GetRecentGames(_ context.Context, limit int) ([]*domain.GameRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	items := append([]*domain.GameRecord(nil), m.games...)
	sort.Slice(items, func(i, j int) bool {
		if !items[i].EndedAt.Equal(items[j].EndedAt) {
			return items[i].EndedAt.After(items[j].EndedAt)
		}
		return items[i].ID > items[j].ID
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	out := make([]*domain.GameRecord, len(items))
	for i, g := range items {
		dup := *g
		out[i] = &dup
	}
	return out, nil
}

func (m *memrepo) GetGameBySession(_ context.Context, sessionID string) (*domain.GameRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.bySession[strings.TrimSpace(sessionID)]; ok && g != nil {
		dup := *g
		return &dup, nil
	}
	return nil, nil
}
