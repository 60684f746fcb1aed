package archive

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kapu/ghostchess/internal/domain"
)

func record(sessionID string, endedAt time.Time) *domain.GameRecord {
	return &domain.GameRecord{
		SessionID:    sessionID,
		Mode:         "human_vs_engine",
		PlayerSide:   "white",
		Depth:        3,
		Result:       "black_wins",
		ResultMethod: "checkmate",
		MovesUCI:     []string{"f2f3", "e7e5", "g2g4", "d8h4"},
		FinalFEN:     "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 0 3",
		StartedAt:    endedAt.Add(-time.Minute),
		EndedAt:      endedAt,
		Duration:     time.Minute,
	}
}

func TestMemoryRepositoryRejectsDuplicateSession(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	id, err := repo.InsertGame(ctx, record("s1", time.Now()))
	require.NoError(t, err)
	assert.Positive(t, id)

	_, err = repo.InsertGame(ctx, record("s1", time.Now()))
	assert.ErrorIs(t, err, ErrDuplicateGame)
}

func TestMemoryRepositoryRecentGamesOrdering(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	base := time.Now()

	for i, sid := range []string{"s1", "s2", "s3"} {
		_, err := repo.InsertGame(ctx, record(sid, base.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, err)
	}

	games, err := repo.GetRecentGames(ctx, 2)
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "s3", games[0].SessionID, "latest first")
	assert.Equal(t, "s2", games[1].SessionID)
}

func TestMemoryRepositoryLookupBySession(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.InsertGame(ctx, record("s1", time.Now()))
	require.NoError(t, err)

	g, err := repo.GetGameBySession(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, "checkmate", g.ResultMethod)
	assert.Len(t, g.MovesUCI, 4)

	missing, err := repo.GetGameBySession(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
