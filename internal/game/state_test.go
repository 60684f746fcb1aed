package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kapu/ghostchess/internal/board"
)

func play(t *testing.T, s *State, ucis ...string) {
	t.Helper()
	for _, uci := range ucis {
		m, err := board.ParseMove(uci)
		require.NoError(t, err)
		require.NoError(t, s.MakeMove(m), uci)
	}
}

func TestMakeMoveRejectsIllegalMove(t *testing.T) {
	s := New()
	m, err := board.ParseMove("e2e5")
	require.NoError(t, err)
	err = s.MakeMove(m)
	assert.ErrorIs(t, err, ErrIllegalMove)
	assert.Equal(t, board.StartingFEN, s.FEN(), "state untouched on failure")
	assert.Zero(t, s.MoveCount())
}

func TestFoolsMateEndsGame(t *testing.T) {
	s := New()
	play(t, s, "f2f3", "e7e5", "g2g4", "d8h4")
	assert.Equal(t, BlackWins, s.Status())

	m, err := board.ParseMove("a2a3")
	require.NoError(t, err)
	assert.ErrorIs(t, s.MakeMove(m), ErrGameOver)
}

func TestUndoRestoresExactFEN(t *testing.T) {
	s := New()
	play(t, s, "e2e4")

	undone, err := s.Undo()
	require.NoError(t, err)
	assert.Equal(t, "e2e4", undone.String())
	assert.Equal(t, board.StartingFEN, s.FEN())
	assert.Zero(t, s.MoveCount())

	_, err = s.Undo()
	assert.ErrorIs(t, err, ErrNoHistory)
}

func TestUndoUnterminatesGame(t *testing.T) {
	s := New()
	play(t, s, "f2f3", "e7e5", "g2g4", "d8h4")
	require.Equal(t, BlackWins, s.Status())

	_, err := s.Undo()
	require.NoError(t, err)
	assert.Equal(t, InProgress, s.Status())
	assert.NotEmpty(t, s.LegalMoves())
}

func TestFromFENClassifiesTerminalPosition(t *testing.T) {
	s, err := FromFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 0 1")
	require.NoError(t, err)
	assert.Equal(t, BlackWins, s.Status())

	_, err = FromFEN("not a fen")
	assert.Error(t, err)
}

func TestCastleAndPromotionFlagsResolvedFromLegalSet(t *testing.T) {
	s, err := FromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	m, err := board.ParseMove("e1g1")
	require.NoError(t, err)
	require.NoError(t, s.MakeMove(m))
	history := s.MoveHistory()
	require.Len(t, history, 1)
	assert.True(t, history[0].IsCastle, "flag recovered by matching the legal set")
}
