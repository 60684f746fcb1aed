package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kapu/ghostchess/internal/board"
)

func newReadyEngine(t *testing.T) *Minimax {
	t.Helper()
	e := NewMinimax(nil)
	require.NoError(t, e.Initialize())
	t.Cleanup(func() { _ = e.Shutdown() })
	return e
}

func TestBestLineRequiresInitialize(t *testing.T) {
	e := NewMinimax(nil)
	_, err := e.BestLine(context.Background(), board.StartingFEN, 2, 2)
	assert.ErrorIs(t, err, ErrNotInitialized)

	_, err = e.Thinking(context.Background(), board.StartingFEN, 2)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestLifecycleIsIdempotent(t *testing.T) {
	e := NewMinimax(nil)
	require.NoError(t, e.Initialize())
	require.NoError(t, e.Initialize())
	assert.True(t, e.Ready())
	require.NoError(t, e.Shutdown())
	require.NoError(t, e.Shutdown())
	assert.False(t, e.Ready())
}

func TestBestLineFindsBackRankMate(t *testing.T) {
	e := newReadyEngine(t)
	analysis, err := e.BestLine(context.Background(), "6k1/5ppp/8/8/8/8/8/4R2K w - - 0 1", 2, 2)
	require.NoError(t, err)
	require.NotEmpty(t, analysis.Line)
	assert.Equal(t, "e1e8", analysis.Line[0].String())
	assert.Greater(t, analysis.Evaluation, mateValue, "mate score")
}

func TestBestLineOnCheckmateReturnsEmptyLine(t *testing.T) {
	e := newReadyEngine(t)
	analysis, err := e.BestLine(context.Background(), "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 0 1", 3, 3)
	require.NoError(t, err)
	assert.Empty(t, analysis.Line)
	assert.Contains(t, analysis.Commentary, "checkmate")
}

func TestBestLineTruncatesToLineLength(t *testing.T) {
	e := newReadyEngine(t)
	analysis, err := e.BestLine(context.Background(), board.StartingFEN, 3, 1)
	require.NoError(t, err)
	assert.Len(t, analysis.Line, 1)
}

func TestBestLineRejectsBadInput(t *testing.T) {
	e := newReadyEngine(t)
	_, err := e.BestLine(context.Background(), "not a fen", 2, 2)
	assert.Error(t, err)

	_, err = e.BestLine(context.Background(), board.StartingFEN, 0, 2)
	assert.Error(t, err)
}

func TestBestLineHonorsCancellation(t *testing.T) {
	e := newReadyEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.BestLine(ctx, board.StartingFEN, 3, 3)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEvaluateReflectsMaterial(t *testing.T) {
	e := NewMinimax(nil)

	b, err := board.FromFEN(board.StartingFEN)
	require.NoError(t, err)
	assert.Zero(t, e.Evaluate(b), "starting position is symmetric")

	// Black is missing the queen.
	noQueen, err := board.FromFEN("rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	require.NoError(t, err)
	assert.Greater(t, e.Evaluate(noQueen), 500)
}

func TestThinkingReportsCheckAndDevelopment(t *testing.T) {
	e := newReadyEngine(t)

	thought, err := e.Thinking(context.Background(), "4k3/8/8/8/8/8/4q3/4K3 w - - 0 1", 2)
	require.NoError(t, err)
	assert.Contains(t, thought.Threats, "white king is in check")

	thought, err = e.Thinking(context.Background(), board.StartingFEN, 2)
	require.NoError(t, err)
	assert.NotEmpty(t, thought.StrategicNotes, "undeveloped minors noted in the opening")
	assert.Contains(t, thought.Description, "white to move")
}

func TestGetPresetResolvesAliases(t *testing.T) {
	p, err := GetPreset("beginner")
	require.NoError(t, err)
	assert.Equal(t, "level1", p.Name)
	require.NoError(t, ValidatePreset(p))

	_, err = GetPreset("level99")
	assert.Error(t, err)
}
