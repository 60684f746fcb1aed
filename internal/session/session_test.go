package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kapu/ghostchess/internal/board"
	"github.com/kapu/ghostchess/internal/engine"
	"github.com/kapu/ghostchess/internal/game"
	"github.com/kapu/ghostchess/internal/ghost"
	"github.com/kapu/ghostchess/pkg/coredto"
)

type recorder struct {
	events []coredto.Event
}

func (r *recorder) sink(ev coredto.Event) {
	r.events = append(r.events, ev)
}

func (r *recorder) types() []coredto.EventType {
	out := make([]coredto.EventType, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Type
	}
	return out
}

func newTestSession(t *testing.T, cfg Config) (*Session, *recorder) {
	t.Helper()
	eng := engine.NewMinimax(nil)
	require.NoError(t, eng.Initialize())
	t.Cleanup(func() { _ = eng.Shutdown() })
	rec := &recorder{}
	s, err := New(cfg, eng, rec.sink, nil)
	require.NoError(t, err)
	return s, rec
}

func testConfig() Config {
	return Config{
		Mode:        HumanVsEngine,
		PlayerColor: board.White,
		Depth:       2,
		Ghost:       ghost.Config{SearchDepth: 2, ThinkDepth: 1, LineLength: 2},
	}
}

func mv(t *testing.T, uci string) board.Move {
	t.Helper()
	m, err := board.ParseMove(uci)
	require.NoError(t, err)
	return m
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(testConfig(), nil, nil, nil)
	assert.Error(t, err)

	eng := engine.NewMinimax(nil)
	cfg := testConfig()
	cfg.Mode = "tournament"
	_, err = New(cfg, eng, nil, nil)
	assert.Error(t, err)

	cfg = testConfig()
	cfg.Depth = 0
	_, err = New(cfg, eng, nil, nil)
	assert.Error(t, err)
}

func TestTurnTakingRules(t *testing.T) {
	hvh, _ := newTestSession(t, Config{Mode: HumanVsHuman, Depth: 2, Ghost: ghost.DefaultConfig()})
	assert.True(t, hvh.IsPlayerTurn())
	require.NoError(t, hvh.MakePlayerMove(mv(t, "e2e4")))
	assert.True(t, hvh.IsPlayerTurn(), "both sides are the player")

	_, err := hvh.MakeEngineMove(context.Background())
	assert.ErrorIs(t, err, ErrNoEngineSide)

	hve, _ := newTestSession(t, testConfig())
	assert.True(t, hve.IsPlayerTurn())
	_, err = hve.MakeEngineMove(context.Background())
	assert.ErrorIs(t, err, ErrEngineTurnPending)

	require.NoError(t, hve.MakePlayerMove(mv(t, "e2e4")))
	assert.False(t, hve.IsPlayerTurn())
	assert.ErrorIs(t, hve.MakePlayerMove(mv(t, "d2d4")), ErrNotPlayerTurn)

	reply, err := hve.MakeEngineMove(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, board.Move{}, reply)
	assert.True(t, hve.IsPlayerTurn(), "turn returns to the player")
}

func TestMoveEventsCarryDerivedData(t *testing.T) {
	s, rec := newTestSession(t, Config{Mode: HumanVsHuman, Depth: 2, Ghost: ghost.DefaultConfig()})
	require.NoError(t, s.MakePlayerMove(mv(t, "e2e4")))
	require.NoError(t, s.MakePlayerMove(mv(t, "d7d5")))
	require.NoError(t, s.MakePlayerMove(mv(t, "e4d5")))

	types := rec.types()
	assert.Contains(t, types, coredto.EventMoveApplied)
	assert.Contains(t, types, coredto.EventCapture)

	var capture coredto.Event
	for _, ev := range rec.events {
		if ev.Type == coredto.EventCapture {
			capture = ev
		}
	}
	assert.Equal(t, "pawn", capture.CapturedPiece)
	assert.Equal(t, "white", capture.Mover)
	assert.Equal(t, s.ID(), capture.SessionID)
	assert.NotEmpty(t, capture.FEN)
}

func TestCheckmateEmitsTerminalEvent(t *testing.T) {
	s, rec := newTestSession(t, Config{Mode: HumanVsHuman, Depth: 2, Ghost: ghost.DefaultConfig()})
	for _, uci := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		require.NoError(t, s.MakePlayerMove(mv(t, uci)))
	}
	assert.Equal(t, game.BlackWins, s.Status())
	assert.Contains(t, rec.types(), coredto.EventCheckmate)
	assert.NotContains(t, rec.types(), coredto.EventCheck, "mate is not double-reported as check")
}

func TestAcceptGhostIsInformationalOnly(t *testing.T) {
	s, rec := newTestSession(t, testConfig())
	s.SetGhostMode(ghost.StepThrough)

	fenBefore := s.FEN()
	require.NoError(t, s.RequestGhostPreview(context.Background(), false))
	assert.Contains(t, rec.types(), coredto.EventGhostStarted)

	require.NoError(t, s.GhostStepForward())
	accepted := s.AcceptGhost()
	require.Len(t, accepted, 1)
	assert.Contains(t, rec.types(), coredto.EventGhostAccepted)

	assert.Equal(t, fenBefore, s.FEN(), "accept never touches the real game")
	assert.Equal(t, 0, s.State().MoveCount)
	assert.True(t, s.IsPlayerTurn())
}

func TestUndoForceDismissesPreview(t *testing.T) {
	s, rec := newTestSession(t, testConfig())
	require.NoError(t, s.MakePlayerMove(mv(t, "e2e4")))
	require.NoError(t, s.RequestGhostPreview(context.Background(), false))

	undone, err := s.Undo()
	require.NoError(t, err)
	assert.Equal(t, "e2e4", undone.String())
	assert.Equal(t, board.StartingFEN, s.FEN())
	assert.Contains(t, rec.types(), coredto.EventGhostDismissed)
	assert.Contains(t, rec.types(), coredto.EventMoveUndone)
	assert.Equal(t, "idle", s.Ghost().Status)

	_, err = s.Undo()
	assert.ErrorIs(t, err, game.ErrNoHistory)
}

func TestStateSnapshot(t *testing.T) {
	s, _ := newTestSession(t, testConfig())
	require.NoError(t, s.MakePlayerMove(mv(t, "e2e4")))

	st := s.State()
	assert.Equal(t, s.ID(), st.SessionID)
	assert.Equal(t, string(HumanVsEngine), st.Mode)
	assert.Equal(t, "white", st.PlayerSide)
	assert.Equal(t, []string{"e2e4"}, st.MovesUCI)
	assert.Equal(t, "black", st.Turn)
	assert.Equal(t, "in_progress", st.Status)
	assert.False(t, st.PlayerTurn)
	assert.Nil(t, st.Ghost, "no preview active")

	require.NoError(t, s.RequestGhostPreview(context.Background(), true))
	st = s.State()
	require.NotNil(t, st.Ghost)
	assert.NotEmpty(t, st.Ghost.Line)
	require.NotNil(t, st.Ghost.Thought)
}
