package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kapu/ghostchess/internal/board"
	"github.com/kapu/ghostchess/internal/engine"
	"github.com/kapu/ghostchess/internal/game"
	"github.com/kapu/ghostchess/internal/ghost"
	"github.com/kapu/ghostchess/pkg/coredto"
)

// Mode selects the turn-taking rules of a session.
type Mode string

const (
	HumanVsHuman  Mode = "human_vs_human"
	HumanVsEngine Mode = "human_vs_engine"
)

var (
	// ErrNotPlayerTurn is returned when a player move arrives out of turn.
	ErrNotPlayerTurn = errors.New("not the player's turn")
	// ErrNoEngineSide is returned for engine moves in a two-human session.
	ErrNoEngineSide = errors.New("session has no engine side")
	// ErrEngineTurnPending is returned for an engine move when the player
	// is still to move.
	ErrEngineTurnPending = errors.New("player is still to move")
)

// Sink receives collaborator-facing events. A nil sink drops them.
type Sink func(coredto.Event)

// Config fixes a session's rules at construction.
type Config struct {
	Mode        Mode
	PlayerColor board.Color
	Depth       int
	Ghost       ghost.Config
}

// DefaultConfig is a human-vs-engine session playing White at depth 3.
func DefaultConfig() Config {
	return Config{
		Mode:        HumanVsEngine,
		PlayerColor: board.White,
		Depth:       3,
		Ghost:       ghost.DefaultConfig(),
	}
}

// Session binds one engine, one game state, and one ghost preview manager
// into a two-party turn-taking game. All operations serialize on one mutex,
// so at most one search is in flight per session and preview state stays
// single-writer.
type Session struct {
	id     string
	cfg    Config
	logger *zap.Logger
	sink   Sink

	mu    sync.Mutex
	game  *game.State
	eng   engine.Engine
	ghost *ghost.Manager
}

// New builds a session at the starting position.
func New(cfg Config, eng engine.Engine, sink Sink, logger *zap.Logger) (*Session, error) {
	return fromState(cfg, eng, sink, logger, game.New())
}

// FromFEN builds a session rooted at the given position.
func FromFEN(cfg Config, eng engine.Engine, sink Sink, logger *zap.Logger, fen string) (*Session, error) {
	st, err := game.FromFEN(fen)
	if err != nil {
		return nil, err
	}
	return fromState(cfg, eng, sink, logger, st)
}

func fromState(cfg Config, eng engine.Engine, sink Sink, logger *zap.Logger, st *game.State) (*Session, error) {
	if eng == nil {
		return nil, errors.New("session: engine is required")
	}
	if cfg.Mode != HumanVsHuman && cfg.Mode != HumanVsEngine {
		return nil, fmt.Errorf("session: unknown mode %q", cfg.Mode)
	}
	if cfg.Depth < 1 {
		return nil, fmt.Errorf("session: depth must be >= 1, got %d", cfg.Depth)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	gm, err := ghost.NewManager(eng, cfg.Ghost, logger)
	if err != nil {
		return nil, err
	}
	return &Session{
		id:     uuid.NewString(),
		cfg:    cfg,
		logger: logger,
		sink:   sink,
		game:   st,
		eng:    eng,
		ghost:  gm,
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Mode returns the turn-taking mode.
func (s *Session) Mode() Mode { return s.cfg.Mode }

// FEN returns the current real position.
func (s *Session) FEN() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.FEN()
}

// Status returns the game classification.
func (s *Session) Status() game.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Status()
}

// IsPlayerTurn is always true between two humans; against the engine it is
// true only when the active color is the configured player color.
func (s *Session) IsPlayerTurn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isPlayerTurnLocked()
}

func (s *Session) isPlayerTurnLocked() bool {
	if s.cfg.Mode == HumanVsHuman {
		return true
	}
	return s.game.Turn() == s.cfg.PlayerColor
}

// MakePlayerMove validates turn order and applies the move to the real game.
func (s *Session) MakePlayerMove(m board.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isPlayerTurnLocked() {
		return ErrNotPlayerTurn
	}
	return s.applyMove(m, coredto.EventMoveApplied)
}

// MakeEngineMove searches the current position at the session depth and
// applies the best move. It fails between two humans and while the player
// is still to move.
func (s *Session) MakeEngineMove(ctx context.Context) (board.Move, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg.Mode == HumanVsHuman {
		return board.Move{}, ErrNoEngineSide
	}
	if s.isPlayerTurnLocked() {
		return board.Move{}, ErrEngineTurnPending
	}
	analysis, err := s.eng.BestLine(ctx, s.game.FEN(), s.cfg.Depth, 1)
	if err != nil {
		return board.Move{}, fmt.Errorf("engine move: %w", err)
	}
	if len(analysis.Line) == 0 {
		return board.Move{}, game.ErrGameOver
	}
	m := analysis.Line[0]
	if err := s.applyMove(m, coredto.EventEngineMove); err != nil {
		return board.Move{}, err
	}
	return m, nil
}

// applyMove runs the move through game state and publishes the derived
// event stream. Caller holds the mutex.
func (s *Session) applyMove(m board.Move, kind coredto.EventType) error {
	pre := s.game.Board()
	mover := s.game.Turn()
	if err := s.game.MakeMove(m); err != nil {
		return err
	}
	history := s.game.MoveHistory()
	applied := history[len(history)-1]
	s.emitMoveEvents(pre, applied, mover, kind)
	s.logger.Info("move applied",
		zap.String("session_id", s.id),
		zap.String("move", applied.String()),
		zap.String("mover", mover.String()),
		zap.String("status", s.game.Status().String()),
	)
	return nil
}

// RequestGhostPreview arms a preview from the current real board. The
// preview never changes whose turn it is.
func (s *Session) RequestGhostPreview(ctx context.Context, showThinking bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ghost.RequestPreview(ctx, s.game.Board(), showThinking); err != nil {
		return err
	}
	if s.ghost.Status() != ghost.Idle {
		s.emit(coredto.Event{Type: coredto.EventGhostStarted})
	}
	return nil
}

// GhostStepForward advances the preview one predicted move.
func (s *Session) GhostStepForward() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ghost.StepForward()
}

// GhostStepBack rewinds the preview one predicted move.
func (s *Session) GhostStepBack() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ghost.StepBack()
}

// GhostReset rewinds the preview to its origin.
func (s *Session) GhostReset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ghost.Reset()
}

// GhostPause suspends auto-play.
func (s *Session) GhostPause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ghost.Pause()
}

// GhostResume continues auto-play when a step remains.
func (s *Session) GhostResume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ghost.Resume()
}

// SetGhostMode switches the preview stepping mode.
func (s *Session) SetGhostMode(mode ghost.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ghost.SetMode(mode)
}

// DismissGhost discards any active preview.
func (s *Session) DismissGhost() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dismissGhostLocked()
}

func (s *Session) dismissGhostLocked() {
	if s.ghost.Status() == ghost.Idle {
		return
	}
	s.ghost.Dismiss()
	s.emit(coredto.Event{Type: coredto.EventGhostDismissed})
}

// AcceptGhost returns the stepped-through slice of the predicted line and
// discards the preview. Accepting is informational only: the real board,
// move history, and turn are left untouched.
func (s *Session) AcceptGhost() []board.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ghost.Status() == ghost.Idle {
		return nil
	}
	accepted := s.ghost.Accept()
	s.emit(coredto.Event{Type: coredto.EventGhostAccepted})
	return accepted
}

// Ghost returns a read snapshot of the preview for display consumers.
func (s *Session) Ghost() coredto.GhostStateDTO {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ghostDTOLocked()
}

// Undo pops the last real move and force-dismisses any active preview,
// since a preview computed from a position that no longer exists is
// meaningless.
func (s *Session) Undo() (board.Move, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	undone, err := s.game.Undo()
	if err != nil {
		return board.Move{}, err
	}
	s.dismissGhostLocked()
	s.emit(coredto.Event{Type: coredto.EventMoveUndone, Move: undone.String()})
	return undone, nil
}

// State returns the full serialized session view.
func (s *Session) State() coredto.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.game.MoveHistory()
	moves := make([]string, len(history))
	for i, m := range history {
		moves[i] = m.String()
	}
	st := coredto.SessionState{
		SessionID:  s.id,
		Mode:       string(s.cfg.Mode),
		Depth:      s.cfg.Depth,
		FEN:        s.game.FEN(),
		Turn:       s.game.Turn().String(),
		Status:     s.game.Status().String(),
		MovesUCI:   moves,
		MoveCount:  s.game.MoveCount(),
		PlayerTurn: s.isPlayerTurnLocked(),
	}
	if s.cfg.Mode == HumanVsEngine {
		st.PlayerSide = s.cfg.PlayerColor.String()
	}
	if s.ghost.Status() != ghost.Idle {
		dto := s.ghostDTOLocked()
		st.Ghost = &dto
	}
	return st
}

func (s *Session) ghostDTOLocked() coredto.GhostStateDTO {
	line := s.ghost.Line()
	moves := make([]string, len(line))
	for i, m := range line {
		moves[i] = m.String()
	}
	dto := coredto.GhostStateDTO{
		Status:      s.ghost.Status().String(),
		Mode:        s.ghost.Mode().String(),
		CurrentStep: s.ghost.CurrentStep(),
		Line:        moves,
	}
	if s.ghost.Status() != ghost.Idle {
		dto.FEN = s.ghost.Board().FEN()
		analysis := s.ghost.Analysis()
		dto.Analysis = &coredto.AnalysisDTO{
			Line:       moves,
			Evaluation: analysis.Evaluation,
			Commentary: analysis.Commentary,
		}
		if t := s.ghost.Thought(); t != nil {
			dto.Thought = &coredto.ThoughtDTO{
				Description:    t.Description,
				Threats:        append([]string(nil), t.Threats...),
				StrategicNotes: append([]string(nil), t.StrategicNotes...),
			}
		}
	}
	return dto
}

// emitMoveEvents publishes the move event plus its derived capture, castle,
// promotion, and check/mate/stalemate events.
func (s *Session) emitMoveEvents(pre board.Board, m board.Move, mover board.Color, kind coredto.EventType) {
	s.emit(coredto.Event{Type: kind, Move: m.String(), Mover: mover.String()})

	if m.IsEnPassant {
		s.emit(coredto.Event{Type: coredto.EventCapture, Move: m.String(), Mover: mover.String(), CapturedPiece: "pawn"})
	} else if target := pre.PieceAt(m.To); !target.IsEmpty() {
		s.emit(coredto.Event{Type: coredto.EventCapture, Move: m.String(), Mover: mover.String(), CapturedPiece: pieceName(target.Type)})
	}
	if m.IsCastle {
		s.emit(coredto.Event{Type: coredto.EventCastle, Move: m.String(), Mover: mover.String()})
	}
	if m.Promotion != board.NoPieceType {
		s.emit(coredto.Event{Type: coredto.EventPromotion, Move: m.String(), Mover: mover.String(), PromotedTo: pieceName(m.Promotion)})
	}

	post := s.game.Board()
	switch {
	case board.IsCheckmate(post):
		s.emit(coredto.Event{Type: coredto.EventCheckmate, Move: m.String(), Mover: mover.String()})
	case board.IsInCheck(post):
		s.emit(coredto.Event{Type: coredto.EventCheck, Move: m.String(), Mover: mover.String()})
	case board.IsStalemate(post):
		s.emit(coredto.Event{Type: coredto.EventStalemate, Move: m.String(), Mover: mover.String()})
	}
}

// emit stamps the shared fields and hands the event to the sink. Caller
// holds the mutex.
func (s *Session) emit(ev coredto.Event) {
	if s.sink == nil {
		return
	}
	ev.SessionID = s.id
	ev.FEN = s.game.FEN()
	ev.Status = s.game.Status().String()
	ev.At = time.Now().UTC()
	s.sink(ev)
}

func pieceName(t board.PieceType) string {
	switch t {
	case board.Pawn:
		return "pawn"
	case board.Knight:
		return "knight"
	case board.Bishop:
		return "bishop"
	case board.Rook:
		return "rook"
	case board.Queen:
		return "queen"
	case board.King:
		return "king"
	default:
		return "piece"
	}
}
