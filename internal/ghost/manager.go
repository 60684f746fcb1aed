package ghost

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kapu/ghostchess/internal/board"
	"github.com/kapu/ghostchess/internal/engine"
)

var (
	// ErrNotActive is returned for step operations without an active preview.
	ErrNotActive = errors.New("no active preview")
	// ErrNoForwardStep is returned when the predicted line is exhausted.
	ErrNoForwardStep = errors.New("no forward step remains")
	// ErrNoBackStep is returned when stepping back before the first move.
	ErrNoBackStep = errors.New("no step to rewind")
)

// Status is the preview state machine phase.
type Status uint8

const (
	Idle Status = iota
	Loading
	Playing
	Paused
	Complete
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Complete:
		return "complete"
	default:
		return "idle"
	}
}

// Mode selects how a fresh preview begins: advancing on its own or waiting
// for explicit steps.
type Mode uint8

const (
	AutoPlay Mode = iota
	StepThrough
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	if m == StepThrough {
		return "step_through"
	}
	return "auto_play"
}

// Config bounds a preview request. SearchDepth drives the best-line search
// and must cover LineLength for the line to fill; ThinkDepth is the shallow
// depth used for the diagnostic thought, independent of either.
type Config struct {
	SearchDepth int
	ThinkDepth  int
	LineLength  int
	StepDelay   time.Duration
}

// DefaultConfig keeps preview latency bounded.
func DefaultConfig() Config {
	return Config{SearchDepth: 4, ThinkDepth: 2, LineLength: 4, StepDelay: 800 * time.Millisecond}
}

// Manager holds one disposable predicted continuation derived from, but
// never mutating, the real game. Boards are values, so stepping keeps
// cheap before/after snapshots; stepping back replays from the origin.
type Manager struct {
	eng    engine.Engine
	cfg    Config
	logger *zap.Logger

	status      Status
	mode        Mode
	origin      board.Board
	line        []board.Move
	step        int
	boardBefore board.Board
	boardAfter  board.Board
	analysis    engine.Analysis
	thought     *engine.Thought
}

// NewManager returns an idle manager. A nil logger is replaced with a nop.
func NewManager(eng engine.Engine, cfg Config, logger *zap.Logger) (*Manager, error) {
	if eng == nil {
		return nil, errors.New("ghost manager: engine is required")
	}
	if cfg.SearchDepth < 1 {
		return nil, fmt.Errorf("ghost manager: search depth must be >= 1, got %d", cfg.SearchDepth)
	}
	if cfg.ThinkDepth < 1 {
		return nil, fmt.Errorf("ghost manager: think depth must be >= 1, got %d", cfg.ThinkDepth)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{eng: eng, cfg: cfg, logger: logger, step: -1}, nil
}

// Status returns the current phase.
func (m *Manager) Status() Status { return m.status }

// Mode returns the stepping mode.
func (m *Manager) Mode() Mode { return m.mode }

// CurrentStep returns the index of the last applied predicted move, -1 when
// none has been applied.
func (m *Manager) CurrentStep() int { return m.step }

// Line returns a copy of the predicted continuation.
func (m *Manager) Line() []board.Move {
	return append([]board.Move(nil), m.line...)
}

// Board returns the preview board after the current step.
func (m *Manager) Board() board.Board { return m.boardAfter }

// Analysis returns the search snapshot behind the preview.
func (m *Manager) Analysis() engine.Analysis { return m.analysis }

// Thought returns the diagnostic snapshot, nil unless requested.
func (m *Manager) Thought() *engine.Thought { return m.thought }

// StepDelay returns the configured display pacing for auto-play consumers.
func (m *Manager) StepDelay() time.Duration { return m.cfg.StepDelay }

func (m *Manager) active() bool {
	switch m.status {
	case Playing, Paused, Complete:
		return true
	default:
		return false
	}
}

// RequestPreview searches the given position and arms the preview at step
// -1. A non-positive configured line length leaves the manager idle. An
// empty predicted line (checkmate, stalemate) arms directly as Complete.
func (m *Manager) RequestPreview(ctx context.Context, b board.Board, showThinking bool) error {
	if m.cfg.LineLength <= 0 {
		m.logger.Debug("preview skipped, non-positive line length")
		return nil
	}
	m.clear()
	m.status = Loading

	fen := b.FEN()
	analysis, err := m.eng.BestLine(ctx, fen, m.cfg.SearchDepth, m.cfg.LineLength)
	if err != nil {
		m.clear()
		return fmt.Errorf("ghost preview: %w", err)
	}
	var thought *engine.Thought
	if showThinking {
		t, err := m.eng.Thinking(ctx, fen, m.cfg.ThinkDepth)
		if err != nil {
			m.clear()
			return fmt.Errorf("ghost preview: %w", err)
		}
		thought = &t
	}

	m.origin = b
	m.boardBefore = b
	m.boardAfter = b
	m.line = analysis.Line
	m.analysis = analysis
	m.thought = thought
	m.step = -1
	switch {
	case len(m.line) == 0:
		m.status = Complete
	case m.mode == AutoPlay:
		m.status = Playing
	default:
		m.status = Paused
	}
	m.logger.Debug("preview armed",
		zap.Int("line_length", len(m.line)),
		zap.String("status", m.status.String()),
	)
	return nil
}

// StepForward applies the next predicted move to the board at the current
// step. Reaching the last move transitions to Complete.
func (m *Manager) StepForward() error {
	if !m.active() {
		return ErrNotActive
	}
	if m.step >= len(m.line)-1 {
		return ErrNoForwardStep
	}
	next, err := m.boardAfter.MakeMove(m.line[m.step+1])
	if err != nil {
		return fmt.Errorf("ghost step forward: %w", err)
	}
	m.boardBefore = m.boardAfter
	m.boardAfter = next
	m.step++
	if m.step == len(m.line)-1 {
		m.status = Complete
	}
	return nil
}

// StepBack rewinds one predicted move by replaying the origin through the
// target index. Rewinding out of Complete resumes as Paused.
func (m *Manager) StepBack() error {
	if !m.active() {
		return ErrNotActive
	}
	if m.step <= -1 {
		return ErrNoBackStep
	}
	target := m.step - 1
	after, err := m.replay(target)
	if err != nil {
		return err
	}
	before, err := m.replay(target - 1)
	if err != nil {
		return err
	}
	m.boardAfter = after
	m.boardBefore = before
	m.step = target
	if m.status == Complete {
		m.status = Paused
	}
	return nil
}

// replay applies predicted moves [0, through] to the origin. through = -1
// returns the origin itself.
func (m *Manager) replay(through int) (board.Board, error) {
	b := m.origin
	for i := 0; i <= through; i++ {
		next, err := b.MakeMove(m.line[i])
		if err != nil {
			return board.Board{}, fmt.Errorf("ghost replay at move %d: %w", i, err)
		}
		b = next
	}
	return b, nil
}

// Reset returns to step -1 on the original board and forces Paused.
func (m *Manager) Reset() error {
	if !m.active() {
		return ErrNotActive
	}
	m.step = -1
	m.boardBefore = m.origin
	m.boardAfter = m.origin
	m.status = Paused
	return nil
}

// Pause is only effective from Playing.
func (m *Manager) Pause() {
	if m.status == Playing {
		m.status = Paused
	}
}

// Resume is only effective from Paused and only while a forward step
// remains.
func (m *Manager) Resume() {
	if m.status == Paused && m.step < len(m.line)-1 {
		m.status = Playing
	}
}

// SetMode switches the stepping mode. Switching to StepThrough while
// Playing forces Paused; switching to AutoPlay never auto-resumes.
func (m *Manager) SetMode(mode Mode) {
	m.mode = mode
	if mode == StepThrough && m.status == Playing {
		m.status = Paused
	}
}

// Dismiss unconditionally discards all preview data.
func (m *Manager) Dismiss() {
	m.clear()
}

// Accept returns a copy of the predicted moves applied so far, from index 0
// through the current step, then discards the preview. Applying the
// returned moves anywhere is entirely the caller's decision.
func (m *Manager) Accept() []board.Move {
	var accepted []board.Move
	if m.active() && m.step >= 0 {
		accepted = append([]board.Move(nil), m.line[:m.step+1]...)
	}
	m.clear()
	return accepted
}

func (m *Manager) clear() {
	m.status = Idle
	m.origin = board.Board{}
	m.boardBefore = board.Board{}
	m.boardAfter = board.Board{}
	m.line = nil
	m.analysis = engine.Analysis{}
	m.thought = nil
	m.step = -1
}
