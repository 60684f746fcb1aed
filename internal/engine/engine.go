package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/kapu/ghostchess/internal/board"
)

// ErrNotInitialized is returned for search calls on an engine whose
// lifecycle has not been started.
var ErrNotInitialized = errors.New("engine not initialized")

// Engine is the narrow search boundary: FEN plus integer depth/line-length
// parameters in, analysis value objects out. Alternative search
// implementations can be swapped behind it without touching game state or
// the preview manager.
type Engine interface {
	Evaluate(b board.Board) int
	BestLine(ctx context.Context, fen string, depth, lineLength int) (Analysis, error)
	Thinking(ctx context.Context, fen string, depth int) (Thought, error)
	Initialize() error
	Shutdown() error
	Ready() bool
}

// Minimax is a fixed-depth alpha-beta engine over the position model. Depth
// is small and bounded per call; there is no book, no transposition table,
// and no iterative deepening.
type Minimax struct {
	mu     sync.Mutex
	ready  bool
	logger *zap.Logger
}

// NewMinimax returns an engine that logs through the given logger,
// zap.NewNop when nil.
func NewMinimax(logger *zap.Logger) *Minimax {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Minimax{logger: logger}
}

// Initialize marks the engine ready. Idempotent.
func (e *Minimax) Initialize() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.ready {
		e.ready = true
		e.logger.Info("engine initialized")
	}
	return nil
}

// Shutdown marks the engine stopped. Idempotent.
func (e *Minimax) Shutdown() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ready {
		e.ready = false
		e.logger.Info("engine shut down")
	}
	return nil
}

// Ready reports whether the engine accepts search calls.
func (e *Minimax) Ready() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ready
}

// BestLine searches the position to the given depth and returns a predicted
// continuation of at most depth moves, truncated to lineLength. The line is
// empty when the position is checkmate or has no legal moves.
func (e *Minimax) BestLine(ctx context.Context, fen string, depth, lineLength int) (Analysis, error) {
	if !e.Ready() {
		return Analysis{}, fmt.Errorf("best line: %w", ErrNotInitialized)
	}
	if depth < 1 {
		return Analysis{}, fmt.Errorf("best line: depth must be positive, got %d", depth)
	}
	b, err := board.FromFEN(fen)
	if err != nil {
		return Analysis{}, fmt.Errorf("best line: %w", err)
	}

	score, line, err := e.search(ctx, b, depth, -infinity, infinity)
	if err != nil {
		return Analysis{}, err
	}
	if lineLength >= 0 && len(line) > lineLength {
		line = line[:lineLength]
	}
	analysis := Analysis{
		Line:       line,
		Evaluation: score,
		Commentary: commentary(b, score, line),
	}
	e.logger.Debug("best line computed",
		zap.String("fen", fen),
		zap.Int("depth", depth),
		zap.Int("evaluation", score),
		zap.Int("line_length", len(line)),
	)
	return analysis, nil
}

// Thinking describes threats and strategic ideas in the position.
func (e *Minimax) Thinking(ctx context.Context, fen string, depth int) (Thought, error) {
	if !e.Ready() {
		return Thought{}, fmt.Errorf("thinking: %w", ErrNotInitialized)
	}
	b, err := board.FromFEN(fen)
	if err != nil {
		return Thought{}, fmt.Errorf("thinking: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Thought{}, err
	}
	return describe(b, e.Evaluate(b)), nil
}
