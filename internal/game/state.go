package game

import (
	"errors"
	"fmt"

	"github.com/kapu/ghostchess/internal/board"
)

var (
	// ErrGameOver is returned when a move is attempted on a terminal state.
	ErrGameOver = errors.New("game is already over")
	// ErrIllegalMove is returned when a move is not in the legal move set.
	ErrIllegalMove = errors.New("illegal move")
	// ErrNoHistory is returned when undo is attempted with no prior moves.
	ErrNoHistory = errors.New("no moves to undo")
)

// Status is the terminal classification of a game.
type Status uint8

const (
	InProgress Status = iota
	WhiteWins
	BlackWins
	Draw
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case WhiteWins:
		return "white_wins"
	case BlackWins:
		return "black_wins"
	case Draw:
		return "draw"
	default:
		return "in_progress"
	}
}

// State is an ordered history of positions and moves layered on the position
// model. Boards are immutable values, so the history holds one snapshot per
// prior position and undo is a pop rather than a replay.
type State struct {
	current      board.Board
	moveHistory  []board.Move
	boardHistory []board.Board
	status       Status
}

// New returns a state at the standard starting position.
func New() *State {
	return &State{current: board.Starting()}
}

// FromFEN returns a state rooted at the given position.
func FromFEN(fen string) (*State, error) {
	b, err := board.FromFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("game from FEN: %w", err)
	}
	s := &State{current: b}
	s.status = classify(b)
	return s, nil
}

// Board returns the current position.
func (s *State) Board() board.Board { return s.current }

// Status returns the terminal classification.
func (s *State) Status() Status { return s.status }

// Turn returns the color to move.
func (s *State) Turn() board.Color { return s.current.Turn() }

// FEN returns the current position in FEN.
func (s *State) FEN() string { return s.current.FEN() }

// MoveHistory returns a copy of the applied moves in order.
func (s *State) MoveHistory() []board.Move {
	return append([]board.Move(nil), s.moveHistory...)
}

// MoveCount returns the number of applied moves.
func (s *State) MoveCount() int { return len(s.moveHistory) }

// LegalMoves returns the legal moves for the current position.
func (s *State) LegalMoves() []board.Move {
	return board.LegalMoves(s.current)
}

// MakeMove validates the move against the legal set and applies it. The move
// may omit the derived en passant and castle flags; it is matched on the
// from/to/promotion triple. On failure the state is left untouched.
func (s *State) MakeMove(m board.Move) error {
	if s.status != InProgress {
		return ErrGameOver
	}
	matched, ok := s.matchLegal(m)
	if !ok {
		return fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}
	next, err := s.current.MakeMove(matched)
	if err != nil {
		return err
	}
	s.boardHistory = append(s.boardHistory, s.current)
	s.moveHistory = append(s.moveHistory, matched)
	s.current = next
	s.status = classify(next)
	return nil
}

// Undo pops the most recent move and board snapshot. Undoing out of a
// terminal state un-terminates the game.
func (s *State) Undo() (board.Move, error) {
	if len(s.boardHistory) == 0 {
		return board.Move{}, ErrNoHistory
	}
	last := len(s.boardHistory) - 1
	undone := s.moveHistory[last]
	s.current = s.boardHistory[last]
	s.boardHistory = s.boardHistory[:last]
	s.moveHistory = s.moveHistory[:last]
	s.status = InProgress
	return undone, nil
}

func (s *State) matchLegal(m board.Move) (board.Move, bool) {
	for _, legal := range board.LegalMoves(s.current) {
		if legal.SameAction(m) {
			return legal, true
		}
	}
	return board.Move{}, false
}

// classify derives the status of a position: checkmate loses for whichever
// color is now to move, otherwise the draw rules apply.
func classify(b board.Board) Status {
	if board.IsCheckmate(b) {
		if b.Turn() == board.White {
			return BlackWins
		}
		return WhiteWins
	}
	if board.IsDraw(b) {
		return Draw
	}
	return InProgress
}
