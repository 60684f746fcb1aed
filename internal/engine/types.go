package engine

import "github.com/kapu/ghostchess/internal/board"

// Analysis is the result of a best-line search: the predicted continuation,
// a scalar evaluation where positive favors White (centipawn-like units),
// and free-text commentary for collaborators.
type Analysis struct {
	Line       []board.Move
	Evaluation int
	Commentary string
}

// Thought is diagnostic output describing what the engine sees in a
// position. It is never used for legality.
type Thought struct {
	Description    string
	Threats        []string
	StrategicNotes []string
}
