package coredto

import "time"

// EventType tags a collaborator-facing game event.
type EventType string

const (
	EventMoveApplied    EventType = "move_applied"
	EventCapture        EventType = "capture"
	EventCheck          EventType = "check"
	EventCheckmate      EventType = "checkmate"
	EventStalemate      EventType = "stalemate"
	EventCastle         EventType = "castle"
	EventPromotion      EventType = "promotion"
	EventGhostStarted   EventType = "ghost_started"
	EventGhostAccepted  EventType = "ghost_accepted"
	EventGhostDismissed EventType = "ghost_dismissed"
	EventMoveUndone     EventType = "move_undone"
	EventEngineMove     EventType = "engine_move"
)

// Event carries enough structured data for a commentary or sound
// collaborator to render without re-deriving anything from board diffs.
// Serialized as JSON on the feed and in Redis.
type Event struct {
	Type          EventType `json:"type"`
	SessionID     string    `json:"session_id"`
	Move          string    `json:"move,omitempty"`
	Mover         string    `json:"mover,omitempty"`
	CapturedPiece string    `json:"captured_piece,omitempty"`
	PromotedTo    string    `json:"promoted_to,omitempty"`
	FEN           string    `json:"fen"`
	Status        string    `json:"status"`
	At            time.Time `json:"at"`
}
