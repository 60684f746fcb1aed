package coredto

// AnalysisDTO is the wire form of an engine analysis.
type AnalysisDTO struct {
	Line       []string `json:"line"`
	Evaluation int      `json:"evaluation"`
	Commentary string   `json:"commentary,omitempty"`
}

// ThoughtDTO is the wire form of an engine thought.
type ThoughtDTO struct {
	Description    string   `json:"description"`
	Threats        []string `json:"threats,omitempty"`
	StrategicNotes []string `json:"strategic_notes,omitempty"`
}

// GhostStateDTO mirrors the preview manager for display consumers.
type GhostStateDTO struct {
	Status      string       `json:"status"`
	Mode        string       `json:"mode"`
	CurrentStep int          `json:"current_step"`
	Line        []string     `json:"line,omitempty"`
	FEN         string       `json:"fen,omitempty"`
	Analysis    *AnalysisDTO `json:"analysis,omitempty"`
	Thought     *ThoughtDTO  `json:"thought,omitempty"`
}

// SessionState is the full serialized view of one game session. Stored as
// JSON in Redis and served on the state endpoint.
type SessionState struct {
	SessionID  string         `json:"session_id"`
	Mode       string         `json:"mode"`
	PlayerSide string         `json:"player_side,omitempty"`
	Depth      int            `json:"depth"`
	FEN        string         `json:"fen"`
	Turn       string         `json:"turn"`
	Status     string         `json:"status"`
	MovesUCI   []string       `json:"moves_uci"`
	MoveCount  int            `json:"move_count"`
	PlayerTurn bool           `json:"player_turn"`
	Ghost      *GhostStateDTO `json:"ghost,omitempty"`
}
