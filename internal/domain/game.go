package domain

import "time"

// GameRecord is a finished game as persisted by the archive.
type GameRecord struct {
	ID           int64
	SessionID    string
	Mode         string
	PlayerSide   string
	Depth        int
	Result       string
	ResultMethod string
	MovesUCI     []string
	FinalFEN     string
	StartedAt    time.Time
	EndedAt      time.Time
	Duration     time.Duration
}
