package store

import (
	"context"
	"errors"

	"github.com/kapu/ghostchess/pkg/coredto"
)

// ErrNotFound is returned when no state exists for a session ID.
var ErrNotFound = errors.New("session state not found")

// SessionStore persists serialized session views so a display or resumed
// process can pick up an in-flight game. The real game authority stays in
// memory; the store only holds snapshots.
type SessionStore interface {
	Save(ctx context.Context, state coredto.SessionState) error
	Load(ctx context.Context, sessionID string) (*coredto.SessionState, error)
	Delete(ctx context.Context, sessionID string) error
	ListIDs(ctx context.Context) ([]string, error)
}
