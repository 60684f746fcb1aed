package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kapu/ghostchess/pkg/coredto"
)

const defaultSessionTTL = time.Hour

// RedisStore keeps session snapshots as JSON values with a TTL plus a set
// index of live session IDs.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore wraps an existing client. A non-positive TTL falls back to
// one hour.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) keyState(id string) string { return "gc:session:" + strings.TrimSpace(id) }
func (s *RedisStore) keyIndex() string          { return "gc:sessions" }

func (s *RedisStore) Save(ctx context.Context, state coredto.SessionState) error {
	if strings.TrimSpace(state.SessionID) == "" {
		return fmt.Errorf("save session: empty session id")
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}
	if err := s.rdb.Set(ctx, s.keyState(state.SessionID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session state: %w", err)
	}
	if err := s.rdb.SAdd(ctx, s.keyIndex(), state.SessionID).Err(); err != nil {
		return fmt.Errorf("index session: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (*coredto.SessionState, error) {
	raw, err := s.rdb.Get(ctx, s.keyState(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session state: %w", err)
	}
	var state coredto.SessionState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("unmarshal session state: %w", err)
	}
	return &state, nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, s.keyState(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete session state: %w", err)
	}
	return s.rdb.SRem(ctx, s.keyIndex(), sessionID).Err()
}

func (s *RedisStore) ListIDs(ctx context.Context) ([]string, error) {
	ids, err := s.rdb.SMembers(ctx, s.keyIndex()).Result()
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	// Drop index entries whose state key already expired.
	live := ids[:0]
	for _, id := range ids {
		n, err := s.rdb.Exists(ctx, s.keyState(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("check session %s: %w", id, err)
		}
		if n > 0 {
			live = append(live, id)
		} else {
			_ = s.rdb.SRem(ctx, s.keyIndex(), id).Err()
		}
	}
	return live, nil
}
