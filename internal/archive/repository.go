package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/kapu/ghostchess/internal/domain"
)

// ErrDuplicateGame is returned when a session's game is archived twice.
var ErrDuplicateGame = errors.New("game already archived")

// Repository archives finished games.
type Repository interface {
	InsertGame(ctx context.Context, game *domain.GameRecord) (int64, error)
	GetRecentGames(ctx context.Context, limit int) ([]*domain.GameRecord, error)
	GetGameBySession(ctx context.Context, sessionID string) (*domain.GameRecord, error)
}

type repository struct {
	db *sql.DB
}

// NewRepository returns a Postgres-backed archive.
func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func (r *repository) InsertGame(ctx context.Context, game *domain.GameRecord) (int64, error) {
	if game == nil {
		return 0, fmt.Errorf("nil game record")
	}
	movesUCI, err := json.Marshal(game.MovesUCI)
	if err != nil {
		return 0, fmt.Errorf("marshal moves_uci: %w", err)
	}

	const query = `
		INSERT INTO games (
			session_id,
			mode,
			player_side,
			depth,
			result,
			result_method,
			moves_uci,
			final_fen,
			started_at,
			ended_at,
			duration_ms
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8, $9, $10, $11)
		ON CONFLICT (session_id) DO NOTHING
		RETURNING id`

	var id sql.NullInt64
	err = r.db.QueryRowContext(
		ctx,
		query,
		game.SessionID,
		game.Mode,
		game.PlayerSide,
		game.Depth,
		game.Result,
		game.ResultMethod,
		movesUCI,
		game.FinalFEN,
		game.StartedAt,
		game.EndedAt,
		game.Duration.Milliseconds(),
	).Scan(&id)
	if err == sql.ErrNoRows || (err == nil && !id.Valid) {
		return 0, ErrDuplicateGame
	}
	if err != nil {
		return 0, fmt.Errorf("insert game: %w", err)
	}
	return id.Int64, nil
}

func (r *repository) GetRecentGames(ctx context.Context, limit int) ([]*domain.GameRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	const query = `
		SELECT
			id,
			session_id,
			mode,
			player_side,
			depth,
			result,
			result_method,
			moves_uci,
			final_fen,
			started_at,
			ended_at,
			duration_ms
		FROM games
		ORDER BY ended_at DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("select games: %w", err)
	}
	defer rows.Close()

	games := make([]*domain.GameRecord, 0, limit)
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	return games, rows.Err()
}

func (r *repository) GetGameBySession(ctx context.Context, sessionID string) (*domain.GameRecord, error) {
	const query = `
		SELECT
			id,
			session_id,
			mode,
			player_side,
			depth,
			result,
			result_method,
			moves_uci,
			final_fen,
			started_at,
			ended_at,
			duration_ms
		FROM games
		WHERE session_id = $1
		LIMIT 1`

	row := r.db.QueryRowContext(ctx, query, sessionID)
	game, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return game, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (*domain.GameRecord, error) {
	var (
		game         domain.GameRecord
		movesUCIJSON []byte
		durationMS   sql.NullInt64
	)
	err := row.Scan(
		&game.ID,
		&game.SessionID,
		&game.Mode,
		&game.PlayerSide,
		&game.Depth,
		&game.Result,
		&game.ResultMethod,
		&movesUCIJSON,
		&game.FinalFEN,
		&game.StartedAt,
		&game.EndedAt,
		&durationMS,
	)
	if err != nil {
		return nil, err
	}
	if durationMS.Valid {
		game.Duration = time.Duration(durationMS.Int64) * time.Millisecond
	}
	if err := json.Unmarshal(movesUCIJSON, &game.MovesUCI); err != nil {
		return nil, fmt.Errorf("unmarshal moves_uci: %w", err)
	}
	return &game, nil
}
