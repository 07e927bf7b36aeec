package repository

import (
	"context"
	"fmt"

	"fortuna/domain/entities"
	"fortuna/domain/interfaces"
)

// GameSessionRepository implements the GameSessionRepository interface
type GameSessionRepository struct {
	q Queryable
}

// NewGameSessionRepository creates a new game session repository
func NewGameSessionRepository(q Queryable) interfaces.GameSessionRepository {
	return &GameSessionRepository{q: q}
}

// Create inserts a new game session record
func (r *GameSessionRepository) Create(ctx context.Context, session *entities.GameSession) error {
	query := `
		INSERT INTO game_sessions (discord_id, game_type, bet_amount, payout, result)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.q.QueryRow(ctx, query, session.DiscordID, session.GameType, session.BetAmount, session.Payout, session.Result).
		Scan(&session.ID, &session.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create game session for account %d: %w", session.DiscordID, err)
	}
	return nil
}

// GetByAccount returns an account's most recent game sessions, newest first
func (r *GameSessionRepository) GetByAccount(ctx context.Context, discordID int64, limit int) ([]*entities.GameSession, error) {
	query := `
		SELECT id, discord_id, game_type, bet_amount, payout, result, created_at
		FROM game_sessions
		WHERE discord_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	rows, err := r.q.Query(ctx, query, discordID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query game sessions for account %d: %w", discordID, err)
	}
	defer rows.Close()

	var sessions []*entities.GameSession
	for rows.Next() {
		var s entities.GameSession
		if err := rows.Scan(&s.ID, &s.DiscordID, &s.GameType, &s.BetAmount, &s.Payout, &s.Result, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan game session: %w", err)
		}
		sessions = append(sessions, &s)
	}
	return sessions, rows.Err()
}

// Recent returns the most recent sessions across all accounts, newest first,
// with each owner's username joined in
func (r *GameSessionRepository) Recent(ctx context.Context, limit int) ([]*entities.GameSessionSummary, error) {
	query := `
		SELECT s.id, s.discord_id, a.username, s.game_type, s.bet_amount, s.payout, s.created_at
		FROM game_sessions s
		JOIN accounts a ON a.discord_id = s.discord_id
		ORDER BY s.created_at DESC, s.id DESC
		LIMIT $1`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent game sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*entities.GameSessionSummary
	for rows.Next() {
		var s entities.GameSessionSummary
		if err := rows.Scan(&s.ID, &s.DiscordID, &s.Username, &s.GameType, &s.BetAmount, &s.Payout, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan game session summary: %w", err)
		}
		sessions = append(sessions, &s)
	}
	return sessions, rows.Err()
}
