package repository

import (
	"context"
	"fmt"

	"fortuna/domain/entities"
	"fortuna/domain/interfaces"

	"github.com/shopspring/decimal"
)

// StatsRepository implements the StatsRepository interface over the single
// aggregate row seeded by the initial migration.
type StatsRepository struct {
	q Queryable
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(q Queryable) interfaces.StatsRepository {
	return &StatsRepository{q: q}
}

// RecordWager bumps the bet count, wagered total and payout total
func (r *StatsRepository) RecordWager(ctx context.Context, bet, payout decimal.Decimal) error {
	query := `
		UPDATE bot_statistics
		SET total_bets = total_bets + 1,
		    total_wagered = total_wagered + $1,
		    total_payout = total_payout + $2,
		    updated_at = NOW()
		WHERE id = 1`

	if _, err := r.q.Exec(ctx, query, bet, payout); err != nil {
		return fmt.Errorf("failed to record wager statistics: %w", err)
	}
	return nil
}

// RecordMined adds to the cumulative mined total
func (r *StatsRepository) RecordMined(ctx context.Context, amount decimal.Decimal) error {
	query := `
		UPDATE bot_statistics
		SET total_mined = total_mined + $1, updated_at = NOW()
		WHERE id = 1`

	if _, err := r.q.Exec(ctx, query, amount); err != nil {
		return fmt.Errorf("failed to record mined statistics: %w", err)
	}
	return nil
}

// Get returns the aggregate record
func (r *StatsRepository) Get(ctx context.Context) (*entities.BotStats, error) {
	query := `
		SELECT total_bets, total_wagered, total_payout, total_mined, updated_at
		FROM bot_statistics
		WHERE id = 1`

	var stats entities.BotStats
	err := r.q.QueryRow(ctx, query).Scan(&stats.TotalBets, &stats.TotalWagered, &stats.TotalPayout, &stats.TotalMined, &stats.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get statistics: %w", err)
	}
	return &stats, nil
}
