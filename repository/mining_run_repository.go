package repository

import (
	"context"
	"fmt"

	"fortuna/domain/entities"
	"fortuna/domain/interfaces"

	"github.com/shopspring/decimal"
)

// MiningRunRepository implements the MiningRunRepository interface
type MiningRunRepository struct {
	q Queryable
}

// NewMiningRunRepository creates a new mining run repository
func NewMiningRunRepository(q Queryable) interfaces.MiningRunRepository {
	return &MiningRunRepository{q: q}
}

// Create inserts a new mining run record
func (r *MiningRunRepository) Create(ctx context.Context, run *entities.MiningRun) error {
	query := `
		INSERT INTO mining_runs (discord_id, duration_seconds, amount_earned)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.q.QueryRow(ctx, query, run.DiscordID, run.DurationSeconds, run.AmountEarned).
		Scan(&run.ID, &run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create mining run for account %d: %w", run.DiscordID, err)
	}
	return nil
}

// TotalsByAccount returns the run count and total amount mined
func (r *MiningRunRepository) TotalsByAccount(ctx context.Context, discordID int64) (int64, decimal.Decimal, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(amount_earned), 0)
		FROM mining_runs
		WHERE discord_id = $1`

	var count int64
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, discordID).Scan(&count, &total); err != nil {
		return 0, decimal.Zero, fmt.Errorf("failed to get mining totals for account %d: %w", discordID, err)
	}
	return count, total, nil
}
