package repository

import (
	"context"
	"fmt"

	"fortuna/domain/entities"
	"fortuna/domain/interfaces"

	"github.com/shopspring/decimal"
)

// LedgerRepository implements the LedgerRepository interface
type LedgerRepository struct {
	q Queryable
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(q Queryable) interfaces.LedgerRepository {
	return &LedgerRepository{q: q}
}

// Append inserts a new ledger entry
func (r *LedgerRepository) Append(ctx context.Context, entry *entities.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (discord_id, amount, category, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.q.QueryRow(ctx, query, entry.DiscordID, entry.Amount, entry.Category, entry.Description).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append ledger entry for account %d: %w", entry.DiscordID, err)
	}
	return nil
}

// GetByAccount returns an account's most recent entries, newest first
func (r *LedgerRepository) GetByAccount(ctx context.Context, discordID int64, limit int) ([]*entities.LedgerEntry, error) {
	query := `
		SELECT id, discord_id, amount, category, description, created_at
		FROM ledger_entries
		WHERE discord_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	rows, err := r.q.Query(ctx, query, discordID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries for account %d: %w", discordID, err)
	}
	defer rows.Close()

	var entries []*entities.LedgerEntry
	for rows.Next() {
		var e entities.LedgerEntry
		if err := rows.Scan(&e.ID, &e.DiscordID, &e.Amount, &e.Category, &e.Description, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// Recent returns the most recent entries across all accounts, newest first,
// with each owner's username joined in
func (r *LedgerRepository) Recent(ctx context.Context, limit int) ([]*entities.LedgerEntrySummary, error) {
	query := `
		SELECT e.id, e.discord_id, a.username, e.amount, e.category, e.created_at
		FROM ledger_entries e
		JOIN accounts a ON a.discord_id = e.discord_id
		ORDER BY e.created_at DESC, e.id DESC
		LIMIT $1`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []*entities.LedgerEntrySummary
	for rows.Next() {
		var e entities.LedgerEntrySummary
		if err := rows.Scan(&e.ID, &e.DiscordID, &e.Username, &e.Amount, &e.Category, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry summary: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// SumByAccount returns the sum of all entry amounts for an account. For a
// consistent ledger this equals the account balance.
func (r *LedgerRepository) SumByAccount(ctx context.Context, discordID int64) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM ledger_entries WHERE discord_id = $1`

	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, query, discordID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum ledger entries for account %d: %w", discordID, err)
	}
	return sum, nil
}
