package repository

import (
	"context"
	"fmt"
	"time"

	"fortuna/domain/entities"
	"fortuna/domain/interfaces"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountRepository implements the AccountRepository interface
type AccountRepository struct {
	q Queryable
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(q Queryable) interfaces.AccountRepository {
	return &AccountRepository{q: q}
}

const accountColumns = `discord_id, username, balance, last_daily_at, mining_level, mining_power, mining_multiplier, mining_last_at, created_at, updated_at`

func scanAccount(row pgx.Row) (*entities.Account, error) {
	var a entities.Account
	err := row.Scan(
		&a.DiscordID,
		&a.Username,
		&a.Balance,
		&a.LastDailyAt,
		&a.MiningLevel,
		&a.MiningPower,
		&a.MiningMultiplier,
		&a.MiningLastAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByDiscordID retrieves an account by its Discord ID; returns nil when the
// account does not exist
func (r *AccountRepository) GetByDiscordID(ctx context.Context, discordID int64) (*entities.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE discord_id = $1`, accountColumns)

	account, err := scanAccount(r.q.QueryRow(ctx, query, discordID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %d: %w", discordID, err)
	}
	return account, nil
}

// Create creates a new account with the starting balance
func (r *AccountRepository) Create(ctx context.Context, discordID int64, username string, startingBalance decimal.Decimal) (*entities.Account, error) {
	query := fmt.Sprintf(`
		INSERT INTO accounts (discord_id, username, balance)
		VALUES ($1, $2, $3)
		RETURNING %s`, accountColumns)

	account, err := scanAccount(r.q.QueryRow(ctx, query, discordID, username, startingBalance))
	if err != nil {
		return nil, fmt.Errorf("failed to create account %d: %w", discordID, err)
	}
	return account, nil
}

// AdjustBalance applies a signed delta as a single conditional update. The
// WHERE clause is the serialization boundary: a debit past zero matches no
// rows and the balance is untouched.
func (r *AccountRepository) AdjustBalance(ctx context.Context, discordID int64, delta decimal.Decimal) (decimal.Decimal, error) {
	query := `
		UPDATE accounts
		SET balance = balance + $2, updated_at = NOW()
		WHERE discord_id = $1 AND balance + $2 >= 0
		RETURNING balance`

	var newBalance decimal.Decimal
	err := r.q.QueryRow(ctx, query, discordID, delta).Scan(&newBalance)
	if err == pgx.ErrNoRows {
		var balance decimal.Decimal
		checkErr := r.q.QueryRow(ctx, `SELECT balance FROM accounts WHERE discord_id = $1`, discordID).Scan(&balance)
		if checkErr == pgx.ErrNoRows {
			return decimal.Zero, fmt.Errorf("account %d not found", discordID)
		}
		if checkErr != nil {
			return decimal.Zero, fmt.Errorf("failed to check account %d: %w", discordID, checkErr)
		}
		return decimal.Zero, &entities.InsufficientFundsError{
			Required:  delta.Neg(),
			Available: balance,
		}
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to adjust balance for account %d: %w", discordID, err)
	}
	return newBalance, nil
}

// SetDailyClaimed stamps the last daily claim time
func (r *AccountRepository) SetDailyClaimed(ctx context.Context, discordID int64, at time.Time) error {
	query := `UPDATE accounts SET last_daily_at = $2, updated_at = NOW() WHERE discord_id = $1`

	tag, err := r.q.Exec(ctx, query, discordID, at)
	if err != nil {
		return fmt.Errorf("failed to stamp daily claim for account %d: %w", discordID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %d not found", discordID)
	}
	return nil
}

// SetMiningCompleted stamps the last mining completion time
func (r *AccountRepository) SetMiningCompleted(ctx context.Context, discordID int64, at time.Time) error {
	query := `UPDATE accounts SET mining_last_at = $2, updated_at = NOW() WHERE discord_id = $1`

	tag, err := r.q.Exec(ctx, query, discordID, at)
	if err != nil {
		return fmt.Errorf("failed to stamp mining completion for account %d: %w", discordID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %d not found", discordID)
	}
	return nil
}

// ApplyUpgrade persists a purchased mining equipment upgrade
func (r *AccountRepository) ApplyUpgrade(ctx context.Context, discordID int64, level int, power, multiplier decimal.Decimal) error {
	query := `
		UPDATE accounts
		SET mining_level = $2, mining_power = $3, mining_multiplier = $4, updated_at = NOW()
		WHERE discord_id = $1`

	tag, err := r.q.Exec(ctx, query, discordID, level, power, multiplier)
	if err != nil {
		return fmt.Errorf("failed to apply upgrade for account %d: %w", discordID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %d not found", discordID)
	}
	return nil
}

// ResetMining restores an account's mining equipment to level 1 defaults and
// clears the cooldown stamp
func (r *AccountRepository) ResetMining(ctx context.Context, discordID int64) error {
	query := `
		UPDATE accounts
		SET mining_level = 1, mining_power = 1, mining_multiplier = 1, mining_last_at = NULL, updated_at = NOW()
		WHERE discord_id = $1`

	tag, err := r.q.Exec(ctx, query, discordID)
	if err != nil {
		return fmt.Errorf("failed to reset mining for account %d: %w", discordID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %d not found", discordID)
	}
	return nil
}

// Top returns the richest accounts, highest balance first
func (r *AccountRepository) Top(ctx context.Context, limit int) ([]*entities.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts ORDER BY balance DESC, discord_id LIMIT $1`, accountColumns)

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*entities.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// Census returns the account count and the total currency in circulation
func (r *AccountRepository) Census(ctx context.Context) (int64, decimal.Decimal, error) {
	query := `SELECT COUNT(*), COALESCE(SUM(balance), 0) FROM accounts`

	var count int64
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query).Scan(&count, &total); err != nil {
		return 0, decimal.Zero, fmt.Errorf("failed to take account census: %w", err)
	}
	return count, total, nil
}
