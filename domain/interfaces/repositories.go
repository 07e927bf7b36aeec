package interfaces

import (
	"context"
	"time"

	"fortuna/domain/entities"
	"fortuna/domain/events"

	"github.com/shopspring/decimal"
)

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	// GetByDiscordID retrieves an account by its Discord ID; nil when absent
	GetByDiscordID(ctx context.Context, discordID int64) (*entities.Account, error)

	// Create creates a new account with the starting balance
	Create(ctx context.Context, discordID int64, username string, startingBalance decimal.Decimal) (*entities.Account, error)

	// AdjustBalance atomically applies a signed delta to an account balance
	// and returns the new balance. A debit that would drive the balance
	// below zero fails with entities.InsufficientFundsError and leaves the
	// balance unchanged.
	AdjustBalance(ctx context.Context, discordID int64, delta decimal.Decimal) (decimal.Decimal, error)

	// SetDailyClaimed stamps the last daily claim time
	SetDailyClaimed(ctx context.Context, discordID int64, at time.Time) error

	// SetMiningCompleted stamps the last mining completion time
	SetMiningCompleted(ctx context.Context, discordID int64, at time.Time) error

	// ApplyUpgrade persists a purchased mining equipment upgrade
	ApplyUpgrade(ctx context.Context, discordID int64, level int, power, multiplier decimal.Decimal) error

	// ResetMining restores an account's mining equipment to defaults and
	// clears the cooldown stamp
	ResetMining(ctx context.Context, discordID int64) error

	// Top returns the richest accounts, highest balance first
	Top(ctx context.Context, limit int) ([]*entities.Account, error)

	// Census returns the account count and the total currency in circulation
	Census(ctx context.Context) (int64, decimal.Decimal, error)
}

// LedgerRepository defines the interface for the append-only audit trail
type LedgerRepository interface {
	// Append inserts a new ledger entry
	Append(ctx context.Context, entry *entities.LedgerEntry) error

	// GetByAccount returns an account's most recent entries
	GetByAccount(ctx context.Context, discordID int64, limit int) ([]*entities.LedgerEntry, error)

	// Recent returns the most recent entries across all accounts, with
	// usernames attached
	Recent(ctx context.Context, limit int) ([]*entities.LedgerEntrySummary, error)

	// SumByAccount returns the sum of all entry amounts for an account
	SumByAccount(ctx context.Context, discordID int64) (decimal.Decimal, error)
}

// GameSessionRepository defines the interface for settled wager records
type GameSessionRepository interface {
	// Create inserts a new game session record
	Create(ctx context.Context, session *entities.GameSession) error

	// GetByAccount returns an account's most recent game sessions
	GetByAccount(ctx context.Context, discordID int64, limit int) ([]*entities.GameSession, error)

	// Recent returns the most recent sessions across all accounts, with
	// usernames attached
	Recent(ctx context.Context, limit int) ([]*entities.GameSessionSummary, error)
}

// MiningRunRepository defines the interface for completed mining history
type MiningRunRepository interface {
	// Create inserts a new mining run record
	Create(ctx context.Context, run *entities.MiningRun) error

	// TotalsByAccount returns the run count and total amount mined
	TotalsByAccount(ctx context.Context, discordID int64) (int64, decimal.Decimal, error)
}

// StatsRepository defines the interface for the aggregate statistics row
type StatsRepository interface {
	// RecordWager bumps the bet count, wagered total and payout total
	RecordWager(ctx context.Context, bet, payout decimal.Decimal) error

	// RecordMined adds to the cumulative mined total
	RecordMined(ctx context.Context, amount decimal.Decimal) error

	// Get returns the aggregate record
	Get(ctx context.Context) (*entities.BotStats, error)
}

// UnitOfWork represents one atomic transaction scope; repositories obtained
// from it share that transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	AccountRepository() AccountRepository
	LedgerRepository() LedgerRepository
	GameSessionRepository() GameSessionRepository
	MiningRunRepository() MiningRunRepository
	StatsRepository() StatsRepository
}

// UnitOfWorkFactory creates units of work
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event) error
}

// Notifier delivers best-effort out-of-band notifications; failures are
// logged by callers, never rolled back.
type Notifier interface {
	NotifyMiningComplete(ctx context.Context, completion *entities.MiningCompletion) error
}
