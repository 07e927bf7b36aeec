package interfaces

import (
	"context"

	"fortuna/domain/entities"
	"fortuna/domain/games"

	"github.com/shopspring/decimal"
)

// LedgerService is the balance + audit-trail component. Both operations run
// inside the unit of work the service was constructed over.
type LedgerService interface {
	// GetOrCreateAccount returns the account for an identity, lazily
	// creating it with the configured starting balance.
	GetOrCreateAccount(ctx context.Context, discordID int64, username string) (*entities.Account, error)

	// ApplyEntry atomically adjusts the balance and appends the matching
	// ledger entry; either both happen or neither does. Returns the entry
	// and the new balance.
	ApplyEntry(ctx context.Context, discordID int64, amount decimal.Decimal, category entities.EntryCategory, description string) (*entities.LedgerEntry, decimal.Decimal, error)
}

// SettlementService atomically applies a resolved game outcome to the ledger:
// bet debit entry, win credit entry when won, one game session record, and
// the aggregate statistics bump.
type SettlementService interface {
	Settle(ctx context.Context, account *entities.Account, gameType entities.GameType, bet decimal.Decimal, outcome games.Outcome) (*entities.SettlementResult, error)
}

// GameService orchestrates one wager per call: validation, account lookup,
// sufficiency check, resolution, settlement.
type GameService interface {
	PlayCoinFlip(ctx context.Context, discordID int64, username string, bet decimal.Decimal, choice string) (*entities.GameResult, error)
	PlayDice(ctx context.Context, discordID int64, username string, bet decimal.Decimal, target *int) (*entities.GameResult, error)
	PlaySlots(ctx context.Context, discordID int64, username string, bet decimal.Decimal) (*entities.GameResult, error)
	PlayExtendedSlots(ctx context.Context, discordID int64, username string, bet decimal.Decimal) (*entities.GameResult, error)
	PlayRoulette(ctx context.Context, discordID int64, username string, bet decimal.Decimal, betType string) (*entities.GameResult, error)
}

// DailyClaimResult summarizes a claimed daily reward.
type DailyClaimResult struct {
	Amount     decimal.Decimal
	NewBalance decimal.Decimal
}

// TransferResult summarizes a completed transfer.
type TransferResult struct {
	Amount           decimal.Decimal
	SenderNewBalance decimal.Decimal
}

// EconomyService covers the non-wager economy operations.
type EconomyService interface {
	ClaimDaily(ctx context.Context, discordID int64, username string) (*DailyClaimResult, error)
	Transfer(ctx context.Context, fromID int64, fromName string, toID int64, toName string, amount decimal.Decimal) (*TransferResult, error)
	Leaderboard(ctx context.Context, limit int) ([]*entities.Account, error)
	History(ctx context.Context, discordID int64, limit int) ([]*entities.LedgerEntry, error)
}

// AdminAdjustResult summarizes an administrative balance change. Amount is
// the magnitude actually applied, which a removal clamps to the available
// balance.
type AdminAdjustResult struct {
	Amount     decimal.Decimal
	NewBalance decimal.Decimal
}

// AdminService covers privileged account maintenance. Every balance change it
// makes is recorded as an admin ledger entry attributed to the acting
// moderator.
type AdminService interface {
	AddBalance(ctx context.Context, actor string, discordID int64, username string, amount decimal.Decimal) (*AdminAdjustResult, error)
	RemoveBalance(ctx context.Context, actor string, discordID int64, username string, amount decimal.Decimal) (*AdminAdjustResult, error)
	ResetBalance(ctx context.Context, actor string, discordID int64, username string) (*AdminAdjustResult, error)
	ResetMining(ctx context.Context, discordID int64, username string) error
}

// MiningService covers mining settlement and the upgrade path. Session
// lifecycle (start/query/expiry) is owned by the scheduler, which calls
// CompleteSession when a session's duration has elapsed.
type MiningService interface {
	CompleteSession(ctx context.Context, session *entities.MiningSession) (*entities.MiningCompletion, error)
	UpgradeEquipment(ctx context.Context, discordID int64, username string) (*entities.UpgradeResult, error)
	Profile(ctx context.Context, discordID int64, username string) (*entities.MinerProfile, error)
}
