package entities

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// EntryCategory classifies a ledger entry.
type EntryCategory string

const (
	EntryCategoryDeposit    EntryCategory = "deposit"
	EntryCategoryWithdrawal EntryCategory = "withdrawal"
	EntryCategoryBet        EntryCategory = "bet"
	EntryCategoryWin        EntryCategory = "win"
	EntryCategoryMining     EntryCategory = "mining"
	EntryCategoryDaily      EntryCategory = "daily"
	EntryCategoryAdmin      EntryCategory = "admin"
)

// LedgerEntry is one immutable row of the append-only audit trail. The
// starting balance is recorded as the first entry, so the sum of an account's
// entries always equals its current balance.
type LedgerEntry struct {
	ID          int64           `db:"id"`
	DiscordID   int64           `db:"discord_id"`
	Amount      decimal.Decimal `db:"amount"`
	Category    EntryCategory   `db:"category"`
	Description string          `db:"description"`
	CreatedAt   time.Time       `db:"created_at"`
}

// LedgerEntrySummary is a ledger entry joined with the owning account's
// username, for cross-account activity feeds.
type LedgerEntrySummary struct {
	ID        int64           `json:"id"`
	DiscordID int64           `json:"discord_id"`
	Username  string          `json:"username"`
	Amount    decimal.Decimal `json:"amount"`
	Category  EntryCategory   `json:"category"`
	CreatedAt time.Time       `json:"created_at"`
}

// IsCredit returns true when the entry increases the balance.
func (e *LedgerEntry) IsCredit() bool {
	return e.Amount.IsPositive()
}

// IsDebit returns true when the entry decreases the balance.
func (e *LedgerEntry) IsDebit() bool {
	return e.Amount.IsNegative()
}

// Validate performs basic consistency checks before the entry is appended.
func (e *LedgerEntry) Validate() error {
	if e.Amount.IsZero() {
		return errors.New("entry amount cannot be zero")
	}
	switch e.Category {
	case EntryCategoryDeposit, EntryCategoryWithdrawal, EntryCategoryBet,
		EntryCategoryWin, EntryCategoryMining, EntryCategoryDaily, EntryCategoryAdmin:
		return nil
	default:
		return errors.New("unknown entry category")
	}
}
