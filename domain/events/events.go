package events

import (
	"fortuna/domain/entities"

	"github.com/shopspring/decimal"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeAccountCreated  EventType = "account_created"
	EventTypeWagerSettled    EventType = "wager_settled"
	EventTypeMiningCompleted EventType = "mining_completed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// AccountCreatedEvent represents a new account creation
type AccountCreatedEvent struct {
	DiscordID       int64           `json:"discord_id"`
	Username        string          `json:"username"`
	StartingBalance decimal.Decimal `json:"starting_balance"`
}

func (e AccountCreatedEvent) Type() EventType {
	return EventTypeAccountCreated
}

// WagerSettledEvent represents a wager that was settled against the ledger
type WagerSettledEvent struct {
	DiscordID  int64             `json:"discord_id"`
	GameType   entities.GameType `json:"game_type"`
	BetAmount  decimal.Decimal   `json:"bet_amount"`
	Payout     decimal.Decimal   `json:"payout"`
	Won        bool              `json:"won"`
	NewBalance decimal.Decimal   `json:"new_balance"`
}

func (e WagerSettledEvent) Type() EventType {
	return EventTypeWagerSettled
}

// MiningCompletedEvent represents a mining session that finished and paid out
type MiningCompletedEvent struct {
	DiscordID       int64           `json:"discord_id"`
	DurationSeconds int             `json:"duration_seconds"`
	AmountEarned    decimal.Decimal `json:"amount_earned"`
	Bonus           bool            `json:"bonus"`
}

func (e MiningCompletedEvent) Type() EventType {
	return EventTypeMiningCompleted
}
