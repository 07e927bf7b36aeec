package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// GameType tags a settled wager with the game that produced it.
type GameType string

const (
	GameTypeCoinFlip      GameType = "coinflip"
	GameTypeDice          GameType = "dice"
	GameTypeSlots         GameType = "slots"
	GameTypeSlotsExtended GameType = "slots_extended"
	GameTypeRoulette      GameType = "roulette"
)

// GameDetail is the structured result payload a game resolver produces.
// Concrete detail types live in the games package; they are stored verbatim
// (as JSON) on the session record for audit.
type GameDetail interface {
	Game() GameType
}

// GameSession is the immutable record of one settled wager.
type GameSession struct {
	ID        int64           `db:"id"`
	DiscordID int64           `db:"discord_id"`
	GameType  GameType        `db:"game_type"`
	BetAmount decimal.Decimal `db:"bet_amount"`
	Payout    decimal.Decimal `db:"payout"`
	Result    []byte          `db:"result"`
	CreatedAt time.Time       `db:"created_at"`
}

// GameSessionSummary is a game session joined with the owning account's
// username, for cross-account activity feeds.
type GameSessionSummary struct {
	ID        int64           `json:"id"`
	DiscordID int64           `json:"discord_id"`
	Username  string          `json:"username"`
	GameType  GameType        `json:"game_type"`
	BetAmount decimal.Decimal `json:"bet_amount"`
	Payout    decimal.Decimal `json:"payout"`
	CreatedAt time.Time       `json:"created_at"`
}

// SettlementResult is what the settlement engine hands back to callers after
// atomically applying a wager outcome.
type SettlementResult struct {
	Won        bool
	BetAmount  decimal.Decimal
	Payout     decimal.Decimal
	NewBalance decimal.Decimal
}

// GameResult carries everything a caller needs to render a finished game
// without re-deriving any game logic.
type GameResult struct {
	GameType         GameType
	Won              bool
	BetAmount        decimal.Decimal
	Payout           decimal.Decimal
	PayoutMultiplier decimal.Decimal
	NewBalance       decimal.Decimal
	Detail           GameDetail
}
