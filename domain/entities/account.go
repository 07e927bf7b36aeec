package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a chat user's economy account. One row exists per
// external (Discord) identity, created lazily on first interaction.
type Account struct {
	DiscordID        int64           `db:"discord_id"`
	Username         string          `db:"username"`
	Balance          decimal.Decimal `db:"balance"`
	LastDailyAt      *time.Time      `db:"last_daily_at"`
	MiningLevel      int             `db:"mining_level"`
	MiningPower      decimal.Decimal `db:"mining_power"`
	MiningMultiplier decimal.Decimal `db:"mining_multiplier"`
	MiningLastAt     *time.Time      `db:"mining_last_at"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}

// CanAfford checks if the account has sufficient balance for an amount.
func (a *Account) CanAfford(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}

// Shortfall returns how much the account is missing to cover an amount.
// Zero when the amount is affordable.
func (a *Account) Shortfall(amount decimal.Decimal) decimal.Decimal {
	if a.CanAfford(amount) {
		return decimal.Zero
	}
	return amount.Sub(a.Balance)
}

// DailyCooldownRemaining returns how long until the daily reward can be
// claimed again. Zero when the reward is available.
func (a *Account) DailyCooldownRemaining(now time.Time, window time.Duration) time.Duration {
	if a.LastDailyAt == nil {
		return 0
	}
	remaining := a.LastDailyAt.Add(window).Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// MiningCooldownRemaining returns how long until a new mining session may
// start. Zero when the cooldown has elapsed.
func (a *Account) MiningCooldownRemaining(now time.Time, cooldown time.Duration) time.Duration {
	if a.MiningLastAt == nil {
		return 0
	}
	remaining := a.MiningLastAt.Add(cooldown).Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}
