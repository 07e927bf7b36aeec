package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MiningSession is the transient in-memory record of one active mining run.
// Mining power and multiplier are snapshotted at start so upgrades bought
// mid-session do not retroactively change an in-flight run. Sessions are not
// persisted; a process restart drops them.
type MiningSession struct {
	ID               uuid.UUID
	DiscordID        int64
	StartedAt        time.Time
	Duration         time.Duration
	MiningPower      decimal.Decimal
	MiningMultiplier decimal.Decimal
}

// ExpiresAt returns the instant the session is due for completion.
func (s *MiningSession) ExpiresAt() time.Time {
	return s.StartedAt.Add(s.Duration)
}

// Remaining returns how much mining time is left at now, floored at zero.
func (s *MiningSession) Remaining(now time.Time) time.Duration {
	remaining := s.ExpiresAt().Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Expired reports whether the session's planned duration has elapsed.
func (s *MiningSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt())
}

// MiningRun is the durable history record of one completed mining session.
type MiningRun struct {
	ID              int64           `db:"id"`
	DiscordID       int64           `db:"discord_id"`
	DurationSeconds int             `db:"duration_seconds"`
	AmountEarned    decimal.Decimal `db:"amount_earned"`
	CreatedAt       time.Time       `db:"created_at"`
}

// MiningCompletion summarizes a settled mining session for notification.
type MiningCompletion struct {
	DiscordID        int64
	Duration         time.Duration
	MiningPower      decimal.Decimal
	MiningMultiplier decimal.Decimal
	AmountEarned     decimal.Decimal
	Bonus            bool
	NewBalance       decimal.Decimal
}

// UpgradeResult summarizes a purchased mining equipment upgrade.
type UpgradeResult struct {
	NewLevel        int
	Cost            decimal.Decimal
	NewPower        decimal.Decimal
	NewMultiplier   decimal.Decimal
	MultiplierBonus decimal.Decimal
	BonusReceived   bool
	NewBalance      decimal.Decimal
}

// MinerProfile aggregates an account's mining state for display.
type MinerProfile struct {
	Level           int
	Power           decimal.Decimal
	Multiplier      decimal.Decimal
	LastRunAt       *time.Time
	TotalRuns       int64
	TotalMined      decimal.Decimal
	NextUpgradeCost decimal.Decimal
}
