package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// BotStats is the singleton aggregate record updated by every settlement.
type BotStats struct {
	TotalBets    int64           `db:"total_bets"`
	TotalWagered decimal.Decimal `db:"total_wagered"`
	TotalPayout  decimal.Decimal `db:"total_payout"`
	TotalMined   decimal.Decimal `db:"total_mined"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

// PaybackRatio returns payout/wagered, the global return-to-player figure.
// Zero when nothing has been wagered yet.
func (s *BotStats) PaybackRatio() decimal.Decimal {
	if s.TotalWagered.IsZero() {
		return decimal.Zero
	}
	return s.TotalPayout.DivRound(s.TotalWagered, 4)
}
