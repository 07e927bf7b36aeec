package games

import "github.com/shopspring/decimal"

// Paytable carries every payout multiplier a resolver needs. It is built from
// configuration once and passed in explicitly so resolvers stay pure.
type Paytable struct {
	CoinFlip decimal.Decimal

	DiceDefault decimal.Decimal
	DiceExact   decimal.Decimal

	SlotsJackpot decimal.Decimal
	SlotsDiamond decimal.Decimal
	SlotsMatch   decimal.Decimal
	SlotsCherry  decimal.Decimal

	ExtMegaJackpot decimal.Decimal
	ExtJackpot     decimal.Decimal
	ExtBigWin      decimal.Decimal
	ExtBonus       decimal.Decimal

	Roulette decimal.Decimal
}
