package games

import (
	"fortuna/domain/entities"

	"github.com/shopspring/decimal"
)

// Outcome is what a resolver produces from a random draw and bet parameters.
// Resolvers are pure: they never touch the ledger, and the payout multiplier
// is expressed in bet units so settlement can compute the payout amount.
type Outcome struct {
	Won              bool
	PayoutMultiplier decimal.Decimal
	Detail           entities.GameDetail
}

func lost(detail entities.GameDetail) Outcome {
	return Outcome{Won: false, PayoutMultiplier: decimal.Zero, Detail: detail}
}

func won(multiplier decimal.Decimal, detail entities.GameDetail) Outcome {
	return Outcome{Won: true, PayoutMultiplier: multiplier, Detail: detail}
}
