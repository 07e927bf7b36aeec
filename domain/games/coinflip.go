package games

import "fortuna/domain/entities"

// CoinSide is a coin flip call.
type CoinSide string

const (
	Heads CoinSide = "heads"
	Tails CoinSide = "tails"
)

// ParseCoinSide normalizes user input to a coin side.
func ParseCoinSide(s string) (CoinSide, bool) {
	switch s {
	case "heads", "h":
		return Heads, true
	case "tails", "t":
		return Tails, true
	default:
		return "", false
	}
}

// CoinFlipDetail records a resolved coin flip.
type CoinFlipDetail struct {
	Choice CoinSide `json:"choice"`
	Result CoinSide `json:"result"`
	Win    bool     `json:"win"`
}

func (CoinFlipDetail) Game() entities.GameType { return entities.GameTypeCoinFlip }

// ResolveCoinFlip draws a uniform side and pays the configured multiplier on a
// match with the player's call.
func ResolveCoinFlip(r Rand, pt Paytable, choice CoinSide) Outcome {
	result := Heads
	if r.Intn(2) == 1 {
		result = Tails
	}

	detail := CoinFlipDetail{Choice: choice, Result: result, Win: result == choice}
	if !detail.Win {
		return lost(detail)
	}
	return won(pt.CoinFlip, detail)
}
