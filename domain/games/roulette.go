package games

import "fortuna/domain/entities"

// RouletteBet is one of the six even-money outside bets.
type RouletteBet string

const (
	RouletteRed   RouletteBet = "red"
	RouletteBlack RouletteBet = "black"
	RouletteEven  RouletteBet = "even"
	RouletteOdd   RouletteBet = "odd"
	RouletteHigh  RouletteBet = "high"
	RouletteLow   RouletteBet = "low"
)

// ParseRouletteBet normalizes user input to a bet type.
func ParseRouletteBet(s string) (RouletteBet, bool) {
	switch RouletteBet(s) {
	case RouletteRed, RouletteBlack, RouletteEven, RouletteOdd, RouletteHigh, RouletteLow:
		return RouletteBet(s), true
	default:
		return "", false
	}
}

// redNumbers is the standard single-zero wheel red partition; the remaining
// 18 non-zero numbers are black.
var redNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

// RouletteDetail records a resolved roulette spin.
type RouletteDetail struct {
	BetType RouletteBet `json:"bet_type"`
	Number  int         `json:"number"`
	Color   string      `json:"color"`
	Parity  string      `json:"parity"`
	Range   string      `json:"range"`
	Win     bool        `json:"win"`
}

func (RouletteDetail) Game() entities.GameType { return entities.GameTypeRoulette }

// ResolveRoulette draws a uniform number in [0,36]. Zero is green, neither
// even nor odd, neither high nor low: it loses every bet type.
func ResolveRoulette(r Rand, pt Paytable, bet RouletteBet) Outcome {
	number := r.Intn(37)

	color := "green"
	parity := "zero"
	rangeKind := "zero"
	if number != 0 {
		if redNumbers[number] {
			color = "red"
		} else {
			color = "black"
		}
		if number%2 == 0 {
			parity = "even"
		} else {
			parity = "odd"
		}
		if number >= 19 {
			rangeKind = "high"
		} else {
			rangeKind = "low"
		}
	}

	var win bool
	switch bet {
	case RouletteRed, RouletteBlack:
		win = string(bet) == color
	case RouletteEven, RouletteOdd:
		win = string(bet) == parity
	case RouletteHigh, RouletteLow:
		win = string(bet) == rangeKind
	}

	detail := RouletteDetail{BetType: bet, Number: number, Color: color, Parity: parity, Range: rangeKind, Win: win}
	if !win {
		return lost(detail)
	}
	return won(pt.Roulette, detail)
}
