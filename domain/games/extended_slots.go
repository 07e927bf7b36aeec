package games

import (
	"fortuna/domain/entities"

	"github.com/shopspring/decimal"
)

// Extended slot machine: a 3x5 grid drawn from an 11-symbol weighted set with
// a Wild and a Scatter, evaluated over seven fixed paylines.
const (
	extRows  = 3
	extReels = 5

	// SymbolWild substitutes for any non-scatter symbol when counting a run.
	SymbolWild = "🃏"
	// SymbolScatter awards free spins when it appears 3+ times anywhere.
	SymbolScatter = "🌟"

	extJackpotSymbol = "7️⃣"
)

var (
	extSymbols = []string{"🍒", "🍋", "🍊", "🍇", "🍉", "💎", "7️⃣", "🎰", "💰", SymbolWild, SymbolScatter}
	extWeights = []int{20, 20, 18, 18, 15, 10, 8, 5, 5, 3, 3}
)

// extPaylines are (row, reel) coordinates: three horizontals, two zig-zags,
// two diagonals.
var extPaylines = [7][extReels][2]int{
	{{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}}, // top row
	{{1, 0}, {1, 1}, {1, 2}, {1, 3}, {1, 4}}, // middle row
	{{2, 0}, {2, 1}, {2, 2}, {2, 3}, {2, 4}}, // bottom row
	{{0, 0}, {1, 1}, {2, 2}, {1, 3}, {0, 4}}, // v shape
	{{2, 0}, {1, 1}, {0, 2}, {1, 3}, {2, 4}}, // inverted v
	{{0, 0}, {0, 1}, {1, 2}, {2, 3}, {2, 4}}, // diagonal down
	{{2, 0}, {2, 1}, {1, 2}, {0, 3}, {0, 4}}, // diagonal up
}

var extPaylineNames = [7]string{
	"top row", "middle row", "bottom row", "v shape", "inverted v", "diagonal down", "diagonal up",
}

// ExtWinKind names the tier a payline run landed on.
type ExtWinKind string

const (
	ExtWinMegaJackpot  ExtWinKind = "mega_jackpot"
	ExtWinJackpot      ExtWinKind = "jackpot"
	ExtWinBigWin       ExtWinKind = "big_win"
	ExtWinBonus        ExtWinKind = "bonus_win"
	ExtWinThreeOfAKind ExtWinKind = "three_of_a_kind"
)

// PaylineWin describes one winning payline.
type PaylineWin struct {
	Line       int                `json:"line"` // 1-based payline index
	Name       string             `json:"name"`
	Symbols    [extReels]string   `json:"symbols"`
	Symbol     string             `json:"symbol"` // run target symbol
	Count      int                `json:"count"`  // run length including wilds
	Wilds      int                `json:"wilds"`
	Kind       ExtWinKind         `json:"kind"`
	Multiplier decimal.Decimal    `json:"multiplier"` // in bet units, wild bonus included
}

// ExtendedSlotsDetail records a resolved extended slots spin.
type ExtendedSlotsDetail struct {
	Grid              [extRows][extReels]string `json:"grid"`
	WinLines          []PaylineWin              `json:"win_lines"`
	ScatterCount      int                       `json:"scatter_count"`
	FreeSpins         int                       `json:"free_spins"`
	ScatterMultiplier decimal.Decimal           `json:"scatter_multiplier"`
	Win               bool                      `json:"win"`
}

func (ExtendedSlotsDetail) Game() entities.GameType { return entities.GameTypeSlotsExtended }

var half = decimal.NewFromFloat(0.5)

// ResolveExtendedSlots draws every grid cell independently, evaluates all
// seven paylines, then applies the scatter feature: 3+ scatters anywhere
// award 2x free spins each, a flat +0.5 multiplier on the summed payline
// payout, and 0.5 bet units per free spin.
func ResolveExtendedSlots(r Rand, pt Paytable) Outcome {
	var grid [extRows][extReels]string
	scatters := 0
	for row := 0; row < extRows; row++ {
		for reel := 0; reel < extReels; reel++ {
			symbol := extSymbols[WeightedPick(r, extWeights)]
			grid[row][reel] = symbol
			if symbol == SymbolScatter {
				scatters++
			}
		}
	}

	detail := ExtendedSlotsDetail{
		Grid:              grid,
		ScatterCount:      scatters,
		ScatterMultiplier: decimal.NewFromInt(1),
	}

	total := decimal.Zero
	for i, coords := range extPaylines {
		var line [extReels]string
		for j, rc := range coords {
			line[j] = grid[rc[0]][rc[1]]
		}

		if win, ok := evaluatePayline(line, pt); ok {
			win.Line = i + 1
			win.Name = extPaylineNames[i]
			win.Symbols = line
			detail.WinLines = append(detail.WinLines, win)
			total = total.Add(win.Multiplier)
		}
	}

	if scatters >= 3 {
		detail.FreeSpins = scatters * 2
		detail.ScatterMultiplier = decimal.NewFromInt(1).Add(half)
		total = total.Mul(detail.ScatterMultiplier)
		// Each free spin is worth a flat half bet.
		total = total.Add(half.Mul(decimal.NewFromInt(int64(detail.FreeSpins))))
	}

	detail.Win = total.IsPositive()
	if !detail.Win {
		return lost(detail)
	}
	return won(total, detail)
}

// evaluatePayline finds the best run on a single payline. Wilds count toward
// every candidate symbol's run but are excluded from the target choice while
// other symbols are present; scatters never participate. Ties on run length
// prefer the jackpot symbol.
func evaluatePayline(line [extReels]string, pt Paytable) (PaylineWin, bool) {
	wilds := 0
	actual := make(map[string]int, extReels)
	var order []string
	for _, symbol := range line {
		switch symbol {
		case SymbolWild:
			wilds++
		case SymbolScatter:
			// no-op
		default:
			if _, seen := actual[symbol]; !seen {
				order = append(order, symbol)
			}
			actual[symbol]++
		}
	}

	var best string
	bestCount := 0
	for _, symbol := range order {
		run := actual[symbol] + wilds
		if run > bestCount || (run == bestCount && symbol == extJackpotSymbol) {
			best = symbol
			bestCount = run
		}
	}
	if best == "" && wilds > 0 {
		// Pure wild line: the wilds form their own run.
		best = SymbolWild
		bestCount = wilds
	}

	if bestCount < 3 {
		return PaylineWin{}, false
	}

	var kind ExtWinKind
	var multiplier decimal.Decimal
	switch {
	case best == extJackpotSymbol && bestCount == 5:
		kind = ExtWinMegaJackpot
		multiplier = pt.ExtMegaJackpot
	case best == extJackpotSymbol:
		kind = ExtWinJackpot
		multiplier = pt.ExtJackpot.Mul(decimal.NewFromInt(int64(bestCount - 2)))
	case bestCount == 5:
		kind = ExtWinBigWin
		multiplier = pt.ExtBigWin
	case bestCount == 4:
		kind = ExtWinBonus
		multiplier = pt.ExtBonus
	default:
		kind = ExtWinThreeOfAKind
		multiplier = decimal.NewFromInt(3)
	}

	if wilds > 0 {
		wildBonus := decimal.NewFromInt(1).Add(half.Mul(decimal.NewFromInt(int64(wilds))))
		multiplier = multiplier.Mul(wildBonus)
	}

	return PaylineWin{Symbol: best, Count: bestCount, Wilds: wilds, Kind: kind, Multiplier: multiplier}, true
}
