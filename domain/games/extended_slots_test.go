package games

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// extRolls builds the Intn queue that draws the given grid row by row.
func extRolls(t *testing.T, grid [extRows][extReels]string) []int {
	t.Helper()
	var rolls []int
	for row := 0; row < extRows; row++ {
		for reel := 0; reel < extReels; reel++ {
			idx := -1
			for i, s := range extSymbols {
				if s == grid[row][reel] {
					idx = i
					break
				}
			}
			require.NotEqual(t, -1, idx, "unknown symbol %q", grid[row][reel])
			rolls = append(rolls, rollFor(extWeights, idx))
		}
	}
	return rolls
}

func TestResolveExtendedSlots_WildRunWithBonus(t *testing.T) {
	// Middle row is wild-cherry-cherry-cherry-wild: a five-run big win whose
	// two wilds double the line multiplier. No other line reaches three.
	grid := [extRows][extReels]string{
		{"🍊", "🍋", "🍊", "🍇", "🍉"},
		{SymbolWild, "🍒", "🍒", "🍒", SymbolWild},
		{"🍋", "🍊", "🍇", "🍉", "💎"},
	}

	outcome := ResolveExtendedSlots(&stubRand{ints: extRolls(t, grid)}, testPaytable())

	require.True(t, outcome.Won)
	detail := outcome.Detail.(ExtendedSlotsDetail)
	require.Len(t, detail.WinLines, 1)

	line := detail.WinLines[0]
	assert.Equal(t, "middle row", line.Name)
	assert.Equal(t, "🍒", line.Symbol)
	assert.Equal(t, 5, line.Count)
	assert.Equal(t, 2, line.Wilds)
	assert.Equal(t, ExtWinBigWin, line.Kind)
	// 25 big-win base doubled by the two-wild bonus
	assert.True(t, decimal.NewFromInt(50).Equal(line.Multiplier))
	assert.True(t, decimal.NewFromInt(50).Equal(outcome.PayoutMultiplier))
}

func TestResolveExtendedSlots_MegaJackpot(t *testing.T) {
	grid := [extRows][extReels]string{
		{"7️⃣", "7️⃣", "7️⃣", "7️⃣", "7️⃣"},
		{"🍋", "🍊", "🍇", "🍉", "💎"},
		{"🍊", "🍇", "🍉", "💎", "🎰"},
	}

	outcome := ResolveExtendedSlots(&stubRand{ints: extRolls(t, grid)}, testPaytable())

	require.True(t, outcome.Won)
	detail := outcome.Detail.(ExtendedSlotsDetail)
	require.NotEmpty(t, detail.WinLines)
	assert.Equal(t, ExtWinMegaJackpot, detail.WinLines[0].Kind)
}

func TestResolveExtendedSlots_ScatterOnlyStillPays(t *testing.T) {
	// Three scatters, no winning payline: free spins alone make the spin a win.
	grid := [extRows][extReels]string{
		{SymbolScatter, "🍋", "🍊", "🍇", "🍉"},
		{"🍒", "🍋", SymbolScatter, "🍇", "💎"},
		{"🎰", "💰", "🍒", "🍋", SymbolScatter},
	}

	outcome := ResolveExtendedSlots(&stubRand{ints: extRolls(t, grid)}, testPaytable())

	require.True(t, outcome.Won)
	detail := outcome.Detail.(ExtendedSlotsDetail)
	assert.Empty(t, detail.WinLines)
	assert.Equal(t, 3, detail.ScatterCount)
	assert.Equal(t, 6, detail.FreeSpins)
	assert.True(t, decimal.NewFromFloat(1.5).Equal(detail.ScatterMultiplier))
	// 6 free spins at half a bet each
	assert.True(t, decimal.NewFromInt(3).Equal(outcome.PayoutMultiplier))
}

func TestResolveExtendedSlots_Loss(t *testing.T) {
	grid := [extRows][extReels]string{
		{"🍒", "🍋", "🍊", "🍇", "🍉"},
		{"💎", "🎰", "💰", "🍒", "🍋"},
		{"🍊", "🍇", "🍉", "💎", "🎰"},
	}

	outcome := ResolveExtendedSlots(&stubRand{ints: extRolls(t, grid)}, testPaytable())

	assert.False(t, outcome.Won)
	assert.True(t, outcome.PayoutMultiplier.IsZero())
}

func TestEvaluatePayline_TiePrefersJackpot(t *testing.T) {
	// Two sevens and two cherries plus a wild tie at run three; the jackpot
	// symbol takes the line.
	line := [extReels]string{"🍒", "7️⃣", "🍒", "7️⃣", SymbolWild}

	win, ok := evaluatePayline(line, testPaytable())

	require.True(t, ok)
	assert.Equal(t, "7️⃣", win.Symbol)
	assert.Equal(t, 3, win.Count)
	assert.Equal(t, ExtWinJackpot, win.Kind)
}

func TestEvaluatePayline_PureWilds(t *testing.T) {
	line := [extReels]string{SymbolWild, SymbolWild, SymbolWild, SymbolScatter, SymbolScatter}

	win, ok := evaluatePayline(line, testPaytable())

	require.True(t, ok)
	assert.Equal(t, SymbolWild, win.Symbol)
	assert.Equal(t, 3, win.Count)
}
