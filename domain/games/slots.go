package games

import "fortuna/domain/entities"

// Basic three-reel slot machine. Symbols are ordered from most to least
// common; weights strictly decrease with symbol value.
var (
	slotSymbols = []string{"🍒", "🍋", "🍊", "🍇", "🍉", "💎", "7️⃣"}
	slotWeights = []int{30, 25, 20, 15, 10, 5, 2}
)

const (
	slotCherry  = "🍒"
	slotDiamond = "💎"
	slotJackpot = "7️⃣"
)

// SlotsWinKind names the tier a basic slots spin landed on.
type SlotsWinKind string

const (
	SlotsWinJackpot      SlotsWinKind = "jackpot"
	SlotsWinDiamond      SlotsWinKind = "diamond_line"
	SlotsWinThreeOfAKind SlotsWinKind = "three_of_a_kind"
	SlotsWinCherries     SlotsWinKind = "two_plus_cherries"
	SlotsWinNone         SlotsWinKind = "no_match"
)

// SlotsDetail records a resolved basic slots spin.
type SlotsDetail struct {
	Reels   [3]string    `json:"reels"`
	WinKind SlotsWinKind `json:"win_kind"`
	Win     bool         `json:"win"`
}

func (SlotsDetail) Game() entities.GameType { return entities.GameTypeSlots }

// ResolveSlots spins three independently weighted reels. Win rules fire in
// priority order: triple jackpot, triple diamond, any other triple, then two
// or more cherries anywhere.
func ResolveSlots(r Rand, pt Paytable) Outcome {
	var reels [3]string
	for i := range reels {
		reels[i] = slotSymbols[WeightedPick(r, slotWeights)]
	}

	cherries := 0
	for _, s := range reels {
		if s == slotCherry {
			cherries++
		}
	}

	detail := SlotsDetail{Reels: reels, WinKind: SlotsWinNone}
	switch {
	case reels[0] == reels[1] && reels[1] == reels[2]:
		switch reels[0] {
		case slotJackpot:
			detail.WinKind = SlotsWinJackpot
			detail.Win = true
			return won(pt.SlotsJackpot, detail)
		case slotDiamond:
			detail.WinKind = SlotsWinDiamond
			detail.Win = true
			return won(pt.SlotsDiamond, detail)
		default:
			detail.WinKind = SlotsWinThreeOfAKind
			detail.Win = true
			return won(pt.SlotsMatch, detail)
		}
	case cherries >= 2:
		detail.WinKind = SlotsWinCherries
		detail.Win = true
		return won(pt.SlotsCherry, detail)
	default:
		return lost(detail)
	}
}
