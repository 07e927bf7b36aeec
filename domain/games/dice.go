package games

import "fortuna/domain/entities"

// DiceDetail records a resolved dice roll. Target is nil for the default
// high-roll game.
type DiceDetail struct {
	Target *int `json:"target,omitempty"`
	Roll   int  `json:"roll"`
	Win    bool `json:"win"`
}

func (DiceDetail) Game() entities.GameType { return entities.GameTypeDice }

// ResolveDice draws a uniform roll in [1,6]. Without a target the player wins
// on 4-6 at the default multiplier; with a target in [1,6] only an exact match
// wins, at the higher multiplier.
func ResolveDice(r Rand, pt Paytable, target *int) Outcome {
	roll := r.Intn(6) + 1

	var win bool
	var multiplier = pt.DiceDefault
	if target == nil {
		win = roll >= 4
	} else {
		win = roll == *target
		multiplier = pt.DiceExact
	}

	detail := DiceDetail{Target: target, Roll: roll, Win: win}
	if !win {
		return lost(detail)
	}
	return won(multiplier, detail)
}
