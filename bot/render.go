package bot

import (
	"fmt"
	"strings"

	"fortuna/config"
	"fortuna/domain/entities"
	"fortuna/domain/games"

	"github.com/bwmarrin/discordgo"
)

const (
	colorWin  = 0x2ECC71
	colorLoss = 0xE74C3C
)

func (b *Bot) paytable() games.Paytable {
	return config.Get().Paytable()
}

// renderGameResult builds the outcome embed for any settled wager.
func renderGameResult(username string, result *entities.GameResult) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       gameTitle(result.GameType),
		Description: describeDetail(result.Detail),
		Color:       colorLoss,
	}

	outcome := fmt.Sprintf("❌ %s lost **%s** coins.", username, formatAmount(result.BetAmount))
	if result.Won {
		embed.Color = colorWin
		outcome = fmt.Sprintf("🎉 %s won **%s** coins! (%sx)", username, formatAmount(result.Payout), result.PayoutMultiplier.String())
	}

	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Result", Value: outcome},
		{Name: "Balance", Value: formatAmount(result.NewBalance), Inline: true},
	}
	return embed
}

func gameTitle(gameType entities.GameType) string {
	switch gameType {
	case entities.GameTypeCoinFlip:
		return "🪙 Coin Flip"
	case entities.GameTypeDice:
		return "🎲 Dice"
	case entities.GameTypeSlots:
		return "🎰 Slots"
	case entities.GameTypeSlotsExtended:
		return "🎰 Big Slots"
	case entities.GameTypeRoulette:
		return "🎡 Roulette"
	default:
		return string(gameType)
	}
}

func describeDetail(detail entities.GameDetail) string {
	switch d := detail.(type) {
	case games.CoinFlipDetail:
		return fmt.Sprintf("You called **%s** - the coin landed on **%s**.", d.Choice, d.Result)
	case games.DiceDetail:
		if d.Target != nil {
			return fmt.Sprintf("You called **%d** - the die rolled **%d**.", *d.Target, d.Roll)
		}
		return fmt.Sprintf("The die rolled **%d** (4+ wins).", d.Roll)
	case games.SlotsDetail:
		return fmt.Sprintf("%s\n%s", strings.Join(d.Reels[:], " | "), slotsWinLabel(d.WinKind))
	case games.ExtendedSlotsDetail:
		return describeExtendedSlots(d)
	case games.RouletteDetail:
		return fmt.Sprintf("The ball landed on **%d** (%s). You bet **%s**.", d.Number, d.Color, d.BetType)
	default:
		return ""
	}
}

func slotsWinLabel(kind games.SlotsWinKind) string {
	switch kind {
	case games.SlotsWinJackpot:
		return "💥 JACKPOT!"
	case games.SlotsWinDiamond:
		return "💎 Diamond line!"
	case games.SlotsWinThreeOfAKind:
		return "Three of a kind!"
	case games.SlotsWinCherries:
		return "🍒 Cherries!"
	default:
		return "No match."
	}
}

func describeExtendedSlots(d games.ExtendedSlotsDetail) string {
	var sb strings.Builder
	for _, row := range d.Grid {
		sb.WriteString(strings.Join(row[:], " "))
		sb.WriteString("\n")
	}
	if len(d.WinLines) == 0 && d.ScatterCount < 3 {
		sb.WriteString("No winning lines.")
		return sb.String()
	}
	for _, line := range d.WinLines {
		fmt.Fprintf(&sb, "**%s**: %d× %s (%sx)\n", line.Name, line.Count, line.Symbol, line.Multiplier.String())
	}
	if d.ScatterCount >= 3 {
		fmt.Fprintf(&sb, "🌟 %d scatters - %d free spins!\n", d.ScatterCount, d.FreeSpins)
	}
	return sb.String()
}
