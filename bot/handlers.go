package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fortuna/domain/entities"
	"fortuna/domain/games"
	"fortuna/domain/interfaces"
	"fortuna/domain/services"

	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"
)

// suspenseDelay is the pause between announcing a game and revealing its
// outcome.
const suspenseDelay = 2 * time.Second

// withUow runs fn inside one transaction, committing on success.
func (b *Bot) withUow(ctx context.Context, fn func(uow interfaces.UnitOfWork) error) error {
	uow := b.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := fn(uow); err != nil {
		return err
	}
	return uow.Commit()
}

func (b *Bot) ledgerService(uow interfaces.UnitOfWork) interfaces.LedgerService {
	return services.NewLedgerService(uow.AccountRepository(), uow.LedgerRepository(), b.eventPublisher)
}

func (b *Bot) gameService(uow interfaces.UnitOfWork) interfaces.GameService {
	ledger := b.ledgerService(uow)
	settlement := services.NewSettlementService(ledger, uow.GameSessionRepository(), uow.StatsRepository(), b.eventPublisher)
	return services.NewGameService(ledger, settlement, games.NewRand(), b.paytable())
}

func (b *Bot) economyService(uow interfaces.UnitOfWork) interfaces.EconomyService {
	return services.NewEconomyService(b.ledgerService(uow), uow.AccountRepository(), uow.LedgerRepository(), games.NewRand())
}

func (b *Bot) miningService(uow interfaces.UnitOfWork) interfaces.MiningService {
	return services.NewMiningService(b.ledgerService(uow), uow.AccountRepository(), uow.MiningRunRepository(), uow.StatsRepository(), b.eventPublisher, games.NewRand())
}

func authorID(m *discordgo.MessageCreate) (int64, error) {
	id, err := strconv.ParseInt(m.Author.ID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse author ID %q: %w", m.Author.ID, err)
	}
	return id, nil
}

func (b *Bot) handleBalance(ctx context.Context, m *discordgo.MessageCreate, args []string) error {
	discordID, err := authorID(m)
	if err != nil {
		return err
	}

	var account *entities.Account
	err = b.withUow(ctx, func(uow interfaces.UnitOfWork) error {
		account, err = b.ledgerService(uow).GetOrCreateAccount(ctx, discordID, m.Author.Username)
		return err
	})
	if err != nil {
		return err
	}

	b.reply(m, fmt.Sprintf("💰 %s, your balance is **%s** coins.", m.Author.Username, formatAmount(account.Balance)))
	return nil
}

func (b *Bot) handleDaily(ctx context.Context, m *discordgo.MessageCreate, args []string) error {
	discordID, err := authorID(m)
	if err != nil {
		return err
	}

	var result *interfaces.DailyClaimResult
	err = b.withUow(ctx, func(uow interfaces.UnitOfWork) error {
		result, err = b.economyService(uow).ClaimDaily(ctx, discordID, m.Author.Username)
		return err
	})
	if err != nil {
		return err
	}

	b.reply(m, fmt.Sprintf("🎁 Daily reward claimed: **%s** coins! New balance: **%s**.",
		formatAmount(result.Amount), formatAmount(result.NewBalance)))
	return nil
}

func (b *Bot) handleTransfer(ctx context.Context, m *discordgo.MessageCreate, args []string) error {
	if len(args) < 2 {
		return entities.NewValidationError("usage: %stransfer @user <amount>", b.prefix)
	}

	toIDStr, ok := parseMention(args[0])
	if !ok {
		return entities.NewValidationError("mention the recipient, e.g. %stransfer @user 50", b.prefix)
	}
	toID, err := strconv.ParseInt(toIDStr, 10, 64)
	if err != nil {
		return entities.NewValidationError("invalid recipient")
	}

	amount, err := parseAmount(args[1])
	if err != nil {
		return entities.NewValidationError("invalid amount %q", args[1])
	}

	fromID, err := authorID(m)
	if err != nil {
		return err
	}

	toName := toIDStr
	if len(m.Mentions) > 0 {
		toName = m.Mentions[0].Username
	}

	var result *interfaces.TransferResult
	err = b.withUow(ctx, func(uow interfaces.UnitOfWork) error {
		result, err = b.economyService(uow).Transfer(ctx, fromID, m.Author.Username, toID, toName, amount)
		return err
	})
	if err != nil {
		return err
	}

	b.reply(m, fmt.Sprintf("💸 Sent **%s** coins to %s. Your balance: **%s**.",
		formatAmount(result.Amount), toName, formatAmount(result.SenderNewBalance)))
	return nil
}

func (b *Bot) handleLeaderboard(ctx context.Context, m *discordgo.MessageCreate, args []string) error {
	limit := 10
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 0 && n <= 25 {
			limit = n
		}
	}

	var accounts []*entities.Account
	err := b.withUow(ctx, func(uow interfaces.UnitOfWork) error {
		var err error
		accounts, err = b.economyService(uow).Leaderboard(ctx, limit)
		return err
	})
	if err != nil {
		return err
	}

	if len(accounts) == 0 {
		b.reply(m, "No accounts yet.")
		return nil
	}

	var sb strings.Builder
	medals := []string{"🥇", "🥈", "🥉"}
	for i, account := range accounts {
		rank := fmt.Sprintf("%d.", i+1)
		if i < len(medals) {
			rank = medals[i]
		}
		fmt.Fprintf(&sb, "%s **%s** - %s coins\n", rank, account.Username, formatAmount(account.Balance))
	}

	b.replyEmbed(m, &discordgo.MessageEmbed{
		Title:       "🏆 Leaderboard",
		Description: sb.String(),
		Color:       0xFFD700,
	})
	return nil
}

func (b *Bot) handleTransactions(ctx context.Context, m *discordgo.MessageCreate, args []string) error {
	discordID, err := authorID(m)
	if err != nil {
		return err
	}

	var entries []*entities.LedgerEntry
	err = b.withUow(ctx, func(uow interfaces.UnitOfWork) error {
		entries, err = b.economyService(uow).History(ctx, discordID, 10)
		return err
	})
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		b.reply(m, "No transactions yet.")
		return nil
	}

	var sb strings.Builder
	for _, e := range entries {
		sign := "+"
		if e.IsDebit() {
			sign = ""
		}
		fmt.Fprintf(&sb, "`%s` %s%s - %s\n",
			e.CreatedAt.Format("Jan 02 15:04"), sign, formatAmount(e.Amount), e.Description)
	}

	b.replyEmbed(m, &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("📜 Recent transactions for %s", m.Author.Username),
		Description: sb.String(),
		Color:       0x3498DB,
	})
	return nil
}

// playWager wraps the shared game command flow: announce, pause, run the
// wager in a transaction, render.
func (b *Bot) playWager(ctx context.Context, m *discordgo.MessageCreate, teaser string, play func(svc interfaces.GameService, discordID int64) (*entities.GameResult, error)) error {
	discordID, err := authorID(m)
	if err != nil {
		return err
	}

	b.reply(m, teaser)
	time.Sleep(suspenseDelay)

	var result *entities.GameResult
	err = b.withUow(ctx, func(uow interfaces.UnitOfWork) error {
		result, err = play(b.gameService(uow), discordID)
		return err
	})
	if err != nil {
		return err
	}

	b.replyEmbed(m, renderGameResult(m.Author.Username, result))
	return nil
}

func (b *Bot) handleCoinFlip(ctx context.Context, m *discordgo.MessageCreate, args []string) error {
	if len(args) < 2 {
		return entities.NewValidationError("usage: %scoinflip <heads|tails> <amount>", b.prefix)
	}
	choice := args[0]
	amount, err := parseAmount(args[1])
	if err != nil {
		return entities.NewValidationError("invalid amount %q", args[1])
	}

	return b.playWager(ctx, m, "🪙 Flipping the coin...", func(svc interfaces.GameService, discordID int64) (*entities.GameResult, error) {
		return svc.PlayCoinFlip(ctx, discordID, m.Author.Username, amount, choice)
	})
}

func (b *Bot) handleDice(ctx context.Context, m *discordgo.MessageCreate, args []string) error {
	if len(args) < 1 {
		return entities.NewValidationError("usage: %sdice <amount> [target]", b.prefix)
	}
	amount, err := parseAmount(args[0])
	if err != nil {
		return entities.NewValidationError("invalid amount %q", args[0])
	}

	var target *int
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return entities.NewValidationError("dice target must be a number between 1 and 6")
		}
		target = &n
	}

	return b.playWager(ctx, m, "🎲 Rolling the dice...", func(svc interfaces.GameService, discordID int64) (*entities.GameResult, error) {
		return svc.PlayDice(ctx, discordID, m.Author.Username, amount, target)
	})
}

func (b *Bot) handleSlots(ctx context.Context, m *discordgo.MessageCreate, args []string) error {
	if len(args) < 1 {
		return entities.NewValidationError("usage: %sslots <amount>", b.prefix)
	}
	amount, err := parseAmount(args[0])
	if err != nil {
		return entities.NewValidationError("invalid amount %q", args[0])
	}

	return b.playWager(ctx, m, "🎰 Spinning the reels...", func(svc interfaces.GameService, discordID int64) (*entities.GameResult, error) {
		return svc.PlaySlots(ctx, discordID, m.Author.Username, amount)
	})
}

func (b *Bot) handleBigSlots(ctx context.Context, m *discordgo.MessageCreate, args []string) error {
	if len(args) < 1 {
		return entities.NewValidationError("usage: %sbigslots <amount>", b.prefix)
	}
	amount, err := parseAmount(args[0])
	if err != nil {
		return entities.NewValidationError("invalid amount %q", args[0])
	}

	return b.playWager(ctx, m, "🎰 Spinning the big reels...", func(svc interfaces.GameService, discordID int64) (*entities.GameResult, error) {
		return svc.PlayExtendedSlots(ctx, discordID, m.Author.Username, amount)
	})
}

func (b *Bot) handleRoulette(ctx context.Context, m *discordgo.MessageCreate, args []string) error {
	if len(args) < 2 {
		return entities.NewValidationError("usage: %sroulette <red|black|even|odd|high|low> <amount>", b.prefix)
	}
	betType := strings.ToLower(args[0])
	amount, err := parseAmount(args[1])
	if err != nil {
		return entities.NewValidationError("invalid amount %q", args[1])
	}

	return b.playWager(ctx, m, "🎡 Spinning the wheel...", func(svc interfaces.GameService, discordID int64) (*entities.GameResult, error) {
		return svc.PlayRoulette(ctx, discordID, m.Author.Username, amount, betType)
	})
}

func (b *Bot) handleMine(ctx context.Context, m *discordgo.MessageCreate, args []string) error {
	discordID, err := authorID(m)
	if err != nil {
		return err
	}

	// With no argument, report status of any active session
	if len(args) == 0 {
		if session := b.scheduler.SessionStatus(discordID); session != nil {
			b.reply(m, fmt.Sprintf("⛏️ Mining in progress, %s remaining.", formatDuration(session.Remaining(time.Now().UTC()))))
			return nil
		}
	}

	var durationMinutes *int
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return entities.NewValidationError("duration must be a number of minutes")
		}
		durationMinutes = &n
	}

	session, err := b.scheduler.StartSession(ctx, discordID, m.Author.Username, durationMinutes)
	if err != nil {
		return err
	}

	b.reply(m, fmt.Sprintf("⛏️ Mining started for %s. You'll get a DM when it's done!", formatDuration(session.Duration)))
	return nil
}

func (b *Bot) handleMiner(ctx context.Context, m *discordgo.MessageCreate, args []string) error {
	discordID, err := authorID(m)
	if err != nil {
		return err
	}

	var profile *entities.MinerProfile
	err = b.withUow(ctx, func(uow interfaces.UnitOfWork) error {
		profile, err = b.miningService(uow).Profile(ctx, discordID, m.Author.Username)
		return err
	})
	if err != nil {
		return err
	}

	b.replyEmbed(m, &discordgo.MessageEmbed{
		Title: fmt.Sprintf("⛏️ Miner profile for %s", m.Author.Username),
		Color: 0x95A5A6,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Level", Value: strconv.Itoa(profile.Level), Inline: true},
			{Name: "Power", Value: profile.Power.StringFixed(2), Inline: true},
			{Name: "Multiplier", Value: profile.Multiplier.StringFixed(2), Inline: true},
			{Name: "Total runs", Value: strconv.FormatInt(profile.TotalRuns, 10), Inline: true},
			{Name: "Total mined", Value: formatAmount(profile.TotalMined), Inline: true},
			{Name: "Next upgrade", Value: formatAmount(profile.NextUpgradeCost), Inline: true},
		},
	})
	return nil
}

func (b *Bot) handleUpgradeMiner(ctx context.Context, m *discordgo.MessageCreate, args []string) error {
	discordID, err := authorID(m)
	if err != nil {
		return err
	}

	var result *entities.UpgradeResult
	err = b.withUow(ctx, func(uow interfaces.UnitOfWork) error {
		result, err = b.miningService(uow).UpgradeEquipment(ctx, discordID, m.Author.Username)
		return err
	})
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("⚙️ Upgraded to level **%d** for %s coins! Power is now %s.",
		result.NewLevel, formatAmount(result.Cost), result.NewPower.StringFixed(2))
	if result.BonusReceived {
		msg += fmt.Sprintf("\n✨ Bonus! Your multiplier went up by %s to %s.",
			result.MultiplierBonus.StringFixed(2), result.NewMultiplier.StringFixed(2))
	}
	msg += fmt.Sprintf("\nBalance: **%s**", formatAmount(result.NewBalance))
	b.reply(m, msg)
	return nil
}

func (b *Bot) handleStats(ctx context.Context, m *discordgo.MessageCreate, args []string) error {
	var stats *entities.BotStats
	var userCount int64
	var totalCurrency decimal.Decimal
	var richest []*entities.Account
	err := b.withUow(ctx, func(uow interfaces.UnitOfWork) error {
		var err error
		if stats, err = uow.StatsRepository().Get(ctx); err != nil {
			return err
		}
		if userCount, totalCurrency, err = uow.AccountRepository().Census(ctx); err != nil {
			return err
		}
		richest, err = uow.AccountRepository().Top(ctx, 1)
		return err
	})
	if err != nil {
		return err
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "Total bets", Value: strconv.FormatInt(stats.TotalBets, 10), Inline: true},
		{Name: "Total wagered", Value: formatAmount(stats.TotalWagered), Inline: true},
		{Name: "Total paid out", Value: formatAmount(stats.TotalPayout), Inline: true},
		{Name: "Total mined", Value: formatAmount(stats.TotalMined), Inline: true},
		{Name: "Payback ratio", Value: stats.PaybackRatio().StringFixed(4), Inline: true},
		{Name: "Players", Value: strconv.FormatInt(userCount, 10), Inline: true},
		{Name: "Coins in circulation", Value: formatAmount(totalCurrency), Inline: true},
	}
	if len(richest) > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Richest player",
			Value:  fmt.Sprintf("%s (%s)", richest[0].Username, formatAmount(richest[0].Balance)),
			Inline: true,
		})
	}

	b.replyEmbed(m, &discordgo.MessageEmbed{
		Title:  "📊 Casino statistics",
		Color:  0x9B59B6,
		Fields: fields,
	})
	return nil
}

func (b *Bot) handleHelp(ctx context.Context, m *discordgo.MessageCreate, args []string) error {
	p := b.prefix
	desc := fmt.Sprintf(`**Economy**
%sbalance - show your balance
%sdaily - claim your daily reward
%stransfer @user <amount> - send coins
%sleaderboard [n] - richest players
%stransactions - your recent history

**Games**
%scoinflip <heads|tails> <amount>
%sdice <amount> [target 1-6]
%sslots <amount>
%sbigslots <amount>
%sroulette <red|black|even|odd|high|low> <amount>

**Mining**
%smine [minutes] - start mining (or check progress)
%sminer - your miner profile
%supgrademiner - upgrade your equipment

**Misc**
%sstats - casino-wide statistics

**Admin** (requires Administrator)
%saddbalance @user <amount>
%sremovebalance @user <amount>
%sresetbalance @user
%sresetmining @user`,
		p, p, p, p, p, p, p, p, p, p, p, p, p, p, p, p, p, p)

	b.replyEmbed(m, &discordgo.MessageEmbed{
		Title:       "🎰 Commands",
		Description: desc,
		Color:       0x2ECC71,
	})
	return nil
}
