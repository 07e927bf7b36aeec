package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fortuna/application"
	"fortuna/config"
	"fortuna/domain/entities"
	"fortuna/domain/interfaces"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Bot manages the Discord session and dispatches prefix commands.
type Bot struct {
	session        *discordgo.Session
	prefix         string
	uowFactory     interfaces.UnitOfWorkFactory
	eventPublisher interfaces.EventPublisher
	scheduler      *application.MiningScheduler

	commands map[string]commandHandler
}

type commandHandler func(ctx context.Context, m *discordgo.MessageCreate, args []string) error

// New creates a new bot instance and opens the gateway connection
func New(token string, uowFactory interfaces.UnitOfWorkFactory, eventPublisher interfaces.EventPublisher, scheduler *application.MiningScheduler) (*Bot, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages | discordgo.IntentsMessageContent

	bot := &Bot{
		session:        dg,
		prefix:         config.Get().CommandPrefix,
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		scheduler:      scheduler,
	}
	bot.registerCommands()

	dg.AddHandler(bot.handleMessageCreate)

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	log.Info("Discord bot connected")
	return bot, nil
}

func (b *Bot) registerCommands() {
	b.commands = map[string]commandHandler{
		"balance":      b.handleBalance,
		"daily":        b.handleDaily,
		"transfer":     b.handleTransfer,
		"leaderboard":  b.handleLeaderboard,
		"transactions": b.handleTransactions,
		"coinflip":     b.handleCoinFlip,
		"dice":         b.handleDice,
		"slots":        b.handleSlots,
		"bigslots":     b.handleBigSlots,
		"roulette":     b.handleRoulette,
		"mine":         b.handleMine,
		"miner":        b.handleMiner,
		"upgrademiner": b.handleUpgradeMiner,
		"stats":        b.handleStats,
		"help":         b.handleHelp,

		// Admin commands, gated on the Administrator permission
		"addbalance":    b.handleAddBalance,
		"removebalance": b.handleRemoveBalance,
		"resetbalance":  b.handleResetBalance,
		"resetmining":   b.handleResetMining,
	}
}

// handleMessageCreate parses prefix commands and dispatches to handlers
func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if !strings.HasPrefix(m.Content, b.prefix) {
		return
	}

	fields := strings.Fields(strings.TrimPrefix(m.Content, b.prefix))
	if len(fields) == 0 {
		return
	}
	name := strings.ToLower(fields[0])
	handler, ok := b.commands[name]
	if !ok {
		return
	}

	ctx := context.Background()
	if err := handler(ctx, m, fields[1:]); err != nil {
		b.replyError(m, err)
	}
}

// userFacingError maps domain errors to user-facing messages. Matching uses
// errors.As so wrapped domain errors still reach the right branch.
func userFacingError(err error) (string, bool) {
	var validationErr *entities.ValidationError
	var fundsErr *entities.InsufficientFundsError
	var cooldownErr *entities.OnCooldownError
	var miningErr *entities.AlreadyMiningError

	switch {
	case errors.As(err, &validationErr):
		return fmt.Sprintf("❌ %s", validationErr.Reason), true
	case errors.As(err, &fundsErr):
		return fmt.Sprintf("❌ Insufficient funds: you need %s but only have %s.", formatAmount(fundsErr.Required), formatAmount(fundsErr.Available)), true
	case errors.As(err, &cooldownErr):
		return fmt.Sprintf("⏳ You're on cooldown. Try again in %s.", formatDuration(cooldownErr.Remaining)), true
	case errors.As(err, &miningErr):
		return fmt.Sprintf("⛏️ You're already mining! %s remaining.", formatDuration(miningErr.Remaining)), true
	}
	return "", false
}

// replyError turns domain errors into user-facing messages; anything
// unexpected is logged and reported generically.
func (b *Bot) replyError(m *discordgo.MessageCreate, err error) {
	msg, ok := userFacingError(err)
	if !ok {
		log.WithError(err).WithField("user_id", m.Author.ID).Error("command failed")
		msg = "❌ Something went wrong, please try again."
	}
	b.reply(m, msg)
}

func (b *Bot) reply(m *discordgo.MessageCreate, content string) {
	if _, err := b.session.ChannelMessageSend(m.ChannelID, content); err != nil {
		log.WithError(err).Error("failed to send message")
	}
}

func (b *Bot) replyEmbed(m *discordgo.MessageCreate, embed *discordgo.MessageEmbed) {
	if _, err := b.session.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		log.WithError(err).Error("failed to send embed")
	}
}

// NotifyMiningComplete delivers a completed mining session summary by DM.
// Implements interfaces.Notifier.
func (b *Bot) NotifyMiningComplete(ctx context.Context, completion *entities.MiningCompletion) error {
	channel, err := b.session.UserChannelCreate(fmt.Sprintf("%d", completion.DiscordID))
	if err != nil {
		return fmt.Errorf("failed to create DM channel: %w", err)
	}

	msg := fmt.Sprintf("⛏️ Mining complete! You earned **%s** coins in %s.",
		formatAmount(completion.AmountEarned), formatDuration(completion.Duration))
	if completion.Bonus {
		msg += "\n🍀 Lucky strike! Your earnings were doubled."
	}
	msg += fmt.Sprintf("\nNew balance: **%s**", formatAmount(completion.NewBalance))

	if _, err := b.session.ChannelMessageSend(channel.ID, msg); err != nil {
		return fmt.Errorf("failed to send DM: %w", err)
	}
	return nil
}

// Close shuts down the Discord connection
func (b *Bot) Close() error {
	return b.session.Close()
}
