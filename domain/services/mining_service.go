package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"fortuna/config"
	"fortuna/domain/entities"
	"fortuna/domain/events"
	"fortuna/domain/games"
	"fortuna/domain/interfaces"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type miningService struct {
	ledger         interfaces.LedgerService
	accountRepo    interfaces.AccountRepository
	runRepo        interfaces.MiningRunRepository
	statsRepo      interfaces.StatsRepository
	eventPublisher interfaces.EventPublisher
	rng            games.Rand
}

// NewMiningService creates a new mining service
func NewMiningService(ledger interfaces.LedgerService, accountRepo interfaces.AccountRepository, runRepo interfaces.MiningRunRepository, statsRepo interfaces.StatsRepository, eventPublisher interfaces.EventPublisher, rng games.Rand) interfaces.MiningService {
	return &miningService{
		ledger:         ledger,
		accountRepo:    accountRepo,
		runRepo:        runRepo,
		statsRepo:      statsRepo,
		eventPublisher: eventPublisher,
		rng:            rng,
	}
}

// UpgradeCost returns the price of moving from the given level to the next:
// the base cost grows geometrically with each level already purchased.
func UpgradeCost(level int) decimal.Decimal {
	cfg := config.Get()
	cost := cfg.MiningBaseUpgradeCost * math.Pow(cfg.MiningUpgradeCostMultiplier, float64(level-1))
	return decimal.NewFromFloat(cost).Round(2)
}

// CompleteSession settles an elapsed mining session against the ledger.
// Earnings scale with duration and the equipment snapshot taken when the
// session started, with a ±10% variance roll and a 5% chance of doubling.
func (s *miningService) CompleteSession(ctx context.Context, session *entities.MiningSession) (*entities.MiningCompletion, error) {
	minutes := session.Duration.Seconds() / 60
	base := minutes * miningFloat(session.MiningPower) * miningFloat(session.MiningMultiplier)

	variance := 0.9 + s.rng.Float64()*0.2
	earned := base * variance

	bonus := s.rng.Float64() < 0.05
	if bonus {
		earned *= 2
	}

	amount := decimal.NewFromFloat(earned).Round(2)
	if !amount.IsPositive() {
		amount = decimal.NewFromFloat(0.01)
	}

	_, newBalance, err := s.ledger.ApplyEntry(ctx, session.DiscordID, amount, entities.EntryCategoryMining,
		fmt.Sprintf("mining run (%s)", session.Duration))
	if err != nil {
		return nil, fmt.Errorf("failed to credit mining earnings: %w", err)
	}

	run := &entities.MiningRun{
		DiscordID:       session.DiscordID,
		DurationSeconds: int(session.Duration.Seconds()),
		AmountEarned:    amount,
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to record mining run: %w", err)
	}

	if err := s.accountRepo.SetMiningCompleted(ctx, session.DiscordID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to stamp mining completion: %w", err)
	}

	if err := s.statsRepo.RecordMined(ctx, amount); err != nil {
		return nil, fmt.Errorf("failed to record mining statistics: %w", err)
	}

	if err := s.eventPublisher.Publish(events.MiningCompletedEvent{
		DiscordID:       session.DiscordID,
		DurationSeconds: run.DurationSeconds,
		AmountEarned:    amount,
		Bonus:           bonus,
	}); err != nil {
		log.WithError(err).Warn("failed to publish mining completed event")
	}

	return &entities.MiningCompletion{
		DiscordID:        session.DiscordID,
		Duration:         session.Duration,
		MiningPower:      session.MiningPower,
		MiningMultiplier: session.MiningMultiplier,
		AmountEarned:     amount,
		Bonus:            bonus,
		NewBalance:       newBalance,
	}, nil
}

func (s *miningService) UpgradeEquipment(ctx context.Context, discordID int64, username string) (*entities.UpgradeResult, error) {
	account, err := s.ledger.GetOrCreateAccount(ctx, discordID, username)
	if err != nil {
		return nil, err
	}

	cost := UpgradeCost(account.MiningLevel)
	if !account.CanAfford(cost) {
		return nil, &entities.InsufficientFundsError{
			Required:  cost,
			Available: account.Balance,
		}
	}

	_, newBalance, err := s.ledger.ApplyEntry(ctx, discordID, cost.Neg(), entities.EntryCategoryWithdrawal,
		fmt.Sprintf("mining upgrade to level %d", account.MiningLevel+1))
	if err != nil {
		return nil, err
	}

	cfg := config.Get()
	newLevel := account.MiningLevel + 1
	newPower := account.MiningPower.Add(decimal.NewFromFloat(cfg.MiningPowerIncrease))

	// 5% of upgrades also grant a permanent multiplier bump
	newMultiplier := account.MiningMultiplier
	multiplierBonus := decimal.Zero
	bonusReceived := s.rng.Float64() < 0.05
	if bonusReceived {
		multiplierBonus = decimal.NewFromFloat(0.1 + s.rng.Float64()*0.2).Round(2)
		newMultiplier = newMultiplier.Add(multiplierBonus)
	}

	if err := s.accountRepo.ApplyUpgrade(ctx, discordID, newLevel, newPower, newMultiplier); err != nil {
		return nil, fmt.Errorf("failed to apply upgrade: %w", err)
	}

	log.WithFields(log.Fields{
		"discord_id": discordID,
		"level":      newLevel,
		"cost":       cost,
	}).Info("mining equipment upgraded")

	return &entities.UpgradeResult{
		NewLevel:        newLevel,
		Cost:            cost,
		NewPower:        newPower,
		NewMultiplier:   newMultiplier,
		MultiplierBonus: multiplierBonus,
		BonusReceived:   bonusReceived,
		NewBalance:      newBalance,
	}, nil
}

func (s *miningService) Profile(ctx context.Context, discordID int64, username string) (*entities.MinerProfile, error) {
	account, err := s.ledger.GetOrCreateAccount(ctx, discordID, username)
	if err != nil {
		return nil, err
	}

	totalRuns, totalMined, err := s.runRepo.TotalsByAccount(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get mining totals: %w", err)
	}

	return &entities.MinerProfile{
		Level:           account.MiningLevel,
		Power:           account.MiningPower,
		Multiplier:      account.MiningMultiplier,
		LastRunAt:       account.MiningLastAt,
		TotalRuns:       totalRuns,
		TotalMined:      totalMined,
		NextUpgradeCost: UpgradeCost(account.MiningLevel),
	}, nil
}

func miningFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
