package services

import (
	"context"
	"fmt"
	"time"

	"fortuna/config"
	"fortuna/domain/entities"
	"fortuna/domain/games"
	"fortuna/domain/interfaces"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const dailyCooldownWindow = 24 * time.Hour

type economyService struct {
	ledger      interfaces.LedgerService
	accountRepo interfaces.AccountRepository
	ledgerRepo  interfaces.LedgerRepository
	rng         games.Rand
}

// NewEconomyService creates a new economy service
func NewEconomyService(ledger interfaces.LedgerService, accountRepo interfaces.AccountRepository, ledgerRepo interfaces.LedgerRepository, rng games.Rand) interfaces.EconomyService {
	return &economyService{
		ledger:      ledger,
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		rng:         rng,
	}
}

func (s *economyService) ClaimDaily(ctx context.Context, discordID int64, username string) (*interfaces.DailyClaimResult, error) {
	account, err := s.ledger.GetOrCreateAccount(ctx, discordID, username)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if remaining := account.DailyCooldownRemaining(now, dailyCooldownWindow); remaining > 0 {
		return nil, &entities.OnCooldownError{Remaining: remaining}
	}

	cfg := config.Get()
	amount := decimal.NewFromInt(int64(cfg.DailyRewardBase + s.rng.Intn(cfg.DailyRewardBonus+1)))

	_, newBalance, err := s.ledger.ApplyEntry(ctx, discordID, amount, entities.EntryCategoryDaily, "daily reward")
	if err != nil {
		return nil, fmt.Errorf("failed to credit daily reward: %w", err)
	}

	if err := s.accountRepo.SetDailyClaimed(ctx, discordID, now); err != nil {
		return nil, fmt.Errorf("failed to stamp daily claim: %w", err)
	}

	log.WithFields(log.Fields{
		"discord_id": discordID,
		"amount":     amount,
	}).Info("daily reward claimed")

	return &interfaces.DailyClaimResult{
		Amount:     amount,
		NewBalance: newBalance,
	}, nil
}

func (s *economyService) Transfer(ctx context.Context, fromID int64, fromName string, toID int64, toName string, amount decimal.Decimal) (*interfaces.TransferResult, error) {
	if !amount.IsPositive() {
		return nil, entities.NewValidationError("transfer amount must be positive")
	}
	if fromID == toID {
		return nil, entities.NewValidationError("cannot transfer to yourself")
	}

	sender, err := s.ledger.GetOrCreateAccount(ctx, fromID, fromName)
	if err != nil {
		return nil, err
	}
	if !sender.CanAfford(amount) {
		return nil, &entities.InsufficientFundsError{
			Required:  amount,
			Available: sender.Balance,
		}
	}

	if _, err := s.ledger.GetOrCreateAccount(ctx, toID, toName); err != nil {
		return nil, err
	}

	_, senderBalance, err := s.ledger.ApplyEntry(ctx, fromID, amount.Neg(), entities.EntryCategoryWithdrawal,
		fmt.Sprintf("transfer to %s", toName))
	if err != nil {
		return nil, err
	}

	if _, _, err := s.ledger.ApplyEntry(ctx, toID, amount, entities.EntryCategoryDeposit,
		fmt.Sprintf("transfer from %s", fromName)); err != nil {
		return nil, fmt.Errorf("failed to credit recipient: %w", err)
	}

	return &interfaces.TransferResult{
		Amount:           amount,
		SenderNewBalance: senderBalance,
	}, nil
}

func (s *economyService) Leaderboard(ctx context.Context, limit int) ([]*entities.Account, error) {
	accounts, err := s.accountRepo.Top(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	return accounts, nil
}

func (s *economyService) History(ctx context.Context, discordID int64, limit int) ([]*entities.LedgerEntry, error) {
	entries, err := s.ledgerRepo.GetByAccount(ctx, discordID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger entries: %w", err)
	}
	return entries, nil
}
