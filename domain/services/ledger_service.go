package services

import (
	"context"
	"fmt"

	"fortuna/config"
	"fortuna/domain/entities"
	"fortuna/domain/events"
	"fortuna/domain/interfaces"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type ledgerService struct {
	accountRepo    interfaces.AccountRepository
	ledgerRepo     interfaces.LedgerRepository
	eventPublisher interfaces.EventPublisher
}

// NewLedgerService creates a new ledger service
func NewLedgerService(accountRepo interfaces.AccountRepository, ledgerRepo interfaces.LedgerRepository, eventPublisher interfaces.EventPublisher) interfaces.LedgerService {
	return &ledgerService{
		accountRepo:    accountRepo,
		ledgerRepo:     ledgerRepo,
		eventPublisher: eventPublisher,
	}
}

func (s *ledgerService) GetOrCreateAccount(ctx context.Context, discordID int64, username string) (*entities.Account, error) {
	account, err := s.accountRepo.GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account != nil {
		return account, nil
	}

	startingBalance := decimal.NewFromFloat(config.Get().StartingBalance)
	account, err = s.accountRepo.Create(ctx, discordID, username, startingBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	// Starting balance is part of the audit trail too
	if startingBalance.IsPositive() {
		entry := &entities.LedgerEntry{
			DiscordID:   discordID,
			Amount:      startingBalance,
			Category:    entities.EntryCategoryDeposit,
			Description: "starting balance",
		}
		if err := s.ledgerRepo.Append(ctx, entry); err != nil {
			return nil, fmt.Errorf("failed to record starting balance: %w", err)
		}
	}

	if err := s.eventPublisher.Publish(events.AccountCreatedEvent{
		DiscordID:       discordID,
		Username:        username,
		StartingBalance: startingBalance,
	}); err != nil {
		log.WithError(err).Warn("failed to publish account created event")
	}

	log.WithFields(log.Fields{
		"discord_id": discordID,
		"username":   username,
	}).Info("created new account")

	return account, nil
}

func (s *ledgerService) ApplyEntry(ctx context.Context, discordID int64, amount decimal.Decimal, category entities.EntryCategory, description string) (*entities.LedgerEntry, decimal.Decimal, error) {
	entry := &entities.LedgerEntry{
		DiscordID:   discordID,
		Amount:      amount,
		Category:    category,
		Description: description,
	}
	if err := entry.Validate(); err != nil {
		return nil, decimal.Zero, err
	}

	newBalance, err := s.accountRepo.AdjustBalance(ctx, discordID, amount)
	if err != nil {
		return nil, decimal.Zero, err
	}

	if err := s.ledgerRepo.Append(ctx, entry); err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to append ledger entry: %w", err)
	}

	return entry, newBalance, nil
}
