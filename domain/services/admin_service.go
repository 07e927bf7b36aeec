package services

import (
	"context"
	"fmt"

	"fortuna/domain/entities"
	"fortuna/domain/interfaces"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type adminService struct {
	ledger      interfaces.LedgerService
	accountRepo interfaces.AccountRepository
}

// NewAdminService creates a new admin service
func NewAdminService(ledger interfaces.LedgerService, accountRepo interfaces.AccountRepository) interfaces.AdminService {
	return &adminService{
		ledger:      ledger,
		accountRepo: accountRepo,
	}
}

func (s *adminService) AddBalance(ctx context.Context, actor string, discordID int64, username string, amount decimal.Decimal) (*interfaces.AdminAdjustResult, error) {
	if !amount.IsPositive() {
		return nil, entities.NewValidationError("amount must be positive")
	}

	if _, err := s.ledger.GetOrCreateAccount(ctx, discordID, username); err != nil {
		return nil, err
	}

	_, newBalance, err := s.ledger.ApplyEntry(ctx, discordID, amount, entities.EntryCategoryAdmin,
		fmt.Sprintf("admin balance addition by %s", actor))
	if err != nil {
		return nil, fmt.Errorf("failed to credit admin addition: %w", err)
	}

	log.WithFields(log.Fields{
		"discord_id": discordID,
		"amount":     amount,
		"actor":      actor,
	}).Info("admin balance addition")

	return &interfaces.AdminAdjustResult{
		Amount:     amount,
		NewBalance: newBalance,
	}, nil
}

// RemoveBalance clamps the removal to the available balance, so it never
// fails for insufficient funds.
func (s *adminService) RemoveBalance(ctx context.Context, actor string, discordID int64, username string, amount decimal.Decimal) (*interfaces.AdminAdjustResult, error) {
	if !amount.IsPositive() {
		return nil, entities.NewValidationError("amount must be positive")
	}

	account, err := s.ledger.GetOrCreateAccount(ctx, discordID, username)
	if err != nil {
		return nil, err
	}
	if account.Balance.LessThan(amount) {
		amount = account.Balance
	}
	if amount.IsZero() {
		return &interfaces.AdminAdjustResult{
			Amount:     decimal.Zero,
			NewBalance: account.Balance,
		}, nil
	}

	_, newBalance, err := s.ledger.ApplyEntry(ctx, discordID, amount.Neg(), entities.EntryCategoryAdmin,
		fmt.Sprintf("admin balance removal by %s", actor))
	if err != nil {
		return nil, fmt.Errorf("failed to debit admin removal: %w", err)
	}

	log.WithFields(log.Fields{
		"discord_id": discordID,
		"amount":     amount,
		"actor":      actor,
	}).Info("admin balance removal")

	return &interfaces.AdminAdjustResult{
		Amount:     amount,
		NewBalance: newBalance,
	}, nil
}

// ResetBalance zeroes the balance. The removed amount is recorded as one
// admin entry so the ledger still sums to the new balance.
func (s *adminService) ResetBalance(ctx context.Context, actor string, discordID int64, username string) (*interfaces.AdminAdjustResult, error) {
	account, err := s.ledger.GetOrCreateAccount(ctx, discordID, username)
	if err != nil {
		return nil, err
	}

	old := account.Balance
	if !old.IsPositive() {
		return &interfaces.AdminAdjustResult{
			Amount:     decimal.Zero,
			NewBalance: old,
		}, nil
	}

	_, newBalance, err := s.ledger.ApplyEntry(ctx, discordID, old.Neg(), entities.EntryCategoryAdmin,
		fmt.Sprintf("admin balance reset by %s", actor))
	if err != nil {
		return nil, fmt.Errorf("failed to reset balance: %w", err)
	}

	log.WithFields(log.Fields{
		"discord_id": discordID,
		"removed":    old,
		"actor":      actor,
	}).Info("admin balance reset")

	return &interfaces.AdminAdjustResult{
		Amount:     old,
		NewBalance: newBalance,
	}, nil
}

func (s *adminService) ResetMining(ctx context.Context, discordID int64, username string) error {
	if _, err := s.ledger.GetOrCreateAccount(ctx, discordID, username); err != nil {
		return err
	}
	if err := s.accountRepo.ResetMining(ctx, discordID); err != nil {
		return fmt.Errorf("failed to reset mining equipment: %w", err)
	}

	log.WithField("discord_id", discordID).Info("admin mining reset")
	return nil
}
