package services

import (
	"context"
	"encoding/json"
	"fmt"

	"fortuna/domain/entities"
	"fortuna/domain/events"
	"fortuna/domain/games"
	"fortuna/domain/interfaces"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type settlementService struct {
	ledger         interfaces.LedgerService
	sessionRepo    interfaces.GameSessionRepository
	statsRepo      interfaces.StatsRepository
	eventPublisher interfaces.EventPublisher
}

// NewSettlementService creates a new settlement service
func NewSettlementService(ledger interfaces.LedgerService, sessionRepo interfaces.GameSessionRepository, statsRepo interfaces.StatsRepository, eventPublisher interfaces.EventPublisher) interfaces.SettlementService {
	return &settlementService{
		ledger:         ledger,
		sessionRepo:    sessionRepo,
		statsRepo:      statsRepo,
		eventPublisher: eventPublisher,
	}
}

// Settle applies a resolved outcome against the ledger. The bet is always
// recorded as a debit entry and the payout, when won, as a separate credit
// entry, so summing an account's entries always reproduces its balance.
func (s *settlementService) Settle(ctx context.Context, account *entities.Account, gameType entities.GameType, bet decimal.Decimal, outcome games.Outcome) (*entities.SettlementResult, error) {
	if !bet.IsPositive() {
		return nil, entities.NewValidationError("bet amount must be positive")
	}

	_, newBalance, err := s.ledger.ApplyEntry(ctx, account.DiscordID, bet.Neg(), entities.EntryCategoryBet,
		fmt.Sprintf("%s bet", gameType))
	if err != nil {
		return nil, err
	}

	payout := decimal.Zero
	if outcome.Won {
		payout = bet.Mul(outcome.PayoutMultiplier).Round(2)
		_, newBalance, err = s.ledger.ApplyEntry(ctx, account.DiscordID, payout, entities.EntryCategoryWin,
			fmt.Sprintf("%s win", gameType))
		if err != nil {
			return nil, fmt.Errorf("failed to credit payout: %w", err)
		}
	}

	resultJSON, err := json.Marshal(outcome.Detail)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal game result: %w", err)
	}

	session := &entities.GameSession{
		DiscordID: account.DiscordID,
		GameType:  gameType,
		BetAmount: bet,
		Payout:    payout,
		Result:    resultJSON,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create game session: %w", err)
	}

	if err := s.statsRepo.RecordWager(ctx, bet, payout); err != nil {
		return nil, fmt.Errorf("failed to record wager statistics: %w", err)
	}

	if err := s.eventPublisher.Publish(events.WagerSettledEvent{
		DiscordID:  account.DiscordID,
		GameType:   gameType,
		BetAmount:  bet,
		Payout:     payout,
		Won:        outcome.Won,
		NewBalance: newBalance,
	}); err != nil {
		log.WithError(err).Warn("failed to publish wager settled event")
	}

	return &entities.SettlementResult{
		Won:        outcome.Won,
		BetAmount:  bet,
		Payout:     payout,
		NewBalance: newBalance,
	}, nil
}
