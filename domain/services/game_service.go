package services

import (
	"context"

	"fortuna/domain/entities"
	"fortuna/domain/games"
	"fortuna/domain/interfaces"

	"github.com/shopspring/decimal"
)

type gameService struct {
	ledger     interfaces.LedgerService
	settlement interfaces.SettlementService
	rng        games.Rand
	paytable   games.Paytable
}

// NewGameService creates a new game service
func NewGameService(ledger interfaces.LedgerService, settlement interfaces.SettlementService, rng games.Rand, paytable games.Paytable) interfaces.GameService {
	return &gameService{
		ledger:     ledger,
		settlement: settlement,
		rng:        rng,
		paytable:   paytable,
	}
}

// play runs the shared wager pipeline: validate, load the account, check
// sufficiency up front, resolve, settle.
func (s *gameService) play(ctx context.Context, discordID int64, username string, bet decimal.Decimal, gameType entities.GameType, resolve func() games.Outcome) (*entities.GameResult, error) {
	if !bet.IsPositive() {
		return nil, entities.NewValidationError("bet amount must be positive")
	}

	account, err := s.ledger.GetOrCreateAccount(ctx, discordID, username)
	if err != nil {
		return nil, err
	}
	if !account.CanAfford(bet) {
		return nil, &entities.InsufficientFundsError{
			Required:  bet,
			Available: account.Balance,
		}
	}

	outcome := resolve()

	settled, err := s.settlement.Settle(ctx, account, gameType, bet, outcome)
	if err != nil {
		return nil, err
	}

	return &entities.GameResult{
		GameType:         gameType,
		Won:              settled.Won,
		BetAmount:        settled.BetAmount,
		Payout:           settled.Payout,
		PayoutMultiplier: outcome.PayoutMultiplier,
		NewBalance:       settled.NewBalance,
		Detail:           outcome.Detail,
	}, nil
}

func (s *gameService) PlayCoinFlip(ctx context.Context, discordID int64, username string, bet decimal.Decimal, choice string) (*entities.GameResult, error) {
	side, ok := games.ParseCoinSide(choice)
	if !ok {
		return nil, entities.NewValidationError("choice must be heads or tails")
	}
	return s.play(ctx, discordID, username, bet, entities.GameTypeCoinFlip, func() games.Outcome {
		return games.ResolveCoinFlip(s.rng, s.paytable, side)
	})
}

func (s *gameService) PlayDice(ctx context.Context, discordID int64, username string, bet decimal.Decimal, target *int) (*entities.GameResult, error) {
	if target != nil && (*target < 1 || *target > 6) {
		return nil, entities.NewValidationError("dice target must be between 1 and 6")
	}
	return s.play(ctx, discordID, username, bet, entities.GameTypeDice, func() games.Outcome {
		return games.ResolveDice(s.rng, s.paytable, target)
	})
}

func (s *gameService) PlaySlots(ctx context.Context, discordID int64, username string, bet decimal.Decimal) (*entities.GameResult, error) {
	return s.play(ctx, discordID, username, bet, entities.GameTypeSlots, func() games.Outcome {
		return games.ResolveSlots(s.rng, s.paytable)
	})
}

func (s *gameService) PlayExtendedSlots(ctx context.Context, discordID int64, username string, bet decimal.Decimal) (*entities.GameResult, error) {
	return s.play(ctx, discordID, username, bet, entities.GameTypeSlotsExtended, func() games.Outcome {
		return games.ResolveExtendedSlots(s.rng, s.paytable)
	})
}

func (s *gameService) PlayRoulette(ctx context.Context, discordID int64, username string, bet decimal.Decimal, betType string) (*entities.GameResult, error) {
	rouletteBet, ok := games.ParseRouletteBet(betType)
	if !ok {
		return nil, entities.NewValidationError("bet type must be one of red, black, even, odd, high, low")
	}
	return s.play(ctx, discordID, username, bet, entities.GameTypeRoulette, func() games.Outcome {
		return games.ResolveRoulette(s.rng, s.paytable, rouletteBet)
	})
}
