package services

import (
	"context"
	"testing"

	"fortuna/config"
	"fortuna/domain/entities"
	"fortuna/domain/games"
	"fortuna/domain/testhelpers"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func settlementFixture() (*testhelpers.MockLedgerService, *testhelpers.MockGameSessionRepository, *testhelpers.MockStatsRepository, *testhelpers.MockEventPublisher) {
	return new(testhelpers.MockLedgerService),
		new(testhelpers.MockGameSessionRepository),
		new(testhelpers.MockStatsRepository),
		new(testhelpers.MockEventPublisher)
}

func TestSettlementService_Settle_Loss(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	mockLedger, mockSessions, mockStats, mockPublisher := settlementFixture()

	account := &entities.Account{DiscordID: 123456, Username: "tester", Balance: decimal.NewFromInt(100)}
	bet := decimal.NewFromInt(50)
	outcome := games.Outcome{
		Won:              false,
		PayoutMultiplier: decimal.Zero,
		Detail:           games.CoinFlipDetail{Choice: games.Tails, Result: games.Heads},
	}

	mockLedger.On("ApplyEntry", ctx, int64(123456), decEq(bet.Neg()), entities.EntryCategoryBet, mock.AnythingOfType("string")).
		Return(&entities.LedgerEntry{Amount: bet.Neg()}, decimal.NewFromInt(50), nil)
	mockSessions.On("Create", ctx, mock.MatchedBy(func(s *entities.GameSession) bool {
		return s.DiscordID == 123456 &&
			s.GameType == entities.GameTypeCoinFlip &&
			s.BetAmount.Equal(bet) &&
			s.Payout.IsZero() &&
			len(s.Result) > 0
	})).Return(nil)
	mockStats.On("RecordWager", ctx, decEq(bet), decEq(decimal.Zero)).Return(nil)
	mockPublisher.On("Publish", mock.AnythingOfType("events.WagerSettledEvent")).Return(nil)

	service := NewSettlementService(mockLedger, mockSessions, mockStats, mockPublisher)
	result, err := service.Settle(ctx, account, entities.GameTypeCoinFlip, bet, outcome)

	require.NoError(t, err)
	assert.False(t, result.Won)
	assert.True(t, result.BetAmount.Equal(bet))
	assert.True(t, result.Payout.IsZero())
	assert.True(t, result.NewBalance.Equal(decimal.NewFromInt(50)))

	mockLedger.AssertExpectations(t)
	mockSessions.AssertExpectations(t)
	mockStats.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestSettlementService_Settle_Win(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	mockLedger, mockSessions, mockStats, mockPublisher := settlementFixture()

	account := &entities.Account{DiscordID: 123456, Username: "tester", Balance: decimal.NewFromInt(100)}
	bet := decimal.NewFromInt(50)
	payout := decimal.NewFromInt(95) // 50 x 1.9
	outcome := games.Outcome{
		Won:              true,
		PayoutMultiplier: decimal.NewFromFloat(1.9),
		Detail:           games.CoinFlipDetail{Choice: games.Heads, Result: games.Heads, Win: true},
	}

	mockLedger.On("ApplyEntry", ctx, int64(123456), decEq(bet.Neg()), entities.EntryCategoryBet, mock.AnythingOfType("string")).
		Return(&entities.LedgerEntry{Amount: bet.Neg()}, decimal.NewFromInt(50), nil)
	mockLedger.On("ApplyEntry", ctx, int64(123456), decEq(payout), entities.EntryCategoryWin, mock.AnythingOfType("string")).
		Return(&entities.LedgerEntry{Amount: payout}, decimal.NewFromInt(145), nil)
	mockSessions.On("Create", ctx, mock.MatchedBy(func(s *entities.GameSession) bool {
		return s.Payout.Equal(payout)
	})).Return(nil)
	mockStats.On("RecordWager", ctx, decEq(bet), decEq(payout)).Return(nil)
	mockPublisher.On("Publish", mock.AnythingOfType("events.WagerSettledEvent")).Return(nil)

	service := NewSettlementService(mockLedger, mockSessions, mockStats, mockPublisher)
	result, err := service.Settle(ctx, account, entities.GameTypeCoinFlip, bet, outcome)

	require.NoError(t, err)
	assert.True(t, result.Won)
	assert.True(t, result.Payout.Equal(payout))
	assert.True(t, result.NewBalance.Equal(decimal.NewFromInt(145)))

	mockLedger.AssertExpectations(t)
	mockStats.AssertExpectations(t)
}

func TestSettlementService_Settle_RejectsNonPositiveBet(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	mockLedger, mockSessions, mockStats, mockPublisher := settlementFixture()
	service := NewSettlementService(mockLedger, mockSessions, mockStats, mockPublisher)

	account := &entities.Account{DiscordID: 123456, Balance: decimal.NewFromInt(100)}

	_, err := service.Settle(ctx, account, entities.GameTypeDice, decimal.Zero, games.Outcome{})
	assert.ErrorAs(t, err, new(*entities.ValidationError))

	_, err = service.Settle(ctx, account, entities.GameTypeDice, decimal.NewFromInt(-5), games.Outcome{})
	assert.ErrorAs(t, err, new(*entities.ValidationError))

	mockLedger.AssertNotCalled(t, "ApplyEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
