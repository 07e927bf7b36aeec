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

// stubRand feeds queued values so game outcomes are deterministic.
type stubRand struct {
	ints   []int
	floats []float64
}

func (s *stubRand) Intn(n int) int {
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v
}

func (s *stubRand) Float64() float64 {
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func TestGameService_PlayCoinFlip_InvalidChoice(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	mockLedger := new(testhelpers.MockLedgerService)
	mockSettlement := new(testhelpers.MockSettlementService)
	service := NewGameService(mockLedger, mockSettlement, &stubRand{}, config.Get().Paytable())

	_, err := service.PlayCoinFlip(context.Background(), 123456, "tester", decimal.NewFromInt(10), "edge")

	assert.ErrorAs(t, err, new(*entities.ValidationError))
	mockLedger.AssertNotCalled(t, "GetOrCreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func TestGameService_Play_RejectsNonPositiveBet(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	mockLedger := new(testhelpers.MockLedgerService)
	mockSettlement := new(testhelpers.MockSettlementService)
	service := NewGameService(mockLedger, mockSettlement, &stubRand{}, config.Get().Paytable())

	_, err := service.PlaySlots(context.Background(), 123456, "tester", decimal.Zero)
	assert.ErrorAs(t, err, new(*entities.ValidationError))

	_, err = service.PlaySlots(context.Background(), 123456, "tester", decimal.NewFromInt(-10))
	assert.ErrorAs(t, err, new(*entities.ValidationError))
}

func TestGameService_PlayDice_TargetOutOfRange(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	mockLedger := new(testhelpers.MockLedgerService)
	mockSettlement := new(testhelpers.MockSettlementService)
	service := NewGameService(mockLedger, mockSettlement, &stubRand{}, config.Get().Paytable())

	target := 7
	_, err := service.PlayDice(context.Background(), 123456, "tester", decimal.NewFromInt(10), &target)

	assert.ErrorAs(t, err, new(*entities.ValidationError))
}

func TestGameService_PlayRoulette_InvalidBetType(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	mockLedger := new(testhelpers.MockLedgerService)
	mockSettlement := new(testhelpers.MockSettlementService)
	service := NewGameService(mockLedger, mockSettlement, &stubRand{}, config.Get().Paytable())

	_, err := service.PlayRoulette(context.Background(), 123456, "tester", decimal.NewFromInt(10), "green")

	assert.ErrorAs(t, err, new(*entities.ValidationError))
}

func TestGameService_Play_InsufficientFunds(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	mockLedger := new(testhelpers.MockLedgerService)
	mockSettlement := new(testhelpers.MockSettlementService)

	account := &entities.Account{DiscordID: 123456, Username: "tester", Balance: decimal.NewFromInt(10)}
	mockLedger.On("GetOrCreateAccount", ctx, int64(123456), "tester").Return(account, nil)

	service := NewGameService(mockLedger, mockSettlement, &stubRand{ints: []int{0}}, config.Get().Paytable())
	_, err := service.PlayCoinFlip(ctx, 123456, "tester", decimal.NewFromInt(50), "heads")

	var fundsErr *entities.InsufficientFundsError
	require.ErrorAs(t, err, &fundsErr)
	assert.True(t, fundsErr.Required.Equal(decimal.NewFromInt(50)))
	assert.True(t, fundsErr.Available.Equal(decimal.NewFromInt(10)))
	mockSettlement.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGameService_PlayCoinFlip_WinFlow(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	mockLedger := new(testhelpers.MockLedgerService)
	mockSettlement := new(testhelpers.MockSettlementService)

	account := &entities.Account{DiscordID: 123456, Username: "tester", Balance: decimal.NewFromInt(100)}
	bet := decimal.NewFromInt(50)
	mockLedger.On("GetOrCreateAccount", ctx, int64(123456), "tester").Return(account, nil)
	mockSettlement.On("Settle", ctx, account, entities.GameTypeCoinFlip, decEq(bet), mock.MatchedBy(func(o games.Outcome) bool {
		return o.Won
	})).Return(&entities.SettlementResult{
		Won:        true,
		BetAmount:  bet,
		Payout:     decimal.NewFromInt(95),
		NewBalance: decimal.NewFromInt(145),
	}, nil)

	// Intn(2)=0 draws heads
	service := NewGameService(mockLedger, mockSettlement, &stubRand{ints: []int{0}}, config.Get().Paytable())
	result, err := service.PlayCoinFlip(ctx, 123456, "tester", bet, "heads")

	require.NoError(t, err)
	assert.Equal(t, entities.GameTypeCoinFlip, result.GameType)
	assert.True(t, result.Won)
	assert.True(t, result.Payout.Equal(decimal.NewFromInt(95)))
	assert.True(t, result.NewBalance.Equal(decimal.NewFromInt(145)))

	detail := result.Detail.(games.CoinFlipDetail)
	assert.Equal(t, games.Heads, detail.Result)
	mockSettlement.AssertExpectations(t)
}
