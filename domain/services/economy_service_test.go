package services

import (
	"context"
	"testing"
	"time"

	"fortuna/config"
	"fortuna/domain/entities"
	"fortuna/domain/testhelpers"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEconomyService_ClaimDaily(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	mockLedger := new(testhelpers.MockLedgerService)
	mockAccountRepo := new(testhelpers.MockAccountRepository)
	mockLedgerRepo := new(testhelpers.MockLedgerRepository)

	account := &entities.Account{DiscordID: 123456, Username: "tester", Balance: decimal.NewFromInt(100)}
	mockLedger.On("GetOrCreateAccount", ctx, int64(123456), "tester").Return(account, nil)

	// Intn(51)=0 pins the bonus at zero: base reward only
	reward := decimal.NewFromInt(int64(config.Get().DailyRewardBase))
	mockLedger.On("ApplyEntry", ctx, int64(123456), decEq(reward), entities.EntryCategoryDaily, mock.AnythingOfType("string")).
		Return(&entities.LedgerEntry{Amount: reward}, decimal.NewFromInt(200), nil)
	mockAccountRepo.On("SetDailyClaimed", ctx, int64(123456), mock.AnythingOfType("time.Time")).Return(nil)

	service := NewEconomyService(mockLedger, mockAccountRepo, mockLedgerRepo, &stubRand{ints: []int{0}})
	result, err := service.ClaimDaily(ctx, 123456, "tester")

	require.NoError(t, err)
	assert.True(t, result.Amount.Equal(reward))
	assert.True(t, result.NewBalance.Equal(decimal.NewFromInt(200)))
	mockLedger.AssertExpectations(t)
	mockAccountRepo.AssertExpectations(t)
}

func TestEconomyService_ClaimDaily_OnCooldown(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	mockLedger := new(testhelpers.MockLedgerService)
	mockAccountRepo := new(testhelpers.MockAccountRepository)
	mockLedgerRepo := new(testhelpers.MockLedgerRepository)

	claimed := time.Now().UTC().Add(-1 * time.Hour)
	account := &entities.Account{DiscordID: 123456, Username: "tester", LastDailyAt: &claimed}
	mockLedger.On("GetOrCreateAccount", ctx, int64(123456), "tester").Return(account, nil)

	service := NewEconomyService(mockLedger, mockAccountRepo, mockLedgerRepo, &stubRand{ints: []int{0}})
	_, err := service.ClaimDaily(ctx, 123456, "tester")

	var cooldownErr *entities.OnCooldownError
	require.ErrorAs(t, err, &cooldownErr)
	assert.Greater(t, cooldownErr.Remaining, 22*time.Hour)
	mockLedger.AssertNotCalled(t, "ApplyEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEconomyService_Transfer(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	mockLedger := new(testhelpers.MockLedgerService)
	mockAccountRepo := new(testhelpers.MockAccountRepository)
	mockLedgerRepo := new(testhelpers.MockLedgerRepository)

	sender := &entities.Account{DiscordID: 111, Username: "alice", Balance: decimal.NewFromInt(100)}
	recipient := &entities.Account{DiscordID: 222, Username: "bob", Balance: decimal.NewFromInt(20)}
	amount := decimal.NewFromInt(40)

	mockLedger.On("GetOrCreateAccount", ctx, int64(111), "alice").Return(sender, nil)
	mockLedger.On("GetOrCreateAccount", ctx, int64(222), "bob").Return(recipient, nil)
	mockLedger.On("ApplyEntry", ctx, int64(111), decEq(amount.Neg()), entities.EntryCategoryWithdrawal, mock.AnythingOfType("string")).
		Return(&entities.LedgerEntry{Amount: amount.Neg()}, decimal.NewFromInt(60), nil)
	mockLedger.On("ApplyEntry", ctx, int64(222), decEq(amount), entities.EntryCategoryDeposit, mock.AnythingOfType("string")).
		Return(&entities.LedgerEntry{Amount: amount}, decimal.NewFromInt(60), nil)

	service := NewEconomyService(mockLedger, mockAccountRepo, mockLedgerRepo, &stubRand{})
	result, err := service.Transfer(ctx, 111, "alice", 222, "bob", amount)

	require.NoError(t, err)
	assert.True(t, result.Amount.Equal(amount))
	assert.True(t, result.SenderNewBalance.Equal(decimal.NewFromInt(60)))
	mockLedger.AssertExpectations(t)
}

func TestEconomyService_Transfer_Validation(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	mockLedger := new(testhelpers.MockLedgerService)
	service := NewEconomyService(mockLedger, new(testhelpers.MockAccountRepository), new(testhelpers.MockLedgerRepository), &stubRand{})

	_, err := service.Transfer(ctx, 111, "alice", 111, "alice", decimal.NewFromInt(10))
	assert.ErrorAs(t, err, new(*entities.ValidationError))

	_, err = service.Transfer(ctx, 111, "alice", 222, "bob", decimal.Zero)
	assert.ErrorAs(t, err, new(*entities.ValidationError))

	mockLedger.AssertNotCalled(t, "GetOrCreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func TestEconomyService_Transfer_InsufficientFunds(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	mockLedger := new(testhelpers.MockLedgerService)

	sender := &entities.Account{DiscordID: 111, Username: "alice", Balance: decimal.NewFromInt(5)}
	mockLedger.On("GetOrCreateAccount", ctx, int64(111), "alice").Return(sender, nil)

	service := NewEconomyService(mockLedger, new(testhelpers.MockAccountRepository), new(testhelpers.MockLedgerRepository), &stubRand{})
	_, err := service.Transfer(ctx, 111, "alice", 222, "bob", decimal.NewFromInt(40))

	assert.ErrorAs(t, err, new(*entities.InsufficientFundsError))
	mockLedger.AssertNotCalled(t, "ApplyEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
