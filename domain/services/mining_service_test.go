package services

import (
	"context"
	"testing"
	"time"

	"fortuna/config"
	"fortuna/domain/entities"
	"fortuna/domain/testhelpers"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpgradeCost_GrowsGeometrically(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	assert.True(t, decimal.NewFromInt(500).Equal(UpgradeCost(1)))
	assert.True(t, decimal.NewFromInt(750).Equal(UpgradeCost(2)))
	assert.True(t, decimal.NewFromInt(1125).Equal(UpgradeCost(3)))
	assert.True(t, UpgradeCost(10).GreaterThan(UpgradeCost(9)))
}

func miningFixture() (*testhelpers.MockLedgerService, *testhelpers.MockAccountRepository, *testhelpers.MockMiningRunRepository, *testhelpers.MockStatsRepository, *testhelpers.MockEventPublisher) {
	return new(testhelpers.MockLedgerService),
		new(testhelpers.MockAccountRepository),
		new(testhelpers.MockMiningRunRepository),
		new(testhelpers.MockStatsRepository),
		new(testhelpers.MockEventPublisher)
}

func TestMiningService_CompleteSession(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	mockLedger, mockAccountRepo, mockRunRepo, mockStats, mockPublisher := miningFixture()

	session := &entities.MiningSession{
		ID:               uuid.New(),
		DiscordID:        123456,
		StartedAt:        time.Now().UTC().Add(-5 * time.Minute),
		Duration:         5 * time.Minute,
		MiningPower:      decimal.NewFromInt(1),
		MiningMultiplier: decimal.NewFromInt(1),
	}

	// Variance roll 0.5 lands exactly on 1.0x, bonus roll 0.9 misses the 5%
	// window: 5 minutes at power 1 earns exactly 5.00
	earned := decimal.NewFromInt(5)
	mockLedger.On("ApplyEntry", ctx, int64(123456), decEq(earned), entities.EntryCategoryMining, mock.AnythingOfType("string")).
		Return(&entities.LedgerEntry{Amount: earned}, decimal.NewFromInt(105), nil)
	mockRunRepo.On("Create", ctx, mock.MatchedBy(func(r *entities.MiningRun) bool {
		return r.DiscordID == 123456 && r.DurationSeconds == 300 && r.AmountEarned.Equal(earned)
	})).Return(nil)
	mockAccountRepo.On("SetMiningCompleted", ctx, int64(123456), mock.AnythingOfType("time.Time")).Return(nil)
	mockStats.On("RecordMined", ctx, decEq(earned)).Return(nil)
	mockPublisher.On("Publish", mock.AnythingOfType("events.MiningCompletedEvent")).Return(nil)

	service := NewMiningService(mockLedger, mockAccountRepo, mockRunRepo, mockStats, mockPublisher, &stubRand{floats: []float64{0.5, 0.9}})
	completion, err := service.CompleteSession(ctx, session)

	require.NoError(t, err)
	assert.False(t, completion.Bonus)
	assert.True(t, completion.AmountEarned.Equal(earned))
	assert.True(t, completion.NewBalance.Equal(decimal.NewFromInt(105)))

	mockLedger.AssertExpectations(t)
	mockRunRepo.AssertExpectations(t)
	mockAccountRepo.AssertExpectations(t)
	mockStats.AssertExpectations(t)
}

func TestMiningService_CompleteSession_LuckyBonus(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	mockLedger, mockAccountRepo, mockRunRepo, mockStats, mockPublisher := miningFixture()

	session := &entities.MiningSession{
		ID:               uuid.New(),
		DiscordID:        123456,
		Duration:         5 * time.Minute,
		MiningPower:      decimal.NewFromInt(1),
		MiningMultiplier: decimal.NewFromInt(1),
	}

	// Bonus roll 0.01 hits the 5% window: earnings double to 10.00
	earned := decimal.NewFromInt(10)
	mockLedger.On("ApplyEntry", ctx, int64(123456), decEq(earned), entities.EntryCategoryMining, mock.AnythingOfType("string")).
		Return(&entities.LedgerEntry{Amount: earned}, decimal.NewFromInt(110), nil)
	mockRunRepo.On("Create", ctx, mock.Anything).Return(nil)
	mockAccountRepo.On("SetMiningCompleted", ctx, int64(123456), mock.AnythingOfType("time.Time")).Return(nil)
	mockStats.On("RecordMined", ctx, decEq(earned)).Return(nil)
	mockPublisher.On("Publish", mock.AnythingOfType("events.MiningCompletedEvent")).Return(nil)

	service := NewMiningService(mockLedger, mockAccountRepo, mockRunRepo, mockStats, mockPublisher, &stubRand{floats: []float64{0.5, 0.01}})
	completion, err := service.CompleteSession(ctx, session)

	require.NoError(t, err)
	assert.True(t, completion.Bonus)
	assert.True(t, completion.AmountEarned.Equal(earned))
}

func TestMiningService_UpgradeEquipment(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	mockLedger, mockAccountRepo, mockRunRepo, mockStats, mockPublisher := miningFixture()

	account := &entities.Account{
		DiscordID:        123456,
		Username:         "tester",
		Balance:          decimal.NewFromInt(1000),
		MiningLevel:      1,
		MiningPower:      decimal.NewFromInt(1),
		MiningMultiplier: decimal.NewFromInt(1),
	}
	cost := decimal.NewFromInt(500)

	mockLedger.On("GetOrCreateAccount", ctx, int64(123456), "tester").Return(account, nil)
	mockLedger.On("ApplyEntry", ctx, int64(123456), decEq(cost.Neg()), entities.EntryCategoryWithdrawal, mock.AnythingOfType("string")).
		Return(&entities.LedgerEntry{Amount: cost.Neg()}, decimal.NewFromInt(500), nil)
	mockAccountRepo.On("ApplyUpgrade", ctx, int64(123456), 2, decEq(decimal.NewFromFloat(1.5)), decEq(decimal.NewFromInt(1))).Return(nil)

	// Bonus roll 0.9 misses the multiplier bump
	service := NewMiningService(mockLedger, mockAccountRepo, mockRunRepo, mockStats, mockPublisher, &stubRand{floats: []float64{0.9}})
	result, err := service.UpgradeEquipment(ctx, 123456, "tester")

	require.NoError(t, err)
	assert.Equal(t, 2, result.NewLevel)
	assert.True(t, result.Cost.Equal(cost))
	assert.True(t, result.NewPower.Equal(decimal.NewFromFloat(1.5)))
	assert.False(t, result.BonusReceived)
	mockAccountRepo.AssertExpectations(t)
}

func TestMiningService_UpgradeEquipment_InsufficientFunds(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	mockLedger, mockAccountRepo, mockRunRepo, mockStats, mockPublisher := miningFixture()

	account := &entities.Account{
		DiscordID:   123456,
		Username:    "tester",
		Balance:     decimal.NewFromInt(100),
		MiningLevel: 1,
	}
	mockLedger.On("GetOrCreateAccount", ctx, int64(123456), "tester").Return(account, nil)

	service := NewMiningService(mockLedger, mockAccountRepo, mockRunRepo, mockStats, mockPublisher, &stubRand{})
	_, err := service.UpgradeEquipment(ctx, 123456, "tester")

	assert.ErrorAs(t, err, new(*entities.InsufficientFundsError))
	mockLedger.AssertNotCalled(t, "ApplyEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMiningService_Profile(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	mockLedger, mockAccountRepo, mockRunRepo, mockStats, mockPublisher := miningFixture()

	account := &entities.Account{
		DiscordID:        123456,
		Username:         "tester",
		MiningLevel:      3,
		MiningPower:      decimal.NewFromInt(2),
		MiningMultiplier: decimal.NewFromFloat(1.2),
	}
	mockLedger.On("GetOrCreateAccount", ctx, int64(123456), "tester").Return(account, nil)
	mockRunRepo.On("TotalsByAccount", ctx, int64(123456)).Return(int64(7), decimal.NewFromFloat(42.5), nil)

	service := NewMiningService(mockLedger, mockAccountRepo, mockRunRepo, mockStats, mockPublisher, &stubRand{})
	profile, err := service.Profile(ctx, 123456, "tester")

	require.NoError(t, err)
	assert.Equal(t, 3, profile.Level)
	assert.Equal(t, int64(7), profile.TotalRuns)
	assert.True(t, profile.TotalMined.Equal(decimal.NewFromFloat(42.5)))
	assert.True(t, profile.NextUpgradeCost.Equal(UpgradeCost(3)))
}
