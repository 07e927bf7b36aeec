package application

import (
	"context"
	"errors"
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

func decEq(want decimal.Decimal) interface{} {
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

func schedulerFixture(t *testing.T) (*MiningScheduler, *testhelpers.MockUnitOfWork, *testhelpers.MockEventPublisher) {
	t.Helper()
	config.SetTestConfig(config.NewTestConfig())
	t.Cleanup(config.ResetConfig)

	uow := testhelpers.NewMockUnitOfWork()
	factory := &testhelpers.MockUnitOfWorkFactory{Uow: uow}
	publisher := new(testhelpers.MockEventPublisher)
	scheduler := NewMiningScheduler(factory, publisher, &stubRand{floats: []float64{0.5, 0.9}})
	return scheduler, uow, publisher
}

func minerAccount() *entities.Account {
	return &entities.Account{
		DiscordID:        123456,
		Username:         "tester",
		Balance:          decimal.NewFromInt(100),
		MiningLevel:      1,
		MiningPower:      decimal.NewFromInt(1),
		MiningMultiplier: decimal.NewFromInt(1),
	}
}

func TestMiningScheduler_StartSession(t *testing.T) {
	scheduler, uow, _ := schedulerFixture(t)
	ctx := context.Background()

	uow.AccountRepo.On("GetByDiscordID", ctx, int64(123456)).Return(minerAccount(), nil)

	session, err := scheduler.StartSession(ctx, 123456, "tester", nil)

	require.NoError(t, err)
	assert.Equal(t, int64(123456), session.DiscordID)
	assert.Equal(t, 5*time.Minute, session.Duration)
	assert.True(t, session.MiningPower.Equal(decimal.NewFromInt(1)))
	assert.Same(t, session, scheduler.SessionStatus(123456))
}

func TestMiningScheduler_StartSession_ClampsDuration(t *testing.T) {
	scheduler, uow, _ := schedulerFixture(t)
	ctx := context.Background()

	uow.AccountRepo.On("GetByDiscordID", ctx, mock.AnythingOfType("int64")).Return(minerAccount(), nil)

	long := 120
	session, err := scheduler.StartSession(ctx, 123456, "tester", &long)
	require.NoError(t, err)
	assert.Equal(t, 60*time.Minute, session.Duration)
}

func TestMiningScheduler_StartSession_AlreadyMining(t *testing.T) {
	scheduler, uow, _ := schedulerFixture(t)
	ctx := context.Background()

	uow.AccountRepo.On("GetByDiscordID", ctx, int64(123456)).Return(minerAccount(), nil)

	_, err := scheduler.StartSession(ctx, 123456, "tester", nil)
	require.NoError(t, err)

	_, err = scheduler.StartSession(ctx, 123456, "tester", nil)
	var alreadyErr *entities.AlreadyMiningError
	require.ErrorAs(t, err, &alreadyErr)
	assert.Greater(t, alreadyErr.Remaining, time.Duration(0))
}

func TestMiningScheduler_StartSession_OnCooldown(t *testing.T) {
	scheduler, uow, _ := schedulerFixture(t)
	ctx := context.Background()

	account := minerAccount()
	lastRun := time.Now().UTC().Add(-1 * time.Minute)
	account.MiningLastAt = &lastRun
	uow.AccountRepo.On("GetByDiscordID", ctx, int64(123456)).Return(account, nil)

	_, err := scheduler.StartSession(ctx, 123456, "tester", nil)
	assert.ErrorAs(t, err, new(*entities.OnCooldownError))
	assert.Nil(t, scheduler.SessionStatus(123456))
}

func TestMiningScheduler_Tick_SettlesExpiredSession(t *testing.T) {
	scheduler, uow, publisher := schedulerFixture(t)
	ctx := context.Background()

	// Variance 1.0x, no bonus: 5 minutes at power 1 earns 5.00
	earned := decimal.NewFromInt(5)
	uow.AccountRepo.On("AdjustBalance", ctx, int64(123456), decEq(earned)).Return(decimal.NewFromInt(105), nil)
	uow.AccountRepo.On("SetMiningCompleted", ctx, int64(123456), mock.AnythingOfType("time.Time")).Return(nil)
	uow.LedgerRepo.On("Append", ctx, mock.MatchedBy(func(e *entities.LedgerEntry) bool {
		return e.Category == entities.EntryCategoryMining && e.Amount.Equal(earned)
	})).Return(nil)
	uow.RunRepo.On("Create", ctx, mock.Anything).Return(nil)
	uow.StatsRepo.On("RecordMined", ctx, decEq(earned)).Return(nil)
	publisher.On("Publish", mock.AnythingOfType("events.MiningCompletedEvent")).Return(nil)

	notifier := new(testhelpers.MockNotifier)
	notifier.On("NotifyMiningComplete", ctx, mock.MatchedBy(func(c *entities.MiningCompletion) bool {
		return c.DiscordID == 123456 && c.AmountEarned.Equal(earned)
	})).Return(nil)
	scheduler.SetNotifier(notifier)

	scheduler.sessions[123456] = &entities.MiningSession{
		ID:               uuid.New(),
		DiscordID:        123456,
		StartedAt:        time.Now().UTC().Add(-10 * time.Minute),
		Duration:         5 * time.Minute,
		MiningPower:      decimal.NewFromInt(1),
		MiningMultiplier: decimal.NewFromInt(1),
	}

	scheduler.tick(ctx)

	assert.Nil(t, scheduler.SessionStatus(123456))
	uow.AccountRepo.AssertExpectations(t)
	uow.LedgerRepo.AssertExpectations(t)
	uow.RunRepo.AssertExpectations(t)
	uow.StatsRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestMiningScheduler_Tick_SkipsUnexpiredSession(t *testing.T) {
	scheduler, _, _ := schedulerFixture(t)
	ctx := context.Background()

	session := &entities.MiningSession{
		ID:               uuid.New(),
		DiscordID:        123456,
		StartedAt:        time.Now().UTC(),
		Duration:         5 * time.Minute,
		MiningPower:      decimal.NewFromInt(1),
		MiningMultiplier: decimal.NewFromInt(1),
	}
	scheduler.sessions[123456] = session

	scheduler.tick(ctx)

	assert.Same(t, session, scheduler.SessionStatus(123456))
}

func TestMiningScheduler_Tick_RemovesSessionOnFailure(t *testing.T) {
	scheduler, uow, _ := schedulerFixture(t)
	ctx := context.Background()

	uow.AccountRepo.On("AdjustBalance", ctx, int64(123456), mock.Anything).
		Return(decimal.Zero, errors.New("connection lost"))

	notifier := new(testhelpers.MockNotifier)
	scheduler.SetNotifier(notifier)

	scheduler.sessions[123456] = &entities.MiningSession{
		ID:               uuid.New(),
		DiscordID:        123456,
		StartedAt:        time.Now().UTC().Add(-10 * time.Minute),
		Duration:         5 * time.Minute,
		MiningPower:      decimal.NewFromInt(1),
		MiningMultiplier: decimal.NewFromInt(1),
	}

	scheduler.tick(ctx)

	// The poisoned session is dropped so the scheduler cannot wedge on it
	assert.Nil(t, scheduler.SessionStatus(123456))
	notifier.AssertNotCalled(t, "NotifyMiningComplete", mock.Anything, mock.Anything)
}
