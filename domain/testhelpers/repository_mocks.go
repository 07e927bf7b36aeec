package testhelpers

import (
	"context"
	"time"

	"fortuna/domain/entities"
	"fortuna/domain/events"
	"fortuna/domain/games"
	"fortuna/domain/interfaces"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByDiscordID(ctx context.Context, discordID int64) (*entities.Account, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, discordID int64, username string, startingBalance decimal.Decimal) (*entities.Account, error) {
	args := m.Called(ctx, discordID, username, startingBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) AdjustBalance(ctx context.Context, discordID int64, delta decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, discordID, delta)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAccountRepository) SetDailyClaimed(ctx context.Context, discordID int64, at time.Time) error {
	args := m.Called(ctx, discordID, at)
	return args.Error(0)
}

func (m *MockAccountRepository) SetMiningCompleted(ctx context.Context, discordID int64, at time.Time) error {
	args := m.Called(ctx, discordID, at)
	return args.Error(0)
}

func (m *MockAccountRepository) ApplyUpgrade(ctx context.Context, discordID int64, level int, power, multiplier decimal.Decimal) error {
	args := m.Called(ctx, discordID, level, power, multiplier)
	return args.Error(0)
}

func (m *MockAccountRepository) ResetMining(ctx context.Context, discordID int64) error {
	args := m.Called(ctx, discordID)
	return args.Error(0)
}

func (m *MockAccountRepository) Top(ctx context.Context, limit int) ([]*entities.Account, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) Census(ctx context.Context) (int64, decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Get(1).(decimal.Decimal), args.Error(2)
}

// MockLedgerRepository is a mock implementation of LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Append(ctx context.Context, entry *entities.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) GetByAccount(ctx context.Context, discordID int64, limit int) ([]*entities.LedgerEntry, error) {
	args := m.Called(ctx, discordID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) Recent(ctx context.Context, limit int) ([]*entities.LedgerEntrySummary, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LedgerEntrySummary), args.Error(1)
}

func (m *MockLedgerRepository) SumByAccount(ctx context.Context, discordID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, discordID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockGameSessionRepository is a mock implementation of GameSessionRepository
type MockGameSessionRepository struct {
	mock.Mock
}

func (m *MockGameSessionRepository) Create(ctx context.Context, session *entities.GameSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockGameSessionRepository) GetByAccount(ctx context.Context, discordID int64, limit int) ([]*entities.GameSession, error) {
	args := m.Called(ctx, discordID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.GameSession), args.Error(1)
}

func (m *MockGameSessionRepository) Recent(ctx context.Context, limit int) ([]*entities.GameSessionSummary, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.GameSessionSummary), args.Error(1)
}

// MockMiningRunRepository is a mock implementation of MiningRunRepository
type MockMiningRunRepository struct {
	mock.Mock
}

func (m *MockMiningRunRepository) Create(ctx context.Context, run *entities.MiningRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockMiningRunRepository) TotalsByAccount(ctx context.Context, discordID int64) (int64, decimal.Decimal, error) {
	args := m.Called(ctx, discordID)
	return args.Get(0).(int64), args.Get(1).(decimal.Decimal), args.Error(2)
}

// MockStatsRepository is a mock implementation of StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) RecordWager(ctx context.Context, bet, payout decimal.Decimal) error {
	args := m.Called(ctx, bet, payout)
	return args.Error(0)
}

func (m *MockStatsRepository) RecordMined(ctx context.Context, amount decimal.Decimal) error {
	args := m.Called(ctx, amount)
	return args.Error(0)
}

func (m *MockStatsRepository) Get(ctx context.Context) (*entities.BotStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.BotStats), args.Error(1)
}

// MockLedgerService is a mock implementation of LedgerService
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetOrCreateAccount(ctx context.Context, discordID int64, username string) (*entities.Account, error) {
	args := m.Called(ctx, discordID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockLedgerService) ApplyEntry(ctx context.Context, discordID int64, amount decimal.Decimal, category entities.EntryCategory, description string) (*entities.LedgerEntry, decimal.Decimal, error) {
	args := m.Called(ctx, discordID, amount, category, description)
	if args.Get(0) == nil {
		return nil, args.Get(1).(decimal.Decimal), args.Error(2)
	}
	return args.Get(0).(*entities.LedgerEntry), args.Get(1).(decimal.Decimal), args.Error(2)
}

// MockSettlementService is a mock implementation of SettlementService
type MockSettlementService struct {
	mock.Mock
}

func (m *MockSettlementService) Settle(ctx context.Context, account *entities.Account, gameType entities.GameType, bet decimal.Decimal, outcome games.Outcome) (*entities.SettlementResult, error) {
	args := m.Called(ctx, account, gameType, bet, outcome)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SettlementResult), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyMiningComplete(ctx context.Context, completion *entities.MiningCompletion) error {
	args := m.Called(ctx, completion)
	return args.Error(0)
}

// MockUnitOfWork is a mock implementation of UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
	AccountRepo *MockAccountRepository
	LedgerRepo  *MockLedgerRepository
	SessionRepo *MockGameSessionRepository
	RunRepo     *MockMiningRunRepository
	StatsRepo   *MockStatsRepository
}

// NewMockUnitOfWork creates a unit of work whose repositories are all mocks
// and whose lifecycle calls always succeed
func NewMockUnitOfWork() *MockUnitOfWork {
	uow := &MockUnitOfWork{
		AccountRepo: &MockAccountRepository{},
		LedgerRepo:  &MockLedgerRepository{},
		SessionRepo: &MockGameSessionRepository{},
		RunRepo:     &MockMiningRunRepository{},
		StatsRepo:   &MockStatsRepository{},
	}
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Commit").Return(nil)
	uow.On("Rollback").Return(nil)
	return uow
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) AccountRepository() interfaces.AccountRepository {
	return m.AccountRepo
}

func (m *MockUnitOfWork) LedgerRepository() interfaces.LedgerRepository {
	return m.LedgerRepo
}

func (m *MockUnitOfWork) GameSessionRepository() interfaces.GameSessionRepository {
	return m.SessionRepo
}

func (m *MockUnitOfWork) MiningRunRepository() interfaces.MiningRunRepository {
	return m.RunRepo
}

func (m *MockUnitOfWork) StatsRepository() interfaces.StatsRepository {
	return m.StatsRepo
}

// MockUnitOfWorkFactory returns the same mock unit of work from every Create
type MockUnitOfWorkFactory struct {
	Uow *MockUnitOfWork
}

func (f *MockUnitOfWorkFactory) Create() interfaces.UnitOfWork {
	return f.Uow
}
