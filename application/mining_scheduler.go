package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fortuna/config"
	"fortuna/domain/entities"
	"fortuna/domain/games"
	"fortuna/domain/interfaces"
	"fortuna/domain/services"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// MiningScheduler owns the in-memory session registry: at most one active
// session per account, settled against the ledger when its duration elapses.
// Sessions do not survive a restart; the balance credit only ever happens
// through CompleteSession, so a lost session loses the run, never money
// already earned.
type MiningScheduler struct {
	uowFactory     interfaces.UnitOfWorkFactory
	eventPublisher interfaces.EventPublisher
	rng            games.Rand

	mu       sync.Mutex
	sessions map[int64]*entities.MiningSession

	notifierMu sync.RWMutex
	notifier   interfaces.Notifier
}

// NewMiningScheduler creates a new mining scheduler
func NewMiningScheduler(uowFactory interfaces.UnitOfWorkFactory, eventPublisher interfaces.EventPublisher, rng games.Rand) *MiningScheduler {
	return &MiningScheduler{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		rng:            rng,
		sessions:       make(map[int64]*entities.MiningSession),
	}
}

// SetNotifier wires the completion notifier after construction. The bot needs
// the scheduler to serve commands and the scheduler needs the bot to notify,
// so one side attaches late.
func (m *MiningScheduler) SetNotifier(n interfaces.Notifier) {
	m.notifierMu.Lock()
	defer m.notifierMu.Unlock()
	m.notifier = n
}

// Start begins the polling loop and returns a stop function.
func (m *MiningScheduler) Start(ctx context.Context) func() {
	stopChan := make(chan struct{})
	interval := config.Get().MiningPollInterval()

	go func() {
		log.Infof("Mining scheduler started, polling every %v", interval)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Mining scheduler shutting down (context cancelled)...")
				return
			case <-stopChan:
				log.Info("Mining scheduler shutting down (stop requested)...")
				return
			case <-ticker.C:
				m.tick(ctx)
			}
		}
	}()

	return func() {
		close(stopChan)
	}
}

// StartSession registers a new mining session for an account. Fails when the
// account already has an active session or is still inside the cooldown that
// follows a completed run. The equipment snapshot is taken here so upgrades
// purchased mid-session do not change its payout.
func (m *MiningScheduler) StartSession(ctx context.Context, discordID int64, username string, durationMinutes *int) (*entities.MiningSession, error) {
	cfg := config.Get()

	minutes := cfg.MiningDefaultDurationMinutes
	if durationMinutes != nil {
		minutes = *durationMinutes
	}
	if minutes < cfg.MiningMinDurationMinutes {
		minutes = cfg.MiningMinDurationMinutes
	}
	if minutes > cfg.MiningMaxDurationMinutes {
		minutes = cfg.MiningMaxDurationMinutes
	}

	uow := m.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	ledger := services.NewLedgerService(uow.AccountRepository(), uow.LedgerRepository(), m.eventPublisher)
	account, err := ledger.GetOrCreateAccount(ctx, discordID, username)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	now := time.Now().UTC()

	m.mu.Lock()
	defer m.mu.Unlock()

	if active, ok := m.sessions[discordID]; ok {
		return nil, &entities.AlreadyMiningError{Remaining: active.Remaining(now)}
	}
	if remaining := account.MiningCooldownRemaining(now, cfg.MiningCooldown()); remaining > 0 {
		return nil, &entities.OnCooldownError{Remaining: remaining}
	}

	session := &entities.MiningSession{
		ID:               uuid.New(),
		DiscordID:        discordID,
		StartedAt:        now,
		Duration:         time.Duration(minutes) * time.Minute,
		MiningPower:      account.MiningPower,
		MiningMultiplier: account.MiningMultiplier,
	}
	m.sessions[discordID] = session

	log.WithFields(log.Fields{
		"discord_id": discordID,
		"session_id": session.ID,
		"duration":   session.Duration,
	}).Info("mining session started")

	return session, nil
}

// SessionStatus returns the active session for an account, or nil.
func (m *MiningScheduler) SessionStatus(discordID int64) *entities.MiningSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[discordID]
}

// tick settles every expired session. Each completion runs in its own
// transaction; a failure is logged and the loop moves on, but the session is
// removed either way so a poisoned session cannot wedge the scheduler.
func (m *MiningScheduler) tick(ctx context.Context) {
	now := time.Now().UTC()

	m.mu.Lock()
	var expired []*entities.MiningSession
	for discordID, session := range m.sessions {
		if session.Expired(now) {
			expired = append(expired, session)
			delete(m.sessions, discordID)
		}
	}
	m.mu.Unlock()

	for _, session := range expired {
		completion, err := m.completeSession(ctx, session)
		if err != nil {
			log.WithError(err).WithFields(log.Fields{
				"discord_id": session.DiscordID,
				"session_id": session.ID,
			}).Error("failed to complete mining session")
			continue
		}
		m.notify(ctx, completion)
	}
}

func (m *MiningScheduler) completeSession(ctx context.Context, session *entities.MiningSession) (*entities.MiningCompletion, error) {
	uow := m.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	ledger := services.NewLedgerService(uow.AccountRepository(), uow.LedgerRepository(), m.eventPublisher)
	mining := services.NewMiningService(ledger, uow.AccountRepository(), uow.MiningRunRepository(), uow.StatsRepository(), m.eventPublisher, m.rng)

	completion, err := mining.CompleteSession(ctx, session)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"discord_id": session.DiscordID,
		"session_id": session.ID,
		"earned":     completion.AmountEarned,
		"bonus":      completion.Bonus,
	}).Info("mining session completed")

	return completion, nil
}

// notify delivers the completion DM after the transaction has committed;
// delivery failures are logged, never retried.
func (m *MiningScheduler) notify(ctx context.Context, completion *entities.MiningCompletion) {
	m.notifierMu.RLock()
	n := m.notifier
	m.notifierMu.RUnlock()
	if n == nil {
		return
	}
	if err := n.NotifyMiningComplete(ctx, completion); err != nil {
		log.WithError(err).WithField("discord_id", completion.DiscordID).Warn("failed to deliver mining notification")
	}
}
