package cmd

import (
	"context"
	"fmt"
	"time"

	"fortuna/application"
	"fortuna/bot"
	"fortuna/config"
	"fortuna/database"
	"fortuna/domain/games"
	"fortuna/domain/interfaces"
	"fortuna/infrastructure"
	"fortuna/repository"
	"fortuna/web"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting fortuna bot...")

	cfg := config.Get()

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Events go to NATS when configured, otherwise they are dropped
	var eventPublisher interfaces.EventPublisher
	var natsPublisher *infrastructure.NATSEventPublisher
	if cfg.NATSServers != "" {
		natsPublisher, err = infrastructure.NewNATSEventPublisher(cfg.NATSServers)
		if err != nil {
			return fmt.Errorf("failed to initialize event publisher: %w", err)
		}
		eventPublisher = natsPublisher
	} else {
		log.Info("No NATS servers configured, events disabled")
		eventPublisher = infrastructure.NewNoopEventPublisher()
	}

	uowFactory := repository.NewUnitOfWorkFactory(db)

	scheduler := application.NewMiningScheduler(uowFactory, eventPublisher, games.NewRand())
	stopScheduler := scheduler.Start(ctx)

	log.Info("Initializing Discord bot...")
	discordBot, err := bot.New(cfg.DiscordToken, uowFactory, eventPublisher, scheduler)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	scheduler.SetNotifier(discordBot)

	statsServer := web.NewServer(cfg.HTTPAddr, uowFactory)
	statsServer.Start()

	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	log.Info("Shutting down...")
	stopScheduler()

	if err := discordBot.Close(); err != nil {
		log.WithError(err).Error("error closing Discord bot")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := statsServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("error shutting down stats server")
	}

	if natsPublisher != nil {
		natsPublisher.Close()
	}

	db.Close()
	log.Info("Shutdown completed")
	return nil
}
