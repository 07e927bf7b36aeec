package config

import (
	"fmt"
	"sync"
	"time"

	"fortuna/database"
	"fortuna/domain/games"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken  string `envconfig:"DISCORD_TOKEN"`
	CommandPrefix string `envconfig:"COMMAND_PREFIX" default:"!"`

	// Database configuration
	DatabaseURL  string `envconfig:"DATABASE_URL"`
	DatabaseName string `envconfig:"DATABASE_NAME"`

	// Stats endpoint
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":5000"`

	// NATS configuration; events are dropped when unset
	NATSServers string `envconfig:"NATS_SERVERS"`

	// Economy settings
	StartingBalance  float64 `envconfig:"STARTING_BALANCE" default:"100"`
	DailyRewardBase  int     `envconfig:"DAILY_REWARD_BASE" default:"100"`
	DailyRewardBonus int     `envconfig:"DAILY_REWARD_BONUS" default:"50"`

	// Game multipliers
	CoinFlipMultiplier       float64 `envconfig:"COINFLIP_MULTIPLIER" default:"1.9"`
	DiceDefaultMultiplier    float64 `envconfig:"DICE_DEFAULT_MULTIPLIER" default:"1.8"`
	DiceExactMultiplier      float64 `envconfig:"DICE_SPECIFIC_MULTIPLIER" default:"5.0"`
	SlotsJackpotMultiplier   float64 `envconfig:"SLOTS_JACKPOT_MULTIPLIER" default:"50.0"`
	SlotsDiamondMultiplier   float64 `envconfig:"SLOTS_DIAMOND_MULTIPLIER" default:"10.0"`
	SlotsMatchMultiplier     float64 `envconfig:"SLOTS_MATCH_MULTIPLIER" default:"5.0"`
	SlotsCherryMultiplier    float64 `envconfig:"SLOTS_CHERRY_MULTIPLIER" default:"2.0"`
	ExtMegaJackpotMultiplier float64 `envconfig:"SLOTS_EXT_MEGA_JACKPOT_MULTIPLIER" default:"100.0"`
	ExtJackpotMultiplier     float64 `envconfig:"SLOTS_EXT_JACKPOT_MULTIPLIER" default:"50.0"`
	ExtBigWinMultiplier      float64 `envconfig:"SLOTS_EXT_BIG_WIN_MULTIPLIER" default:"25.0"`
	ExtBonusMultiplier       float64 `envconfig:"SLOTS_EXT_BONUS_MULTIPLIER" default:"15.0"`
	RouletteMultiplier       float64 `envconfig:"ROULETTE_MULTIPLIER" default:"1.9"`

	// Mining settings
	MiningCooldownSeconds        int     `envconfig:"MINING_COOLDOWN" default:"300"`
	MiningBaseUpgradeCost        float64 `envconfig:"MINING_BASE_UPGRADE_COST" default:"500"`
	MiningUpgradeCostMultiplier  float64 `envconfig:"MINING_UPGRADE_COST_MULTIPLIER" default:"1.5"`
	MiningPowerIncrease          float64 `envconfig:"MINING_POWER_INCREASE" default:"0.5"`
	MiningPollIntervalSeconds    int     `envconfig:"MINING_POLL_INTERVAL" default:"5"`
	MiningDefaultDurationMinutes int     `envconfig:"MINING_DEFAULT_DURATION" default:"5"`
	MiningMinDurationMinutes     int     `envconfig:"MINING_MIN_DURATION" default:"1"`
	MiningMaxDurationMinutes     int     `envconfig:"MINING_MAX_DURATION" default:"60"`

	// Environment: "development", "production" or "test"
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// Paytable builds the resolver paytable from the configured multipliers
func (c *Config) Paytable() games.Paytable {
	return games.Paytable{
		CoinFlip:       decimal.NewFromFloat(c.CoinFlipMultiplier),
		DiceDefault:    decimal.NewFromFloat(c.DiceDefaultMultiplier),
		DiceExact:      decimal.NewFromFloat(c.DiceExactMultiplier),
		SlotsJackpot:   decimal.NewFromFloat(c.SlotsJackpotMultiplier),
		SlotsDiamond:   decimal.NewFromFloat(c.SlotsDiamondMultiplier),
		SlotsMatch:     decimal.NewFromFloat(c.SlotsMatchMultiplier),
		SlotsCherry:    decimal.NewFromFloat(c.SlotsCherryMultiplier),
		ExtMegaJackpot: decimal.NewFromFloat(c.ExtMegaJackpotMultiplier),
		ExtJackpot:     decimal.NewFromFloat(c.ExtJackpotMultiplier),
		ExtBigWin:      decimal.NewFromFloat(c.ExtBigWinMultiplier),
		ExtBonus:       decimal.NewFromFloat(c.ExtBonusMultiplier),
		Roulette:       decimal.NewFromFloat(c.RouletteMultiplier),
	}
}

// MiningCooldown returns the cooldown between mining sessions
func (c *Config) MiningCooldown() time.Duration {
	return time.Duration(c.MiningCooldownSeconds) * time.Second
}

// MiningPollInterval returns the scheduler poll interval
func (c *Config) MiningPollInterval() time.Duration {
	return time.Duration(c.MiningPollIntervalSeconds) * time.Second
}

// load loads configuration from environment variables
func load() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if cfg.Environment != "test" {
		// Validate required configuration
		if cfg.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return cfg, nil
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a config with all defaults suitable for unit tests
func NewTestConfig() *Config {
	cfg := &Config{}
	if err := envconfig.Process("fortuna_test_unused", cfg); err != nil {
		panic(fmt.Sprintf("failed to build test config: %v", err))
	}
	cfg.Environment = "test"
	cfg.DiscordToken = "test-token"
	return cfg
}
