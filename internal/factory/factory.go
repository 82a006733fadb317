// Package factory wires the application's components together.
package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/fastfingers/typerace/internal/dependencies/clock"
	"github.com/fastfingers/typerace/internal/dependencies/random"
	"github.com/fastfingers/typerace/internal/services/leaderboard"
	"github.com/fastfingers/typerace/internal/services/race"
	"github.com/fastfingers/typerace/internal/services/texts"
	"github.com/fastfingers/typerace/internal/storage"
	"github.com/fastfingers/typerace/internal/storage/memory"
	redisstorage "github.com/fastfingers/typerace/internal/storage/redis"
	"github.com/fastfingers/typerace/internal/web/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Texts       *texts.Service
	Leaderboard *leaderboard.Service
	HubManager  *ws.HubManager
	Registry    *race.Registry
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// Race holds room tunables; the zero value means defaults
	Race race.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	raceCfg := cfg.Race
	if raceCfg.GracePeriod == 0 {
		raceCfg = race.DefaultConfig()
	}

	return newWithDependencies(store, clock.New(), random.New(), raceCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies
// (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, raceCfg race.Config, logger *slog.Logger) *App {
	textsService := texts.New(rnd)
	leaderboardService := leaderboard.New(store, logger)
	hubManager := ws.NewHubManager(logger)
	registry := race.NewRegistry(textsService, clk, rnd, hubManager, leaderboardService, raceCfg, logger)

	return &App{
		Storage:     store,
		Clock:       clk,
		Random:      rnd,
		Texts:       textsService,
		Leaderboard: leaderboardService,
		HubManager:  hubManager,
		Registry:    registry,
	}
}
