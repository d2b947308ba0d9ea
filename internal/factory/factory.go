package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/nhamil/tilewe-go/internal/dependencies/clock"
	"github.com/nhamil/tilewe-go/internal/dependencies/random"
	"github.com/nhamil/tilewe-go/internal/services/bot"
	"github.com/nhamil/tilewe-go/internal/services/game"
	"github.com/nhamil/tilewe-go/internal/services/match"
	"github.com/nhamil/tilewe-go/internal/services/tournament"
	"github.com/nhamil/tilewe-go/internal/storage"
	"github.com/nhamil/tilewe-go/internal/storage/memory"
	redisstorage "github.com/nhamil/tilewe-go/internal/storage/redis"
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
	Registry          *bot.Registry
	Runner            *match.Runner
	GameController    *game.Controller
	TournamentService *tournament.Service
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
	// MoveTimeout bounds each bot move in live games; zero means no limit
	MoveTimeout time.Duration
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
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory' or 'redis'", storageType)
	}

	return newWithDependencies(store, clock.New(), random.New(), cfg.MoveTimeout, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, moveTimeout time.Duration, logger *slog.Logger) *App {
	registry := bot.NewRegistry()
	runner := match.NewRunner(clk, rnd, moveTimeout, logger)
	gameController := game.NewController(store, registry, runner, clk, rnd, logger)
	tournamentService := tournament.NewService(registry, store, clk, rnd, logger)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		Registry:          registry,
		Runner:            runner,
		GameController:    gameController,
		TournamentService: tournamentService,
	}
}
