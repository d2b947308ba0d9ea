package main

import (
	"cmp"
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/nhamil/tilewe-go/internal/api"
	"github.com/nhamil/tilewe-go/internal/factory"
	redisstorage "github.com/nhamil/tilewe-go/internal/storage/redis"
	"github.com/nhamil/tilewe-go/internal/web"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	moveTimeout, err := envDuration("MOVE_TIMEOUT", 10*time.Second)
	if err != nil {
		fatal(logger, "invalid MOVE_TIMEOUT", err)
	}

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
		MoveTimeout: moveTimeout,
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		if redisCfg.GameTTL, err = envDuration("GAME_TTL", redisCfg.GameTTL); err != nil {
			fatal(logger, "invalid GAME_TTL", err)
		}
		if redisCfg.MatchTTL, err = envDuration("MATCH_TTL", redisCfg.MatchTTL); err != nil {
			fatal(logger, "invalid MATCH_TTL", err)
		}
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		fatal(logger, "failed to create application", err)
	}

	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
		Registry:       app.Registry,
		Matches:        app.Storage,
	})

	webRouter := web.NewRouter(web.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
		Registry:       app.Registry,
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		if serverConfig.Port, err = strconv.Atoi(port); err != nil {
			fatal(logger, "invalid PORT", err)
		}
	}
	server := api.NewServer(mux, serverConfig, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("server starting",
		slog.String("addr", server.Addr()),
		slog.String("storage", cmp.Or(cfg.StorageType, factory.StorageTypeMemory)),
		slog.Duration("move_timeout", moveTimeout),
	)

	if err := server.Run(ctx); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return def, nil
	}
	return time.ParseDuration(val)
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, slog.String("error", err.Error()))
	os.Exit(1)
}
