package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fastfingers/typerace/internal/api"
	"github.com/fastfingers/typerace/internal/config"
	"github.com/fastfingers/typerace/internal/factory"
	"github.com/fastfingers/typerace/internal/services/race"
	redisstorage "github.com/fastfingers/typerace/internal/storage/redis"
	"github.com/fastfingers/typerace/internal/web/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	factoryCfg := factory.Config{
		Logger:      logger,
		StorageType: cfg.StorageType,
		Race: race.Config{
			GracePeriod:     cfg.GracePeriod,
			IdleTimeout:     cfg.IdleTimeout,
			DefaultDuration: cfg.RaceDuration,
		},
	}
	if cfg.StorageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Custom race texts are optional; the built-in set covers the rest
	if cfg.TextsPath != "" {
		if err := app.Texts.LoadFromFile(cfg.TextsPath); err != nil {
			logger.Warn("could not load race texts", slog.String("error", err.Error()))
		}
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:      logger,
		Registry:    app.Registry,
		Leaderboard: app.Leaderboard,
		Socket:      ws.NewHandler(app.Registry, app.HubManager, logger),
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port
	serverConfig.ShutdownTimeout = cfg.ShutdownTimeout
	server := api.NewServer(router, serverConfig, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Background sweeps for abandoned rooms and their hubs
	app.Registry.StartJanitor(ctx)
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				app.HubManager.CleanupEmptyHubs()
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
