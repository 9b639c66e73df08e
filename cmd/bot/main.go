// Command bot runs the Telegram bot and the admin HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tgorders/application/notification"
	"tgorders/cmd"
	"tgorders/config"
	"tgorders/domain/shared"
	"tgorders/infrastructure/telegram"
	"tgorders/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("Bot startup failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting bot",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env),
		zap.String("database", cfg.Database.Type),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := cmd.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	bot, err := telegram.NewBot(cfg.Telegram)
	if err != nil {
		return err
	}

	dispatcher := shared.NewEventDispatcher(nil)
	notification.NewHandlers(telegram.NewNotifier(bot), dispatcher).Register(store.Factory)

	if err := cmd.EnsureAdmins(ctx, store.Factory, dispatcher, cfg.Telegram.AdminIDs); err != nil {
		return err
	}

	serverErr := make(chan error, 1)
	if cfg.Server.Enabled {
		app := cmd.NewApp(cfg, store, dispatcher)
		go func() {
			serverErr <- app.Run(ctx)
		}()
	}

	go telegram.Poll(ctx, bot, cfg.Telegram.PollTimeout, telegram.NewCallbackRouter(bot, store.Factory, dispatcher))
	logger.Info("Bot polling started")

	select {
	case <-ctx.Done():
		if cfg.Server.Enabled {
			if err := <-serverErr; err != nil {
				logger.Error("HTTP server stopped with error", zap.Error(err))
			}
		}
	case err := <-serverErr:
		if err != nil {
			return err
		}
	}
	logger.Info("Bot stopped")
	return nil
}
