// Command worker relays outbox rows to the event topic.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tgorders/cmd"
	"tgorders/config"
	"tgorders/infrastructure/messaging"
	"tgorders/infrastructure/persistence/mysql"
	"tgorders/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("Worker startup failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := parseConfigPath()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if !cfg.Worker.Enabled {
		logger.Info("Outbox worker is disabled by config; exiting")
		return nil
	}
	if cfg.Database.Type != "mysql" {
		return fmt.Errorf("outbox worker needs database.type mysql, got %q", cfg.Database.Type)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	db, err := cmd.ConnectMySQL(ctx, cfg)
	if err != nil {
		return err
	}

	var dedup messaging.Deduplicator
	if cfg.Redis.Enabled {
		client, err := messaging.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
		dedup = messaging.NewRedisDeduplicator(client, cfg.Redis.DedupTTL)
	}

	bus := messaging.NewGoChannel(int64(cfg.Worker.BatchSize))
	defer func() { _ = bus.Close() }()

	go func() {
		if err := messaging.LogRelayed(ctx, bus, cfg.Worker.Topic); err != nil {
			logger.Error("Relay subscriber stopped", zap.Error(err))
		}
	}()

	worker, err := mysql.NewOutboxWorker(
		mysql.NewOutboxRepository(db),
		messaging.NewPublisher(bus, cfg.Worker.Topic, dedup),
		cfg.Worker.PollInterval,
		cfg.Worker.BatchSize,
		cfg.Worker.MaxRetries,
	)
	if err != nil {
		return fmt.Errorf("failed to create outbox worker: %w", err)
	}

	logger.Info("Outbox worker started",
		zap.Duration("poll_interval", cfg.Worker.PollInterval),
		zap.Int("batch_size", cfg.Worker.BatchSize),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
		zap.String("topic", cfg.Worker.Topic),
		zap.Bool("dedup", dedup != nil),
	)

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("outbox worker exited with error: %w", err)
	}

	logger.Info("Outbox worker stopped")
	return nil
}

func parseConfigPath() string {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Parse()
	return configPath
}
