package cmd

import (
	"context"
	"fmt"
	"strconv"

	"tgorders/api/health"
	"tgorders/application/session"
	"tgorders/config"
	"tgorders/domain/shared"
	"tgorders/infrastructure/persistence/memory"
	"tgorders/infrastructure/persistence/mysql"
	"tgorders/infrastructure/persistence/retry"
	"tgorders/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Store is the persistence selected by database.type.
type Store struct {
	Factory shared.UnitOfWorkFactory
	// DB is nil for the memory store.
	DB *gorm.DB
}

func OpenStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	if cfg.Database.Type == "memory" {
		logger.Warn("Using in-memory persistence; data is lost on exit")
		return &Store{Factory: memory.NewUnitOfWorkFactory(memory.NewStore())}, nil
	}

	db, err := ConnectMySQL(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Database.AutoMigrate {
		if err := mysql.Migrate(ctx, db); err != nil {
			return nil, fmt.Errorf("failed to auto migrate: %w", err)
		}
	}
	return &Store{
		Factory: mysql.NewUnitOfWorkFactory(db, retry.FromAppConfig(cfg)),
		DB:      db,
	}, nil
}

// ConnectMySQL opens and pings the configured database.
func ConnectMySQL(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	db, err := mysql.FromAppConfig(cfg.Database).Connect()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}
	if err := mysql.Ping(ctx, db); err != nil {
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}
	return db, nil
}

// Pinger is nil for the memory store.
func (s *Store) Pinger() health.Pinger {
	if s.DB == nil {
		return nil
	}
	return func(ctx context.Context) error { return mysql.Ping(ctx, s.DB) }
}

func (s *Store) Close() error {
	if s.DB == nil {
		return nil
	}
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// EnsureAdmins grants ADMINISTRATOR to every id, creating missing users.
func EnsureAdmins(ctx context.Context, factory shared.UnitOfWorkFactory, dispatcher *shared.EventDispatcher, ids []int64) error {
	for _, id := range ids {
		if err := EnsureAdmin(ctx, factory, dispatcher, id, "Administrator "+strconv.FormatInt(id, 10)); err != nil {
			return err
		}
	}
	return nil
}

func EnsureAdmin(ctx context.Context, factory shared.UnitOfWorkFactory, dispatcher *shared.EventDispatcher, id int64, name string) error {
	s, err := session.Open(ctx, factory, dispatcher)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close(ctx) }()

	if _, err := s.Admin().EnsureAdministrator(ctx, id, name); err != nil {
		return fmt.Errorf("failed to ensure administrator %d: %w", id, err)
	}
	logger.Info("Administrator ensured", zap.Int64("user_id", id))
	return nil
}
