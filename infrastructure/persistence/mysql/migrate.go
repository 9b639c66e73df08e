package mysql

import (
	"context"
	"embed"
	"fmt"

	"tgorders/infrastructure/persistence/mysql/po"
	"tgorders/pkg/logger"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies the pending migrations and re-seeds the access level
// catalog.
func Migrate(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{})
	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("failed to up migrations: %w", err)
	}

	return SeedAccessLevels(ctx, db)
}

// MigrationVersion reports the applied schema version.
func MigrationVersion(ctx context.Context, db *gorm.DB) (int64, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return 0, err
	}
	if err := goose.SetDialect("mysql"); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, sqlDB)
}

// SeedAccessLevels upserts the catalog into access_level.
func SeedAccessLevels(ctx context.Context, db *gorm.DB) error {
	rows := po.CatalogRows()
	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to seed access levels: %w", err)
	}
	return nil
}

// gooseLogger sends goose output to the global logger.
type gooseLogger struct{}

func (gooseLogger) Fatalf(format string, v ...any) {
	logger.Error(fmt.Sprintf(format, v...), zap.String("component", "goose"))
}

func (gooseLogger) Printf(format string, v ...any) {
	logger.Info(fmt.Sprintf(format, v...), zap.String("component", "goose"))
}
