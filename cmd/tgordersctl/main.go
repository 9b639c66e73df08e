// Command tgordersctl is the operator CLI: schema migrations and
// administrator bootstrap against the configured MySQL database.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tgorders/application/notification"
	"tgorders/cmd"
	"tgorders/config"
	"tgorders/domain/shared"
	"tgorders/infrastructure/persistence/mysql"
	"tgorders/infrastructure/persistence/retry"
	"tgorders/pkg/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var cfg *config.Config

	root := &cobra.Command{
		Use:          "tgordersctl",
		Short:        "Operate the tgorders database",
		SilenceUsage: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cfg.Database.Type != "mysql" {
				return fmt.Errorf("tgordersctl needs database.type mysql, got %q", cfg.Database.Type)
			}
			return logger.Init(&cfg.Log, cfg.App.Env)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")

	load := func() *config.Config { return cfg }
	root.AddCommand(newMigrateCmd(load), newVersionCmd(load), newAddAdminCmd(load))
	return root
}

func withDB(c *cobra.Command, cfg *config.Config, fn func(ctx context.Context, db *gorm.DB) error) error {
	ctx, cancel := signal.NotifyContext(c.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	db, err := cmd.ConnectMySQL(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()
	return fn(ctx, db)
}

func newMigrateCmd(cfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending migrations and seed the access levels",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return withDB(c, cfg(), func(ctx context.Context, db *gorm.DB) error {
				if err := mysql.Migrate(ctx, db); err != nil {
					return err
				}
				version, err := mysql.MigrationVersion(ctx, db)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.OutOrStdout(), "schema at version %d\n", version)
				return nil
			})
		},
	}
}

func newVersionCmd(cfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return withDB(c, cfg(), func(ctx context.Context, db *gorm.DB) error {
				version, err := mysql.MigrationVersion(ctx, db)
				if err != nil {
					return err
				}
				fmt.Fprintln(c.OutOrStdout(), version)
				return nil
			})
		},
	}
}

func newAddAdminCmd(cfg func() *config.Config) *cobra.Command {
	var id int64
	var name string

	command := &cobra.Command{
		Use:   "add-admin",
		Short: "Grant ADMINISTRATOR to --id, or to every telegram.admin_ids entry",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			conf := cfg()
			return withDB(c, conf, func(ctx context.Context, db *gorm.DB) error {
				factory := mysql.NewUnitOfWorkFactory(db, retry.FromAppConfig(conf))
				dispatcher := shared.NewEventDispatcher(nil)
				for _, event := range notification.OutboxEvents {
					dispatcher.Domain.Register(event, notification.OutboxHandler)
				}
				if id != 0 {
					return cmd.EnsureAdmin(ctx, factory, dispatcher, id, name)
				}
				if len(conf.Telegram.AdminIDs) == 0 {
					return fmt.Errorf("no --id given and telegram.admin_ids is empty")
				}
				return cmd.EnsureAdmins(ctx, factory, dispatcher, conf.Telegram.AdminIDs)
			})
		},
	}
	command.Flags().Int64Var(&id, "id", 0, "Telegram user id")
	command.Flags().StringVar(&name, "name", "Administrator", "Name for a new user")
	return command
}
