package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-AppointmentService/internal/config"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/migrations"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Применить SQL миграции к postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cfg.Storage.Driver != config.StorageDriverPostgres {
				return fmt.Errorf("migrate requires storage.driver = %q, got %q",
					config.StorageDriverPostgres, cfg.Storage.Driver)
			}

			log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer log.Close()

			db, wrappedDB, err := openPostgres(cmd.Context(), cfg, nil, nil)
			if err != nil {
				return err
			}
			defer db.Close()

			_, err = applyMigrations(cmd.Context(), wrappedDB, log)
			return err
		},
	}
}

func applyMigrations(ctx context.Context, db *dbmetrics.DB, log *logger.Logger) (int, error) {
	migrator := migrations.NewMigrator(db, txmanager.NewTransactionManager(db), log)

	applied, err := migrator.Up(ctx)
	if err != nil {
		return 0, err
	}

	log.Info("Migrations applied: %d", applied)
	return applied, nil
}
