package commands

import (
	"context"
	"database/sql"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dentalsite/internal/storage"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
	}
	cmd.AddCommand(
		migrateStep("up", "Apply all pending migrations", storage.RunMigrations),
		migrateStep("down", "Roll back the last migration", storage.RollbackMigration),
		migrateStep("status", "Print the migration status", storage.Status),
	)
	return cmd
}

func migrateStep(use, short string, run func(context.Context, *sql.DB, *zap.Logger) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pgStorage, err := openPostgres(ctx, nil)
			if err != nil {
				return err
			}
			defer pgStorage.Close()

			return run(ctx, pgStorage.DB().DB, log)
		},
	}
}
