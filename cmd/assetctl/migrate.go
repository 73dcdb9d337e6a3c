package main

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"asset-desk/migrations"
)

func migrateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	steps := map[string]struct {
		short string
		run   func(ctx context.Context, db *sql.DB) error
	}{
		"up":     {"Apply all pending migrations", migrations.Up},
		"down":   {"Roll back the last migration", migrations.Down},
		"status": {"Print migration status", migrations.Status},
	}
	for _, name := range []string{"up", "down", "status"} {
		name, step := name, steps[name]
		cmd.AddCommand(&cobra.Command{
			Use:   name,
			Short: step.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				db, err := sql.Open("pgx", a.cfg.Postgres.DSN)
				if err != nil {
					return fmt.Errorf("open database: %w", err)
				}
				defer db.Close()

				if err := step.run(cmd.Context(), db); err != nil {
					return fmt.Errorf("migrate %s: %w", name, err)
				}
				a.logger.Info("миграции выполнены", zap.String("command", name))
				return nil
			},
		})
	}
	return cmd
}
