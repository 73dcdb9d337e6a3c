package main

import (
	"github.com/spf13/cobra"

	"asset-desk/pkg/database/postgresql"
	"asset-desk/seeders"
)

func seedCmd(a *app) *cobra.Command {
	var (
		admin seeders.AdminAccount
		demo  bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill categories and create the first administrator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := postgresql.ConnectDB(cmd.Context(), a.cfg.Postgres.DSN)
			if err != nil {
				return err
			}
			defer db.Close()

			return seeders.SeedAll(cmd.Context(), db, admin, demo, a.logger)
		},
	}

	cmd.Flags().StringVar(&admin.Name, "admin-name", "Administrator", "Administrator display name")
	cmd.Flags().StringVar(&admin.Email, "admin-email", "admin@company.com", "Administrator email (must contain \"admin\")")
	cmd.Flags().StringVar(&admin.Password, "admin-password", "", "Administrator password, at least 6 characters")
	cmd.Flags().BoolVar(&demo, "demo", false, "Also insert a few demo assets")
	_ = cmd.MarkFlagRequired("admin-password")
	return cmd
}
