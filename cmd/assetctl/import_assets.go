package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"asset-desk/internal/repositories"
	"asset-desk/internal/services"
	"asset-desk/pkg/constants"
	"asset-desk/pkg/database/postgresql"
	"asset-desk/pkg/types"
)

func importAssetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import-assets <file.xlsx>",
		Short: "Import assets from an Excel workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			db, err := postgresql.ConnectDB(ctx, a.cfg.Postgres.DSN)
			if err != nil {
				return err
			}
			defer db.Close()

			// Redis нужен только для сброса кеша дашборда, ошибки там не фатальны.
			rdb := redis.NewClient(&redis.Options{Addr: a.cfg.Redis.Address, Password: a.cfg.Redis.Password, DB: a.cfg.Redis.DB})
			defer rdb.Close()

			assetService := services.NewAssetService(
				repositories.NewAssetRepository(db, a.logger),
				repositories.NewRequestRepository(db, a.logger),
				repositories.NewUserRepository(db, a.logger),
				repositories.NewRedisCacheRepository(rdb),
				a.logger,
			)
			importer := services.NewAssetImporter(assetService, a.logger)

			session := types.Session{Name: "assetctl", Role: constants.RoleAdmin}
			result, err := importer.Import(ctx, session, f)
			if err != nil {
				return err
			}
			a.logger.Info("импорт завершён",
				zap.Int("created", result.Created),
				zap.Int("skipped", result.Skipped),
				zap.Int("failed", result.Failed),
			)

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
