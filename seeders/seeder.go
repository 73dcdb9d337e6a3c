package seeders

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// AdminAccount - учётная запись администратора, создаваемая сидером.
type AdminAccount struct {
	Name     string
	Email    string
	Password string
}

// SeedCatalog наполняет справочник категорий.
func SeedCatalog(ctx context.Context, db *pgxpool.Pool, logger *zap.Logger) error {
	logger.Info("наполнение категорий")
	for _, c := range categoriesData {
		_, err := db.Exec(ctx,
			`INSERT INTO categories (name, description) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
			c.Name, c.Description)
		if err != nil {
			return fmt.Errorf("не удалось вставить категорию %s: %w", c.Name, err)
		}
	}
	return nil
}

// SeedDemoAssets добавляет несколько свободных активов для ручной проверки.
func SeedDemoAssets(ctx context.Context, db *pgxpool.Pool, logger *zap.Logger) error {
	logger.Info("наполнение демо-активов")
	for _, a := range demoAssetsData {
		_, err := db.Exec(ctx,
			`INSERT INTO assets (name, asset_number, category_name, status, asset_condition)
			 VALUES ($1, $2, $3, 'AVAILABLE', 'GOOD') ON CONFLICT (asset_number) DO NOTHING`,
			a.Name, a.AssetNumber, a.CategoryName)
		if err != nil {
			return fmt.Errorf("не удалось вставить актив %s: %w", a.AssetNumber, err)
		}
	}
	return nil
}

// SeedAll - категории, администратор и, при demo, тестовые активы.
func SeedAll(ctx context.Context, db *pgxpool.Pool, admin AdminAccount, demo bool, logger *zap.Logger) error {
	if err := SeedCatalog(ctx, db, logger); err != nil {
		return err
	}
	if err := SeedAdmin(ctx, db, admin, logger); err != nil {
		return err
	}
	if demo {
		return SeedDemoAssets(ctx, db, logger)
	}
	return nil
}
