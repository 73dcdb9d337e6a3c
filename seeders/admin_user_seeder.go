// Файл: seeders/admin_user_seeder.go
package seeders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"asset-desk/pkg/constants"
	"asset-desk/pkg/utils"
)

// SeedAdmin создаёт администратора, если пользователя с таким email ещё нет.
func SeedAdmin(ctx context.Context, db *pgxpool.Pool, admin AdminAccount, logger *zap.Logger) error {
	email := strings.ToLower(strings.TrimSpace(admin.Email))
	// Регистрация пускает в ADMIN только адреса с "admin", сидер держит то же правило.
	if !strings.Contains(email, "admin") {
		return fmt.Errorf("email администратора должен содержать 'admin': %s", email)
	}
	if len(admin.Password) < 6 {
		return errors.New("пароль администратора короче 6 символов")
	}

	var userID uint64
	err := db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	if err == nil {
		logger.Info("администратор уже существует, пропускаем", zap.String("email", email))
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("ошибка при проверке существования пользователя: %w", err)
	}

	hashedPassword, err := utils.HashPassword(admin.Password)
	if err != nil {
		return err
	}

	err = db.QueryRow(ctx,
		`INSERT INTO users (name, email, password, role) VALUES ($1, $2, $3, $4) RETURNING id`,
		admin.Name, email, hashedPassword, constants.RoleAdmin,
	).Scan(&userID)
	if err != nil {
		return fmt.Errorf("не удалось создать администратора: %w", err)
	}

	logger.Info("администратор создан", zap.Uint64("id", userID), zap.String("email", email))
	return nil
}
